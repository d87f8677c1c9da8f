// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

// Package seed holds the fixed demo catalog loaded into both engines by
// the initialize operation.
package seed

import "github.com/querylens/querylens/internal/catalog"

// Products is the demo catalog: 25 products across 4 categories, chosen so
// lexical and semantic search visibly diverge (e.g. "noise cancellation
// for travel" finds the headphones semantically but not lexically).
func Products() []catalog.ProductInput {
	return []catalog.ProductInput{
		{Name: "Wireless Bluetooth Headphones", Description: "High-quality over-ear headphones with active noise cancellation and 30-hour battery life", Category: "Electronics", Price: 149.99},
		{Name: "Ergonomic Office Chair", Description: "Comfortable mesh back chair with lumbar support and adjustable armrests for long work sessions", Category: "Furniture", Price: 299.99},
		{Name: "Stainless Steel Water Bottle", Description: "Insulated 32oz bottle keeps drinks cold for 24 hours or hot for 12 hours", Category: "Kitchen", Price: 29.99},
		{Name: "Yoga Mat Premium", Description: "Non-slip exercise mat with extra cushioning for yoga, pilates, and floor exercises", Category: "Sports", Price: 39.99},
		{Name: "LED Desk Lamp", Description: "Adjustable brightness desk lamp with USB charging port and touch controls", Category: "Electronics", Price: 45.99},
		{Name: "Running Shoes", Description: "Lightweight athletic shoes with responsive cushioning for runners and joggers", Category: "Sports", Price: 89.99},
		{Name: "Coffee Maker", Description: "Programmable drip coffee maker with thermal carafe and auto-shutoff feature", Category: "Kitchen", Price: 79.99},
		{Name: "Laptop Stand", Description: "Aluminum laptop stand with adjustable height for better ergonomics and cooling", Category: "Electronics", Price: 49.99},
		{Name: "Bookshelf", Description: "5-tier wooden bookshelf with modern design for organizing books and decorative items", Category: "Furniture", Price: 129.99},
		{Name: "Fitness Tracker", Description: "Smart fitness band with heart rate monitor, sleep tracking, and waterproof design", Category: "Electronics", Price: 69.99},
		{Name: "Cooking Pan Set", Description: "Non-stick cookware set with 3 frying pans of different sizes and heat-resistant handles", Category: "Kitchen", Price: 59.99},
		{Name: "Gaming Mouse", Description: "High-precision gaming mouse with customizable RGB lighting and programmable buttons", Category: "Electronics", Price: 54.99},
		{Name: "Dumbbells Set", Description: "Adjustable weight dumbbells from 5 to 25 pounds for home strength training", Category: "Sports", Price: 119.99},
		{Name: "Standing Desk", Description: "Electric height-adjustable desk with memory presets and cable management system", Category: "Furniture", Price: 399.99},
		{Name: "Blender", Description: "High-speed blender with multiple settings for smoothies, soups, and food processing", Category: "Kitchen", Price: 89.99},
		{Name: "Mechanical Keyboard", Description: "RGB backlit mechanical keyboard with tactile switches for gaming and typing", Category: "Electronics", Price: 99.99},
		{Name: "Resistance Bands", Description: "Set of 5 resistance bands with different tension levels for strength training", Category: "Sports", Price: 24.99},
		{Name: "Storage Ottoman", Description: "Foldable storage ottoman with cushioned top that doubles as extra seating", Category: "Furniture", Price: 49.99},
		{Name: "Air Fryer", Description: "Digital air fryer with 8 preset cooking functions and non-stick basket", Category: "Kitchen", Price: 109.99},
		{Name: "Webcam HD", Description: "1080p webcam with built-in microphone and auto-focus for video calls", Category: "Electronics", Price: 64.99},
		{Name: "Tennis Racket", Description: "Professional-grade tennis racket with graphite frame and comfortable grip", Category: "Sports", Price: 149.99},
		{Name: "Dining Table", Description: "Solid wood dining table seats 6 people with elegant finish", Category: "Furniture", Price: 499.99},
		{Name: "Knife Set", Description: "Professional chef knife set with 8 pieces including sharpener and storage block", Category: "Kitchen", Price: 79.99},
		{Name: "Portable Speaker", Description: "Waterproof Bluetooth speaker with 360-degree sound and 12-hour battery", Category: "Electronics", Price: 59.99},
		{Name: "Yoga Block Set", Description: "Set of 2 foam yoga blocks for support and balance during practice", Category: "Sports", Price: 19.99},
	}
}
