// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QueryLens Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRoot resets the process-global viper so config state never leaks
// between tests.
func newRoot(t *testing.T) *cobra.Command {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return NewRootCmd()
}

func TestRootCommand_Help(t *testing.T) {
	root := newRoot(t)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"--help"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "querylens")
	assert.Contains(t, buf.String(), "serve")
	assert.Contains(t, buf.String(), "seed")
	assert.Contains(t, buf.String(), "version")
}

func TestVersionCommand(t *testing.T) {
	root := newRoot(t)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"version"})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "querylens")
}

func TestServeCommand_RequiresReadableConfig(t *testing.T) {
	root := newRoot(t)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"serve", "--config", "/nonexistent/path.yaml"})

	err := root.Execute()
	assert.Error(t, err)
}

func TestSeedCommand_PopulatesCatalogs(t *testing.T) {
	dir := t.TempDir()

	root := newRoot(t)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"seed", "--data-dir", dir})

	err := root.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "25 inserted")
}
