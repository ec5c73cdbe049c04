// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = filepath.Join("..", "..", "sim", "testdata", "twocomp.yaml")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunStdout(t *testing.T) {
	out, err := execute(t, "run", "--config", testConfig)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1001)
	assert.Contains(t, lines[0], "v_comp1")
}

func TestRunCopies(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "traces.csv")
	_, err := execute(t, "run", "--config", testConfig, "--out", out, "--copies", "3", "--threads", "2")
	require.NoError(t, err)
	var first []byte
	for i := 0; i < 3; i++ {
		b, err := os.ReadFile(filepath.Join(dir, "traces_"+string(rune('0'+i))+".csv"))
		require.NoError(t, err)
		if i == 0 {
			first = b
		}
		assert.Equal(t, first, b, "copies are identical")
	}
}

func TestDescribe(t *testing.T) {
	out, err := execute(t, "describe", "-c", testConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "Compartments: 2")
	assert.Contains(t, out, "GABA_B")
	assert.Contains(t, out, "g_d_GABA_B1")
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)
	_, err = execute(t, "describe", "--config", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
