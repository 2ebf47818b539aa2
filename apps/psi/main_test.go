//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestReadSet(t *testing.T) {
	in := `
# fruits
apple
  banana

apple
cherry
`
	set, err := readSet(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"apple", "banana", "cherry"}, set)
}

func TestLoadConfig(t *testing.T) {
	config, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultAddr, config.Addr)

	dir := t.TempDir()
	path := filepath.Join(dir, "psi.toml")
	data := `
addr = "127.0.0.1:9000"
set = "items.txt"
workers = 2
timing = true
seed = "test"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err = loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, &Config{
		Addr:    "127.0.0.1:9000",
		Set:     "items.txt",
		Workers: 2,
		Timing:  true,
		Seed:    "test",
	}, config)

	require.NoError(t, os.WriteFile(path, []byte("unknown = 1\n"), 0o644))
	_, err = loadConfig(path)
	require.Error(t, err)
}

func TestRunDemo(t *testing.T) {
	config := &Config{
		Workers: 2,
		Seed:    "TestRunDemo",
	}
	result, timing, stats, err := runDemo(
		config.Env(zaptest.NewLogger(t)), demoSenderSet, demoReceiverSet)
	require.NoError(t, err)
	require.Equal(t, []string{"cherry", "date"}, result)
	require.NotEmpty(t, timing.Samples)
	require.Greater(t, stats.Sum(), uint64(0))
}

func TestRunDemoDegenerate(t *testing.T) {
	config := &Config{}
	_, _, _, err := runDemo(config.Env(zaptest.NewLogger(t)),
		demoSenderSet, []string{"cherry"})
	require.Error(t, err)
}

func TestInputSet(t *testing.T) {
	set, err := inputSet("", demoSenderSet)
	require.NoError(t, err)
	require.Equal(t, demoSenderSet, set)

	_, err = inputSet("", nil)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "set.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0o644))
	set, err = inputSet(path, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, set)
}
