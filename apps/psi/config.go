//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/markkurossi/psi/env"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config defines the command configuration. It is read from an
// optional TOML file and the command line flags override its values.
type Config struct {
	Addr        string `toml:"addr"`
	Set         string `toml:"set"`
	SenderSet   string `toml:"sender_set"`
	ReceiverSet string `toml:"receiver_set"`
	Workers     int    `toml:"workers"`
	Count       int    `toml:"count"`
	Verbose     bool   `toml:"verbose"`
	Timing      bool   `toml:"timing"`
	Seed        string `toml:"seed"`
}

// DefaultAddr is the default protocol address.
const DefaultAddr = "localhost:8080"

func loadConfig(path string) (*Config, error) {
	config := &Config{
		Addr: DefaultAddr,
	}
	if len(path) == 0 {
		return config, nil
	}
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return config, nil
}

// Env creates the protocol environment for the configuration.
func (c *Config) Env(logger *zap.Logger) *env.Config {
	result := &env.Config{
		Logger:      logger,
		Concurrency: c.Workers,
	}
	if len(c.Seed) > 0 {
		logger.Warn("using deterministic randomness")
		result.Rand = env.NewSeededRand([]byte(c.Seed))
	}
	return result
}

func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// readSet reads one item per line. Empty lines and lines starting
// with '#' are skipped, as are duplicate items.
func readSet(in io.Reader) ([]string, error) {
	var result []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || line[0] == '#' || seen[line] {
			continue
		}
		seen[line] = true
		result = append(result, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func readSetFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSet(f)
}
