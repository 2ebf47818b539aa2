//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the PSI system.
package env

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/crypto/chacha20"
)

// Config defines the global system configuration for the PSI
// system. It configures system operation for all PSI modules. Config
// must not be modified after being passed to any PSI module. It is
// safe for concurrent use by multiple modules as they do not modify
// it.
type Config struct {
	Rand        io.Reader
	Logger      *zap.Logger
	Concurrency int
}

// GetRandom returns the source of entropy for key sampling and key
// set shuffling.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetLogger returns the configured logger or a no-op logger.
func (config *Config) GetLogger() *zap.Logger {
	if config != nil && config.Logger != nil {
		return config.Logger
	}
	return zap.NewNop()
}

// Workers returns the number of goroutines used for per-item
// computation.
func (config *Config) Workers() int {
	if config != nil && config.Concurrency > 0 {
		return config.Concurrency
	}
	return runtime.NumCPU()
}

// NewSeededRand creates a deterministic random stream from the
// seed. The stream is the ChaCha20 keystream keyed with
// SHA-256(seed). It is meant for tests and reproducible runs and it
// must not be used where real entropy is required.
func NewSeededRand(seed []byte) io.Reader {
	key := sha256.Sum256(seed)
	var nonce [chacha20.NonceSize]byte

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic(err)
	}
	return &seeded{
		cipher: c,
	}
}

type seeded struct {
	m      sync.Mutex
	cipher *chacha20.Cipher
}

func (s *seeded) Read(p []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()

	for i := range p {
		p[i] = 0
	}
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
