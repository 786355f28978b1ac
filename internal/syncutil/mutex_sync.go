//go:build !deadlock

// Package syncutil provides the lock guarding record type registries.
// The default build uses sync.Mutex directly.
// Build with -tags=deadlock to route it through github.com/sasha-s/go-deadlock.
package syncutil

import "sync"

// Mutex is the registry lock.
//
//nolint:gocritic // embedding exposes Lock and Unlock
type Mutex struct {
	sync.Mutex
}
