//go:build deadlock

// Package syncutil provides the lock guarding record type registries.
// This file is compiled when building with -tags=deadlock.
package syncutil

import deadlock "github.com/sasha-s/go-deadlock"

// Mutex reports lock-order inversions and long waits in registry access.
type Mutex struct {
	deadlock.Mutex
}
