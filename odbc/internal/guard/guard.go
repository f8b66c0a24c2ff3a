// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package guard implements the two-tier locking discipline of spec.md
// §4.3/§5: a reader-writer lock per environment, plus a mutex per
// connection. Grounded on the teacher's session.Lock()/Unlock()
// pattern repeated at the top of every Conn/stmt method in
// driver/connection.go, made explicit here as a reusable pair of guard
// types instead of being inlined into every handle method.
package guard

import "sync"

// EnvLock is an environment's reader-writer lock; each Environment carries
// its own, so it is not shared across environments. Environment-level
// mutations (freeing the environment, setting its version, wire-client
// load/unload) take the write lock. In package odbc only SQLAllocConnect
// takes the read lock; connection-, statement- and descriptor-level entry
// points take only the connection's ConnLock.
type EnvLock struct {
	mu sync.RWMutex
}

// WriteLocked runs fn while holding the write lock.
func (g *EnvLock) WriteLocked(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}

// ReadLocked runs fn while holding the read lock.
func (g *EnvLock) ReadLocked(fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn()
}

// ConnLock is the per-connection mutex, held for the entire duration of
// any statement-, descriptor-, or connection-method call on that
// connection. It is deliberately NOT used by Cancel or the query-timeout
// timer (spec.md §4.3): those signal the wire client's abort primitive
// directly so they can race with an in-flight call on the same
// connection.
type ConnLock struct {
	mu sync.Mutex
}

// Locked runs fn while holding the connection lock.
func (c *ConnLock) Locked(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// TryLocked reports whether the lock was free and, if so, runs fn while
// holding it. It never blocks waiting for the lock.
func (c *ConnLock) TryLocked(fn func()) bool {
	if !c.mu.TryLock() {
		return false
	}
	defer c.mu.Unlock()
	fn()
	return true
}
