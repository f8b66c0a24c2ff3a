// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package odbc

import (
	"fmt"
	"sync"

	"github.com/fbclient/godbc/odbc/internal/guard"
)

// Version is the ODBC behavior version an Environment declares, which
// selects the SQLSTATE spelling column (spec.md §4.2) and gates
// 3.8-only features.
type Version int

// Supported environment versions.
const (
	VersionV2 Version = iota
	VersionV3
	VersionV38
)

// wireClientHandle is the process-wide, refcounted loaded wire-client
// library reference named in spec.md §3 "Environment" and §5 "Shared
// resources". Loading/unloading the actual library is an external
// collaborator; this tracks only the refcount under the env write lock.
type wireClientHandle struct {
	client Client
	refs   int
}

var (
	registryMu sync.Mutex
	registry   = map[string]*wireClientHandle{}
)

// Environment is the root handle: it owns a set of connections and
// holds the process-wide registry of loaded wire-client handles.
// Grounded on the teacher's package-level driver registration pattern,
// generalized into an explicit per-environment object per spec.md §3.
type Environment struct {
	Handle

	lock    guard.EnvLock
	version Version
	conns   map[*Connection]struct{}
	mu      sync.Mutex // protects conns

	statsMu   sync.Mutex // protects execTimes
	execTimes map[string]*StatsHistogram
}

// NewEnvironment allocates a fresh Environment at the given version.
func NewEnvironment(v Version) *Environment {
	return &Environment{
		Handle:  newHandle(KindEnvironment),
		version: v,
		conns:   map[*Connection]struct{}{},
	}
}

// Version reports the environment's declared ODBC version.
func (e *Environment) Version() Version { return e.version }

// SetVersion changes the environment's declared version; per spec.md
// §4.3 this is an environment-level mutation and takes the write lock.
func (e *Environment) SetVersion(v Version) {
	e.lock.WriteLocked(func() { e.version = v })
}

// AllocConnection creates a child Connection, per spec.md §3's lifecycle
// contract: creation fails if the parent cannot admit children. An
// Environment always admits connections, so this never fails, but the
// signature matches the other Alloc* methods for dispatcher uniformity.
func (e *Environment) AllocConnection() (*Connection, error) {
	c := newConnection(e)
	e.mu.Lock()
	e.conns[c] = struct{}{}
	e.mu.Unlock()
	return c, nil
}

// FreeConnection detaches c from the environment after the connection
// itself has been fully torn down (statements closed, session
// disconnected). Per spec.md §3 "Freeing a parent handle recursively
// frees all children", but the reverse (freeing a child) simply
// removes it from the parent's set.
func (e *Environment) FreeConnection(c *Connection) {
	e.mu.Lock()
	delete(e.conns, c)
	e.mu.Unlock()
}

// Free recursively frees every child connection, per spec.md §3's
// lifecycle contract for freeing a parent handle.
func (e *Environment) Free() error {
	e.mu.Lock()
	conns := make([]*Connection, 0, len(e.conns))
	for c := range e.conns {
		conns = append(conns, c)
	}
	e.mu.Unlock()
	for _, c := range conns {
		if err := c.Disconnect(); err != nil {
			return err
		}
	}
	return nil
}

// LoadWireClient acquires a refcounted reference to the named
// wire-client library, loading it via loader on first acquisition.
// Held under the environment write lock, per spec.md §4.3.
func (e *Environment) LoadWireClient(name string, loader func() (Client, error)) (Client, error) {
	var client Client
	var err error
	e.lock.WriteLocked(func() {
		registryMu.Lock()
		defer registryMu.Unlock()
		h, ok := registry[name]
		if !ok {
			var c Client
			if c, err = loader(); err != nil {
				return
			}
			h = &wireClientHandle{client: c}
			registry[name] = h
		}
		h.refs++
		client = h.client
	})
	if err != nil {
		return nil, fmt.Errorf("odbc: loading wire client %q: %w", name, err)
	}
	return client, nil
}

// UnloadWireClient releases a reference acquired by LoadWireClient,
// unloading and removing it from the registry once the refcount drops
// to zero.
func (e *Environment) UnloadWireClient(name string) {
	e.lock.WriteLocked(func() {
		registryMu.Lock()
		defer registryMu.Unlock()
		h, ok := registry[name]
		if !ok {
			return
		}
		h.refs--
		if h.refs <= 0 {
			delete(registry, name)
		}
	})
}
