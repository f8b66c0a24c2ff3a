// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package wireauth prepares client-side credential material for the
// wire-client capability's Attach step (spec.md §6's "attach(params) ->
// session"). It is a collaborator a concrete Client implementation may
// call from its own Attach, not something the core dispatcher invokes
// directly — the core only ever hands AttachParams.UID/PWD to Client.
// Attach, exactly as spec.md §6 frames the wire client as an external
// collaborator.
//
// Grounded on the teacher's driver/internal/protocol/auth package: its
// SCRAM-SHA256/PBKDF2 family (scrampbkdf2sha256.*.go) derives a salted
// client proof from a plaintext password before it ever reaches the
// wire; DeriveCredential follows the same challenge/response shape
// (PBKDF2-HMAC-SHA256 over password+salt) generalized from HANA's fixed
// SCRAM parameters to an arbitrary server-supplied salt/round count, so
// a wire-client loader that wants pre-hashed credentials (rather than
// plaintext PWD) has a ready primitive instead of hand-rolling one.
package wireauth

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// ProofSize is the length in bytes of a derived client proof, matching
// the teacher's clientProofSize (one SHA-256 digest).
const ProofSize = sha256.Size

// DeriveCredential derives a salted client proof from password using
// PBKDF2-HMAC-SHA256, the same primitive family the teacher's SCRAM auth
// variants use to avoid ever putting a plaintext password on the wire.
// rounds must be > 0; salt is typically server-supplied at attach time.
func DeriveCredential(password string, salt []byte, rounds int) ([]byte, error) {
	if rounds <= 0 {
		return nil, fmt.Errorf("wireauth: rounds must be positive, got %d", rounds)
	}
	key := pbkdf2.Key([]byte(password), salt, rounds, ProofSize, sha256.New)
	sum := sha256.Sum256(key)
	return sum[:], nil
}
