// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

package wireauth

import (
	"errors"
	"testing"

	"github.com/go-ldap/ldap/v3"
)

type fakeDirectory struct {
	bindErr error
	entries []*ldap.Entry
	searchErr error
}

func (f *fakeDirectory) Bind(username, password string) error { return f.bindErr }

func (f *fakeDirectory) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &ldap.SearchResult{Entries: f.entries}, nil
}

func newEntry(uid string) *ldap.Entry {
	return ldap.NewEntry("uid="+uid+",ou=people,dc=example,dc=com", map[string][]string{
		"uid": {uid},
	})
}

func TestResolveUIDSingleEntry(t *testing.T) {
	dir := &fakeDirectory{entries: []*ldap.Entry{newEntry("scott")}}
	uid, err := ResolveUID(dir, "ou=people,dc=example,dc=com", "cn=admin", "adminpw", "(cn=scott)", "uid")
	if err != nil {
		t.Fatalf("ResolveUID: %v", err)
	}
	if uid != "scott" {
		t.Fatalf("uid = %q, want %q", uid, "scott")
	}
}

func TestResolveUIDBindFailure(t *testing.T) {
	dir := &fakeDirectory{bindErr: errors.New("invalid credentials")}
	if _, err := ResolveUID(dir, "ou=people,dc=example,dc=com", "cn=admin", "wrong", "(cn=scott)", "uid"); err == nil {
		t.Fatal("expected a bind error")
	}
}

func TestResolveUIDNoEntries(t *testing.T) {
	dir := &fakeDirectory{}
	if _, err := ResolveUID(dir, "ou=people,dc=example,dc=com", "cn=admin", "adminpw", "(cn=nobody)", "uid"); err == nil {
		t.Fatal("expected a not-found error")
	}
}

func TestResolveUIDMultipleEntries(t *testing.T) {
	dir := &fakeDirectory{entries: []*ldap.Entry{newEntry("scott"), newEntry("scott2")}}
	if _, err := ResolveUID(dir, "ou=people,dc=example,dc=com", "cn=admin", "adminpw", "(cn=scott*)", "uid"); err == nil {
		t.Fatal("expected an ambiguous-result error")
	}
}
