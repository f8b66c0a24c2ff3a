// SPDX-FileCopyrightText: 2014-2026 godbc contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package dsn parses the connection-string keys of spec.md §6 into the
// resolved AttachParams the wire-client loader and Connection.Connect
// consume. Grounded on driver/internal/dsn's url.Values-based key/value
// parser (same "parse known keys, reject the rest" shape and ParseError
// wrapping), generalized here from go-hdb's URL-style DSN to ODBC's
// semicolon-separated keyword=value connection string.
package dsn

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fbclient/godbc/sqlscript"
)

// Recognized connection-string keys, per spec.md §6.
const (
	KeyDriver              = "DRIVER"
	KeyDSN                 = "DSN"
	KeyUID                 = "UID"
	KeyPWD                 = "PWD"
	KeyDatabase            = "DATABASE"
	KeyRole                = "ROLE"
	KeyCharset             = "CHARSET"
	KeyDialect             = "DIALECT"
	KeyReadOnly            = "READONLY"
	KeyAutoQuoted          = "AUTOQUOTED"
	KeyClient              = "CLIENT"
	KeyConnSettings        = "CONNSETTINGS"
	KeyWriteResultAsDiag   = "WRITE_RESULT_AS_DIAG"
)

const (
	defaultCharset = "UTF8"
	defaultDialect = 3
)

// ParseError is returned for a malformed or unrecognized connection string,
// mirroring driver/internal/dsn.ParseError's shape.
type ParseError struct {
	s   string
	err error
}

func (e *ParseError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.s
}

func (e *ParseError) Unwrap() error { return e.err }

// Info is a fully parsed connection string, defaults applied.
type Info struct {
	Driver              string
	DSN                 string
	UID, PWD            string
	Database            string
	Role                string
	Charset             string
	Dialect             int
	ReadOnly            bool
	AutoQuoted          bool
	ClientPath          string
	ConnSettings        []string
	WriteResultAsDiag   bool
}

// Parse splits s on ';', each segment a KEY=VALUE pair (VALUE optional for
// boolean flags, defaulting to true when bare), and validates every key is
// one spec.md §6 recognizes. CONNSETTINGS is the one exception: since its
// own value is semicolon-joined SQL, it must be the last key in the string
// and consumes everything after its '=' rather than being cut at the next
// ';'.
func Parse(s string) (*Info, error) {
	info := &Info{Charset: defaultCharset, Dialect: defaultDialect}
	if strings.TrimSpace(s) == "" {
		return nil, &ParseError{s: "empty connection string"}
	}

	head, tail, ok := cutConnSettings(s)
	if ok {
		stmts, err := splitStatements(tail)
		if err != nil {
			return nil, parseError(KeyConnSettings, tail)
		}
		info.ConnSettings = stmts
	}

	for _, part := range strings.Split(head, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.ToUpper(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case KeyDriver:
			info.Driver = value
		case KeyDSN:
			info.DSN = value
		case KeyUID:
			info.UID = value
		case KeyPWD:
			info.PWD = value
		case KeyDatabase:
			info.Database = value
		case KeyRole:
			info.Role = value
		case KeyCharset:
			info.Charset = value
		case KeyDialect:
			if !hasValue {
				return nil, parseError(key, value)
			}
			d, err := strconv.Atoi(value)
			if err != nil {
				return nil, parseError(key, value)
			}
			info.Dialect = d
		case KeyReadOnly:
			b, err := parseBoolFlag(value, hasValue)
			if err != nil {
				return nil, parseError(key, value)
			}
			info.ReadOnly = b
		case KeyAutoQuoted:
			b, err := parseBoolFlag(value, hasValue)
			if err != nil {
				return nil, parseError(key, value)
			}
			info.AutoQuoted = b
		case KeyClient:
			info.ClientPath = value
		case KeyWriteResultAsDiag:
			b, err := parseBoolFlag(value, hasValue)
			if err != nil {
				return nil, parseError(key, value)
			}
			info.WriteResultAsDiag = b
		default:
			return nil, &ParseError{s: fmt.Sprintf("connection attribute %q is not supported", key)}
		}
	}
	return info, nil
}

// parseBoolFlag treats a bare key (no '=') as true, matching ODBC keyword
// connection strings where READONLY alone means READONLY=1.
func parseBoolFlag(value string, hasValue bool) (bool, error) {
	if !hasValue || value == "" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

// cutConnSettings locates a standalone "CONNSETTINGS=" key, matched
// case-insensitively at the start of s or right after a ';', and splits s
// into everything before it (head, still plain KEY=VALUE pairs) and
// everything after its '=' (tail, the raw CONNSETTINGS SQL). ok is false
// when no such key is present, in which case head == s.
func cutConnSettings(s string) (head, tail string, ok bool) {
	const key = KeyConnSettings + "="
	upper := strings.ToUpper(s)
	for search := 0; ; {
		i := strings.Index(upper[search:], key)
		if i < 0 {
			return s, "", false
		}
		i += search
		before := strings.TrimSpace(s[:i])
		if i == 0 || strings.HasSuffix(before, ";") {
			return strings.TrimSuffix(before, ";"), s[i+len(key):], true
		}
		search = i + len(key)
	}
}

// splitStatements breaks CONNSETTINGS' semicolon-joined SQL into individual
// statements using the same quote-aware scanner sqlscript.Scan uses to
// split a script file, so a statement can itself contain a literal
// semicolon inside a quoted string without breaking the split.
func splitStatements(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	scanner := bufio.NewScanner(strings.NewReader(value))
	scanner.Split(sqlscript.Scan)
	var out []string
	for scanner.Scan() {
		if stmt := strings.TrimSpace(scanner.Text()); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out, scanner.Err()
}

func parseError(key, value string) error {
	return &ParseError{s: fmt.Sprintf("failed to parse %s: %q", key, value)}
}
