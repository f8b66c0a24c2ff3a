// Package proxy dials a wire-client's network connection through a SOCKS5
// proxy, for the case where the `CLIENT=` connection-string key (spec.md
// §6) names a client library that can only reach the server through a
// jump host. The core never imports this package directly: it is a
// transport-level collaborator a concrete wire-client loader constructs
// and hands to Client.Attach, the same way a real SOCKS5-aware driver
// plugs a custom Dialer into its connector before dialing.
package proxy

// Config holds the parameters of one SOCKS5 proxy endpoint.
type Config struct {
	Address    string
	JWTToken   string
	LocationID string
	User       string
	Password   string
}
