// Package security holds the TLS settings of the database transport.
//
// The zero value keeps Go's defaults (system roots, TLS 1.2 minimum). A
// custom CA bundle is useful behind TLS-intercepting proxies:
//
//	cfg := security.TLSConfig{CAFile: "/etc/ssl/corp-ca.pem", MinVersion: "1.3"}
//	tlsConfig, err := cfg.Build()
package security
