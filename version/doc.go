// Package version provides build version information for firekit.
//
// Version and GitCommit are set at compile time via -ldflags; when unset,
// GitCommit falls back to the VCS stamp embedded by the Go toolchain:
//
//	go build -ldflags "-X github.com/kbukum/firekit/version.Version=1.0.0" ./cmd/firekit
package version
