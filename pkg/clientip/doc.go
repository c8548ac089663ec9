// Package clientip resolves the visitor's address for request logs.
//
// The site runs behind a proxy, so the TCP peer is usually the proxy. A
// Resolver checks the configured forwarding headers in order and falls back
// to RemoteAddr. Headers are trusted as-is: only list headers your proxy
// overwrites.
package clientip
