// Package netx holds small URL and host helpers shared by the client transport.
package netx

import (
	"net"
	"net/url"
	"strings"
)

// IsLoopbackHost reports whether host names this machine: "localhost" or a
// loopback IP literal. A port, if present, is ignored.
func IsLoopbackHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// IsConfidential reports whether traffic to u is protected in transit:
// https, or plain http that never leaves the machine.
func IsConfidential(u *url.URL) bool {
	if u == nil {
		return false
	}
	if strings.EqualFold(u.Scheme, "https") {
		return true
	}
	return IsLoopbackHost(u.Hostname())
}
