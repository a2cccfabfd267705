// Package netutil provides the small local-network helpers the proxy
// needs at startup, independent of any backend or storage concern.
package netutil

import (
	"errors"
	"net"
)

// ErrNoAddress is returned when no non-loopback IPv4 address can be found
// on any local interface.
var ErrNoAddress = errors.New("netutil: no non-loopback IPv4 address found")

// PrimaryIPv4 returns the first non-loopback IPv4 address bound to a local
// interface: the address the listener binds to and logs at startup.
func PrimaryIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		ip4 := ipNet.IP.To4()
		if ip4 == nil {
			continue
		}
		return ip4.String(), nil
	}

	return "", ErrNoAddress
}
