package models

import (
	"net/netip"
	"strings"
)

// ipv6BucketBits is the prefix length IPv6 clients are bucketed by.
const ipv6BucketBits = 64

// ClientKey builds the bucket key for a client address and endpoint class.
//
// IPv4 clients get one bucket per address. IPv6 clients get one bucket per /64,
// otherwise a single host could rotate through its interface identifiers and
// never hit the limit. Unparseable addresses are used verbatim with ':' escaped
// so they cannot forge extra key segments.
func ClientKey(ip string, class EndpointClass) string {
	return "ip:" + clientSegment(ip) + ":" + string(class)
}

func clientSegment(ip string) string {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return strings.ReplaceAll(ip, ":", "_")
	}
	addr = addr.Unmap().WithZone("")
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(ipv6BucketBits)
	if err != nil {
		return strings.ReplaceAll(addr.String(), ":", "_")
	}
	return strings.ReplaceAll(prefix.String(), ":", "_")
}
