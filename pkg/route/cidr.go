package route

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ErrMalformedInput is returned when address or CIDR text cannot be parsed.
var ErrMalformedInput = errors.New("malformed input")

const addrBits = 32

// AddrBits renders an IPv4 address as a 32 character bit string.
func AddrBits(addr netip.Addr) string {
	var b strings.Builder
	b.Grow(addrBits)
	for _, octet := range addr.As4() {
		fmt.Fprintf(&b, "%08b", octet)
	}
	return b.String()
}

// ParseAddr parses dotted IPv4 text into its bit string.
func ParseAddr(s string) (string, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: address %q: %v", ErrMalformedInput, s, err)
	}
	if !addr.Is4() {
		return "", fmt.Errorf("%w: address %q is not IPv4", ErrMalformedInput, s)
	}
	return AddrBits(addr), nil
}

// ParseCIDR parses "a.b.c.d/n" into the network bits and prefix length. Host bits
// are masked off, so "192.168.1.77/24" routes like "192.168.1.0/24".
func ParseCIDR(s string) (string, int, error) {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(s))
	if err != nil {
		return "", 0, fmt.Errorf("%w: prefix %q: %v", ErrMalformedInput, s, err)
	}
	if !prefix.Addr().Is4() {
		return "", 0, fmt.Errorf("%w: prefix %q is not IPv4", ErrMalformedInput, s)
	}
	prefix = prefix.Masked()
	return AddrBits(prefix.Addr()), prefix.Bits(), nil
}

// PrefixFromBits converts route bits back to CIDR form.
func PrefixFromBits(bits string) (netip.Prefix, error) {
	if len(bits) > addrBits {
		return netip.Prefix{}, fmt.Errorf("%w: %d bits exceed an IPv4 prefix", ErrMalformedInput, len(bits))
	}
	var octets [4]byte
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '1':
			octets[i/8] |= 1 << (7 - i%8)
		case '0':
		default:
			return netip.Prefix{}, fmt.Errorf("%w: %q is not a bit", ErrMalformedInput, bits[i])
		}
	}
	return netip.PrefixFrom(netip.AddrFrom4(octets), len(bits)), nil
}

// AddCIDR parses cidr and attaches label to it.
func (t *Table) AddCIDR(cidr, label string) error {
	bits, length, err := ParseCIDR(cidr)
	if err != nil {
		return err
	}
	t.InsertPrefix(bits, length, label)
	return nil
}

// LookupAddr parses addr and returns the longest matching label.
func (t *Table) LookupAddr(addr string) (string, bool, error) {
	bits, err := ParseAddr(addr)
	if err != nil {
		return "", false, err
	}
	label, ok := t.Lookup(bits)
	return label, ok, nil
}
