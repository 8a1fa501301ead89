// Package netaddr encodes peer endpoints for the gossip protocol.
//
// An Address is an IP (v4 or v6) plus a 16-bit port. On the wire every IP
// takes its 16-byte IPv6 form, so v4 addresses travel IPv4-mapped
// (::ffff:a.b.c.d) and are unwrapped back to 4-byte v4 form when decoded.
package netaddr

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/rony4d/go-postchain/utils/wire"
)

const (
	// IPv6Size is the wire width of an IP.
	IPv6Size = net.IPv6len
	// PortSize is the wire width of a port.
	PortSize = 2
	// AddressSize is the wire width of one Address.
	AddressSize = IPv6Size + PortSize
)

// ErrInvalidIP is returned when an Address carries an IP that is neither a
// 4-byte nor a 16-byte address.
var ErrInvalidIP = errors.New("address ip must be 4 or 16 bytes")

// Address is a peer endpoint.
type Address struct {
	IP   net.IP
	Port uint16
}

// New returns the address for ip:port, with the IP in canonical form.
func New(ip net.IP, port uint16) Address {
	return Address{IP: canonicalIP(ip), Port: port}
}

// ParseAddress parses "host:port" where host is a literal IPv4 or IPv6 address.
func ParseAddress(s string) (Address, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Address{}, err
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return Address{}, fmt.Errorf("%q: %w", host, ErrInvalidIP)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Address{}, fmt.Errorf("port %q: %v", portStr, err)
	}
	return New(ip, uint16(port)), nil
}

// Equal reports whether a and b name the same endpoint. A v4 address equals
// its IPv4-mapped v6 form.
func (a Address) Equal(b Address) bool {
	return a.Port == b.Port && a.IP.Equal(b.IP)
}

// String formats the address as host:port, bracketing v6 hosts.
func (a Address) String() string {
	return net.JoinHostPort(a.IP.String(), strconv.Itoa(int(a.Port)))
}

// MarshalWire writes the 16-byte IPv6 form followed by the little-endian port.
func (a Address) MarshalWire(w *wire.Writer) error {
	ip16 := a.IP.To16()
	if ip16 == nil {
		return fmt.Errorf("%w: %d bytes", ErrInvalidIP, len(a.IP))
	}
	w.FixedBytes(ip16)
	w.U16(a.Port)
	return nil
}

// ReadAddress decodes one 18-byte address.
func ReadAddress(r *wire.Reader) (Address, error) {
	ip := make(net.IP, IPv6Size)
	if err := r.FixedBytes(ip); err != nil {
		return Address{}, err
	}
	port, err := r.U16()
	if err != nil {
		return Address{}, err
	}
	return New(ip, port), nil
}

// canonicalIP unwraps IPv4-mapped addresses to their 4-byte form.
func canonicalIP(ip net.IP) net.IP {
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip
}
