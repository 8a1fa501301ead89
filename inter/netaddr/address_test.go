package netaddr

import (
	"errors"
	"net"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-postchain/utils/wire"
)

func mustParse(t *testing.T, s string) Address {
	t.Helper()
	a, err := ParseAddress(s)
	require.NoError(t, err)
	return a
}

// TestAddress_RoundTrip checks v4 and v6 addresses survive encoding.
func TestAddress_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		v4   bool
	}{
		{"v4", Address{IP: net.ParseIP("200.137.85.200").To4(), Port: 42000}, true},
		{"v4 in 16-byte form", Address{IP: net.ParseIP("10.0.0.1"), Port: 1}, true},
		{"v6", Address{IP: net.ParseIP("2804:d45:e0e5:8100:a42e:8a4:3e95:deaf"), Port: 42000}, false},
		{"v6 loopback", Address{IP: net.IPv6loopback, Port: 65535}, false},
		{"v6 unspecified", Address{IP: net.IPv6unspecified, Port: 0}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			raw, err := wire.Marshal(test.addr, AddressSize)
			require.NoError(err)
			require.Len(raw, AddressSize)

			got, err := ReadAddress(wire.NewReader(raw))
			require.NoError(err)
			require.True(test.addr.Equal(got), "%s != %s", test.addr, got)
			require.Equal(test.addr.String(), got.String())
			if test.v4 {
				require.Len(got.IP, net.IPv4len, "mapped v4 must decode to v4 form")
			} else {
				require.Len(got.IP, net.IPv6len)
			}
		})
	}
}

// TestAddress_WireLayout pins the mapped prefix and the port byte order.
func TestAddress_WireLayout(t *testing.T) {
	raw, err := wire.Marshal(mustParse(t, "200.137.85.200:42000"), AddressSize)
	require.NoError(t, err)
	require.Equal(t, common.FromHex("00000000000000000000ffffc88955c810a4"), raw)
}

// TestAddress_InvalidIP refuses to encode an IP of the wrong length.
func TestAddress_InvalidIP(t *testing.T) {
	for _, ip := range []net.IP{nil, {1, 2, 3}} {
		_, err := wire.Marshal(Address{IP: ip, Port: 1}, AddressSize)
		require.True(t, errors.Is(err, ErrInvalidIP))
	}
}

// TestAddress_Truncated fails on short input.
func TestAddress_Truncated(t *testing.T) {
	for _, size := range []int{0, IPv6Size - 1, IPv6Size, AddressSize - 1} {
		_, err := ReadAddress(wire.NewReader(make([]byte, size)))
		require.Equal(t, wire.ErrUnexpectedEnd, err, "size %d", size)
	}
}

// TestParseAddress covers host:port parsing.
func TestParseAddress(t *testing.T) {
	require := require.New(t)

	a := mustParse(t, "[::1]:8080")
	require.Equal(uint16(8080), a.Port)
	require.True(a.IP.Equal(net.IPv6loopback))
	require.Equal("[::1]:8080", a.String())

	a = mustParse(t, "[::ffff:1.2.3.4]:7")
	require.Len(a.IP, net.IPv4len)
	require.Equal("1.2.3.4:7", a.String())

	for _, bad := range []string{"1.2.3.4", "host.example:80", "1.2.3.4:70000", "1.2.3.4:-1"} {
		_, err := ParseAddress(bad)
		require.Error(err, bad)
	}
}
