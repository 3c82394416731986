package discovery

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectTargetPrefersIPv4(t *testing.T) {
	e := Endpoint{
		Host:  "Pixel-7.local.",
		Addrs: []net.IP{net.ParseIP("fe80::1"), net.ParseIP("192.168.1.5")},
		Port:  5555,
	}
	assert.Equal(t, "192.168.1.5:5555", e.ConnectTarget())
}

func TestConnectTargetIPv6Only(t *testing.T) {
	e := Endpoint{
		Host:  "Pixel-7.local.",
		Addrs: []net.IP{net.ParseIP("fe80::1")},
		Port:  5555,
	}
	assert.Equal(t, "[fe80::1]:5555", e.ConnectTarget())
}

func TestConnectTargetFallsBackToHost(t *testing.T) {
	e := Endpoint{Host: "Pixel-7.local.", Port: 5555}
	assert.Equal(t, "Pixel-7.local.:5555", e.ConnectTarget())
}
