package adb

import "strings"

// StateOnline is the status token adb reports for a ready device.
// Anything else (offline, unauthorized, no permissions, ...) counts
// as offline; the token set is open.
const StateOnline = "device"

// mdnsPrefix marks serials assigned by adb's mDNS auto-discovery,
// e.g. "adb-ABC123._adb-tls-connect._tcp.".
const mdnsPrefix = "adb-"

// tlsMarker appears in mDNS serials of TLS-paired (Android 11+) devices.
const tlsMarker = "_tls-connect"

// Device is one row of `adb devices` output.
type Device struct {
	Serial string
	State  string
}

// IsOnline returns true if the device is ready to accept commands.
func (d Device) IsOnline() bool {
	return d.State == StateOnline
}

// Transport describes how a device is attached. It is one of USB,
// Wireless, or MDNS; fields exist only on the variant they belong to.
type Transport interface {
	// Wireless reports whether the transport goes over the network
	// and can therefore be re-established with `adb connect`.
	Wireless() bool
	String() string

	transport()
}

// USB is a cable-attached device addressed by its hardware serial.
type USB struct{}

func (USB) Wireless() bool { return false }
func (USB) String() string { return "USB" }
func (USB) transport()     {}

// Wireless is a network device addressed as host:port.
type Wireless struct{}

func (Wireless) Wireless() bool { return true }
func (Wireless) String() string { return "wireless" }
func (Wireless) transport()     {}

// MDNS is a network device addressed by an mDNS service instance name
// of the form <base>.<service>.<protocol>.
type MDNS struct {
	BaseID    string
	Service   string
	Protocol  string
	Encrypted bool
}

func (MDNS) Wireless() bool { return true }
func (m MDNS) String() string {
	if m.Encrypted {
		return "mDNS wireless (TLS)"
	}
	return "mDNS wireless"
}
func (MDNS) transport() {}

// Classify maps a serial to its transport. The decision depends only
// on the serial's lexical form: the mDNS prefix wins, then a colon
// means host:port wireless, and everything else is a USB serial.
func Classify(serial string) Transport {
	if strings.HasPrefix(serial, mdnsPrefix) {
		m := MDNS{Encrypted: strings.Contains(serial, tlsMarker)}
		parts := strings.Split(serial, ".")
		m.BaseID = parts[0]
		if len(parts) > 1 {
			m.Service = parts[1]
		}
		if len(parts) > 2 {
			m.Protocol = parts[2]
		}
		return m
	}
	if strings.Contains(serial, ":") {
		return Wireless{}
	}
	return USB{}
}
