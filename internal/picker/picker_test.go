package picker

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FennelBeef/adbpick/internal/adb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBridge serves scripted listings: each call to Devices pops the
// next one. Connect succeeds for serials in connectable.
type fakeBridge struct {
	listings    [][]adb.Device
	listErr     error
	connectable map[string]bool

	connects    []string
	disconnects []string
}

func (f *fakeBridge) Devices() ([]adb.Device, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.listings) == 0 {
		return nil, adb.ErrNoDevices
	}
	next := f.listings[0]
	if len(f.listings) > 1 {
		f.listings = f.listings[1:]
	}
	return next, nil
}

func (f *fakeBridge) Connect(serial string) error {
	f.connects = append(f.connects, serial)
	if f.connectable[serial] {
		return nil
	}
	return assert.AnError
}

func (f *fakeBridge) Disconnect(serial string) error {
	f.disconnects = append(f.disconnects, serial)
	return nil
}

func newPicker(bridge Bridge, input string) (*Picker, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Picker{
		Bridge: bridge,
		In:     strings.NewReader(input),
		Out:    out,
	}, out
}

func TestPartition(t *testing.T) {
	devices := []adb.Device{
		{Serial: "a", State: "device"},
		{Serial: "b", State: "offline"},
		{Serial: "c", State: "device"},
		{Serial: "d", State: "unauthorized"},
	}

	online, offline := Partition(devices)

	assert.Equal(t, []string{"a", "c"}, serials(online))
	assert.Equal(t, []string{"b", "d"}, serials(offline))
	// Exhaustive and disjoint: counts add up to the input.
	assert.Len(t, append(online, offline...), len(devices))
}

func serials(devices []adb.Device) []string {
	var s []string
	for _, d := range devices {
		s = append(s, d.Serial)
	}
	return s
}

func TestSelectOnlineEmpty(t *testing.T) {
	p, out := newPicker(&fakeBridge{}, "")

	_, ok := p.SelectOnline(nil)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "No online devices")
}

func TestSelectOnlineSingleAutoSelects(t *testing.T) {
	p, out := newPicker(&fakeBridge{}, "")
	only := adb.Device{Serial: "R58M123ABC", State: "device"}

	selected, ok := p.SelectOnline([]adb.Device{only})
	require.True(t, ok)
	assert.Equal(t, only, selected)
	// No prompt must be issued for a single device.
	assert.NotContains(t, out.String(), "Select")
}

func TestSelectOnlinePrompted(t *testing.T) {
	online := []adb.Device{
		{Serial: "first", State: "device"},
		{Serial: "second", State: "device"},
	}

	p, _ := newPicker(&fakeBridge{}, "1\n")
	selected, ok := p.SelectOnline(online)
	require.True(t, ok)
	assert.Equal(t, "first", selected.Serial)

	p, _ = newPicker(&fakeBridge{}, "2\n")
	selected, ok = p.SelectOnline(online)
	require.True(t, ok)
	assert.Equal(t, "second", selected.Serial)
}

func TestSelectOnlineRejectsBadInput(t *testing.T) {
	online := []adb.Device{
		{Serial: "first", State: "device"},
		{Serial: "second", State: "device"},
	}

	for input, wantMsg := range map[string]string{
		"3\n":   "Invalid selection",
		"0\n":   "Invalid selection",
		"abc\n": "Please enter a number",
		"":      "No selection made",
	} {
		p, out := newPicker(&fakeBridge{}, input)
		_, ok := p.SelectOnline(online)
		assert.False(t, ok, "input %q", input)
		assert.Contains(t, out.String(), wantMsg, "input %q", input)
	}
}

func TestReconnectUSBRefused(t *testing.T) {
	bridge := &fakeBridge{}
	p, out := newPicker(bridge, "")

	ok := p.ReconnectDevice(adb.Device{Serial: "R58M123ABC", State: "offline"})
	assert.False(t, ok)
	assert.Contains(t, out.String(), "USB device")
	assert.Empty(t, bridge.connects)
	assert.Empty(t, bridge.disconnects)
}

func TestReconnectWirelessDisconnectsFirst(t *testing.T) {
	bridge := &fakeBridge{connectable: map[string]bool{"192.168.1.5:5555": true}}
	p, _ := newPicker(bridge, "")

	ok := p.ReconnectDevice(adb.Device{Serial: "192.168.1.5:5555", State: "offline"})
	assert.True(t, ok)
	assert.Equal(t, []string{"192.168.1.5:5555"}, bridge.disconnects)
	assert.Equal(t, []string{"192.168.1.5:5555"}, bridge.connects)
}

func TestRunAutoSelectsSoleOnlineDevice(t *testing.T) {
	bridge := &fakeBridge{listings: [][]adb.Device{{
		{Serial: "192.168.1.5:5555", State: "device"},
		{Serial: "adb-ABC123._adb-tls-connect._tcp.", State: "offline"},
	}}}
	p, out := newPicker(bridge, "")

	serial, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.5:5555", serial)
	assert.Contains(t, out.String(), "Auto-selecting")
	assert.Contains(t, out.String(), "mDNS wireless (TLS)")
}

func TestRunNoDevices(t *testing.T) {
	p, out := newPicker(&fakeBridge{}, "")

	serial, err := p.Run()
	require.NoError(t, err)
	assert.Empty(t, serial)
	assert.Contains(t, out.String(), "No devices found")
}

func TestRunReconnectRevivesDevice(t *testing.T) {
	addr := "192.168.1.5:5555"
	bridge := &fakeBridge{
		listings: [][]adb.Device{
			{{Serial: addr, State: "offline"}},
			{{Serial: addr, State: "device"}},
		},
		connectable: map[string]bool{addr: true},
	}
	p, out := newPicker(bridge, "y\n")

	serial, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, addr, serial)
	assert.Equal(t, []string{addr}, bridge.connects)
	assert.Contains(t, out.String(), "Reconnected")
}

func TestRunReconnectDeclined(t *testing.T) {
	bridge := &fakeBridge{listings: [][]adb.Device{
		{{Serial: "192.168.1.5:5555", State: "offline"}},
	}}
	p, out := newPicker(bridge, "n\n")

	serial, err := p.Run()
	require.NoError(t, err)
	assert.Empty(t, serial)
	assert.Empty(t, bridge.connects)
	assert.Contains(t, out.String(), "No online devices")
}

func TestRunReconnectPolicyNever(t *testing.T) {
	bridge := &fakeBridge{listings: [][]adb.Device{
		{{Serial: "192.168.1.5:5555", State: "offline"}},
	}}
	p, out := newPicker(bridge, "")
	p.Reconnect = ReconnectNever

	serial, err := p.Run()
	require.NoError(t, err)
	assert.Empty(t, serial)
	assert.Empty(t, bridge.connects)
	// Policy decided, so no prompt either.
	assert.NotContains(t, out.String(), "[y/N]")
}

func TestRunReconnectPolicyAlways(t *testing.T) {
	addr := "192.168.1.5:5555"
	bridge := &fakeBridge{
		listings: [][]adb.Device{
			{{Serial: addr, State: "offline"}},
			{{Serial: addr, State: "device"}},
		},
		connectable: map[string]bool{addr: true},
	}
	p, _ := newPicker(bridge, "")
	p.Reconnect = ReconnectAlways

	serial, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, addr, serial)
}

func TestRunObserverSeesListings(t *testing.T) {
	bridge := &fakeBridge{listings: [][]adb.Device{{
		{Serial: "R58M123ABC", State: "device"},
	}}}
	p, _ := newPicker(bridge, "")

	var observed []adb.Device
	p.Observe = func(devices []adb.Device) { observed = append(observed, devices...) }

	_, err := p.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"R58M123ABC"}, serials(observed))
}
