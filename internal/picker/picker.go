// Package picker drives the interactive device-selection workflow:
// list, partition by reachability, optionally reconnect offline
// wireless devices, then pick one online device.
package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FennelBeef/adbpick/internal/adb"
)

// Bridge is the slice of the adb client the picker needs.
type Bridge interface {
	Devices() ([]adb.Device, error)
	Connect(serial string) error
	Disconnect(serial string) error
}

// ReconnectPolicy controls whether the workflow tries to revive
// offline devices when nothing is online.
type ReconnectPolicy int

const (
	// ReconnectAsk prompts the user before attempting reconnects.
	ReconnectAsk ReconnectPolicy = iota
	// ReconnectAlways attempts reconnects without asking.
	ReconnectAlways
	// ReconnectNever skips reconnect attempts entirely.
	ReconnectNever
)

// Picker runs the selection workflow against a Bridge, reading
// prompts from In and writing status to Out.
type Picker struct {
	Bridge    Bridge
	In        io.Reader
	Out       io.Writer
	Reconnect ReconnectPolicy

	// Observe, if set, is called with every successful listing.
	Observe func([]adb.Device)
}

// Partition splits devices into online and offline, preserving the
// original relative order within each part. Every device lands in
// exactly one of the two.
func Partition(devices []adb.Device) (online, offline []adb.Device) {
	for _, d := range devices {
		if d.IsOnline() {
			online = append(online, d)
		} else {
			offline = append(offline, d)
		}
	}
	return online, offline
}

// Present prints a numbered summary of both partitions. Offline
// numbering continues after the online entries so every device keeps
// a distinct index.
func (p *Picker) Present(online, offline []adb.Device) {
	fmt.Fprintln(p.Out, "Connected devices:")
	fmt.Fprintln(p.Out, strings.Repeat("-", 60))
	if len(online) > 0 {
		fmt.Fprintln(p.Out, "Online:")
		for i, d := range online {
			fmt.Fprintf(p.Out, "  %d. %-44s %s\n", i+1, d.Serial, adb.Classify(d.Serial))
		}
	}
	if len(offline) > 0 {
		fmt.Fprintln(p.Out, "Offline:")
		for i, d := range offline {
			fmt.Fprintf(p.Out, "  %d. %-44s %s [%s]\n",
				len(online)+i+1, d.Serial, adb.Classify(d.Serial), d.State)
		}
	}
	fmt.Fprintln(p.Out, strings.Repeat("-", 60))
}

// SelectOnline picks one device from the online partition. A single
// device is taken without prompting; with more than one, the user
// gets exactly one attempt at a 1-based index.
func (p *Picker) SelectOnline(online []adb.Device) (adb.Device, bool) {
	switch len(online) {
	case 0:
		fmt.Fprintln(p.Out, "No online devices available.")
		return adb.Device{}, false
	case 1:
		fmt.Fprintf(p.Out, "Auto-selecting the only online device: %s\n", online[0].Serial)
		return online[0], true
	}

	fmt.Fprintf(p.Out, "Select an online device [1-%d]: ", len(online))
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out, "No selection made.")
		return adb.Device{}, false
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(p.Out, "Please enter a number.")
		return adb.Device{}, false
	}
	if choice < 1 || choice > len(online) {
		fmt.Fprintln(p.Out, "Invalid selection.")
		return adb.Device{}, false
	}
	return online[choice-1], true
}

// ReconnectDevice tries to revive one offline device. Wireless
// devices get a best-effort disconnect followed by a connect; USB
// devices cannot be reconnected from here, so the user is pointed at
// the cable instead.
func (p *Picker) ReconnectDevice(d adb.Device) bool {
	if !adb.Classify(d.Serial).Wireless() {
		fmt.Fprintf(p.Out, "%s is a USB device: check the cable and that debugging is authorized.\n", d.Serial)
		return false
	}
	fmt.Fprintf(p.Out, "Reconnecting %s...\n", d.Serial)
	_ = p.Bridge.Disconnect(d.Serial)
	if err := p.Bridge.Connect(d.Serial); err != nil {
		fmt.Fprintf(p.Out, "Reconnect failed: %v\n", err)
		return false
	}
	fmt.Fprintf(p.Out, "Reconnected: %s\n", d.Serial)
	return true
}

// Run executes the full workflow and returns the selected serial, or
// "" if nothing was selected. Listing and reconnect failures are
// reported and degrade to an empty result; err is reserved for I/O
// problems on Out.
func (p *Picker) Run() (string, error) {
	devices, ok := p.list()
	if !ok {
		return "", nil
	}
	online, offline := Partition(devices)
	p.Present(online, offline)

	if len(online) == 0 && len(offline) > 0 {
		fmt.Fprintln(p.Out, "All devices are offline.")
		if p.shouldReconnect() {
			online, offline = p.reconnectAll(offline, online)
		}
	}

	selected, ok := p.SelectOnline(online)
	if !ok {
		return "", nil
	}

	t := adb.Classify(selected.Serial)
	fmt.Fprintln(p.Out, "Selected device:")
	fmt.Fprintf(p.Out, "  Serial:    %s\n", selected.Serial)
	fmt.Fprintf(p.Out, "  Transport: %s\n", t)
	fmt.Fprintf(p.Out, "  State:     %s\n", selected.State)
	if m, isMDNS := t.(adb.MDNS); isMDNS && m.Service != "" {
		fmt.Fprintf(p.Out, "  Service:   %s\n", m.Service)
	}
	return selected.Serial, nil
}

func (p *Picker) list() ([]adb.Device, bool) {
	devices, err := p.Bridge.Devices()
	switch {
	case errors.Is(err, adb.ErrNoDevices):
		fmt.Fprintln(p.Out, "No devices found.")
		return nil, false
	case err != nil:
		fmt.Fprintf(p.Out, "Listing devices failed: %v\n", err)
		return nil, false
	}
	if p.Observe != nil {
		p.Observe(devices)
	}
	return devices, true
}

func (p *Picker) shouldReconnect() bool {
	switch p.Reconnect {
	case ReconnectAlways:
		return true
	case ReconnectNever:
		return false
	}
	fmt.Fprint(p.Out, "Try to reconnect offline devices? [y/N] ")
	line, _ := bufio.NewReader(p.In).ReadString('\n')
	answer := strings.TrimSpace(strings.ToLower(line))
	return answer == "y" || answer == "yes"
}

// reconnectAll walks the offline devices attempting a reconnect,
// re-listing after each attempt and stopping as soon as anything
// comes online.
func (p *Picker) reconnectAll(offline, online []adb.Device) ([]adb.Device, []adb.Device) {
	for _, d := range offline {
		p.ReconnectDevice(d)

		devices, ok := p.list()
		if !ok {
			continue
		}
		on, off := Partition(devices)
		if len(on) > 0 {
			p.Present(on, off)
			return on, off
		}
		online, offline = on, off
	}
	return online, offline
}
