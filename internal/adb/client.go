package adb

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout means an adb invocation hit its deadline.
var ErrTimeout = errors.New("adb command timed out")

// ErrNoDevices means the listing ran fine but contained no devices.
var ErrNoDevices = errors.New("no devices found")

// CommandError wraps a failed adb invocation along with its output.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Client wraps ADB command-line calls. Every call is bounded by a
// timeout so a wedged adb server cannot hang the workflow.
type Client struct {
	Path              string
	ListTimeout       time.Duration
	ConnectTimeout    time.Duration
	DisconnectTimeout time.Duration

	run runner
}

// NewClient creates a client for the given adb binary with default timeouts.
func NewClient(path string) *Client {
	if path == "" {
		path = "adb"
	}
	return &Client{
		Path:              path,
		ListTimeout:       10 * time.Second,
		ConnectTimeout:    10 * time.Second,
		DisconnectTimeout: 5 * time.Second,
		run:               execRun,
	}
}

// Devices returns all devices known to the adb server. A listing that
// parses to nothing yields ErrNoDevices so callers can tell "no
// devices attached" apart from a broken adb.
func (c *Client) Devices() ([]Device, error) {
	out, err := c.exec(c.ListTimeout, "devices")
	if err != nil {
		return nil, err
	}
	devices := parseDevices(string(out))
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}
	return devices, nil
}

// Connect asks the adb server to (re)connect to a wireless device.
// adb exits 0 even when the connection fails, so success is decided
// by the "connected" marker in its output.
func (c *Client) Connect(serial string) error {
	out, err := c.exec(c.ConnectTimeout, "connect", serial)
	if err != nil {
		return err
	}
	if strings.Contains(string(out), "connected") {
		return nil
	}
	return fmt.Errorf("adb connect %s: %s", serial, strings.TrimSpace(string(out)))
}

// Disconnect drops the server's connection to a wireless device.
func (c *Client) Disconnect(serial string) error {
	_, err := c.exec(c.DisconnectTimeout, "disconnect", serial)
	return err
}

func (c *Client) exec(timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	out, err := c.run(ctx, c.Path, args...)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, c.Path, strings.Join(args, " "))
		}
		return nil, &CommandError{
			Args:   append([]string{c.Path}, args...),
			Output: string(out),
			Err:    err,
		}
	}
	return out, nil
}

// parseDevices parses `adb devices` output: the header line is
// skipped and each remaining line needs at least a serial and a
// status token. Malformed lines are dropped.
func parseDevices(output string) []Device {
	var devices []Device
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "List of") || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		devices = append(devices, Device{
			Serial: fields[0],
			State:  fields[1],
		})
	}
	return devices
}
