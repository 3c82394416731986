package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/FennelBeef/adbpick/internal/adb"
	"github.com/FennelBeef/adbpick/internal/config"
	"github.com/FennelBeef/adbpick/internal/picker"
	"github.com/FennelBeef/adbpick/internal/registry"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices known to adb, split into online and offline",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		devices, err := newADBClient(cfg).Devices()
		if errors.Is(err, adb.ErrNoDevices) {
			fmt.Println("No devices connected.")
			return nil
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Listing devices failed: %v\n", err)
			return nil
		}

		db, err := registry.Open(config.ConfigDir())
		if err != nil {
			return fmt.Errorf("open registry: %w", err)
		}
		defer db.Close()

		online, offline := picker.Partition(devices)
		printPartition("Online", online, 0, cfg, db)
		printPartition("Offline", offline, len(online), cfg, db)

		recordSightings(db, devices)
		return nil
	},
}

func printPartition(label string, devices []adb.Device, offset int, cfg *config.Config, db *registry.DB) {
	if len(devices) == 0 {
		return
	}
	fmt.Printf("%s:\n", label)
	for i, d := range devices {
		nickname := ""
		if dc, ok := cfg.Devices[d.Serial]; ok && dc.Nickname != "" {
			nickname = fmt.Sprintf(" (%s)", dc.Nickname)
		}
		fmt.Printf("  %d. %-44s %-20s [%s]%s\n",
			offset+i+1, d.Serial, adb.Classify(d.Serial), d.State, nickname)

		if !d.IsOnline() {
			if last, seen, err := db.LastSeen(d.Serial); err == nil && seen {
				fmt.Printf("     last seen %s\n", humanize.Time(last))
			}
		}
	}
}

// newADBClient builds a client with the configured binary and timeouts.
func newADBClient(cfg *config.Config) *adb.Client {
	c := adb.NewClient(cfg.ADBPath)
	c.ListTimeout = cfg.ListTimeout()
	c.ConnectTimeout = cfg.ConnectTimeout()
	c.DisconnectTimeout = cfg.DisconnectTimeout()
	return c
}

func transportKind(t adb.Transport) string {
	switch t.(type) {
	case adb.MDNS:
		return "mdns-wireless"
	case adb.Wireless:
		return "wireless"
	default:
		return "usb"
	}
}

func recordSightings(db *registry.DB, devices []adb.Device) {
	for _, d := range devices {
		if err := db.RecordSighting(d.Serial, transportKind(adb.Classify(d.Serial)), d.State); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: record sighting: %v\n", err)
			return
		}
	}
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
