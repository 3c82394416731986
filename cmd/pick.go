package cmd

import (
	"fmt"
	"os"

	"github.com/FennelBeef/adbpick/internal/adb"
	"github.com/FennelBeef/adbpick/internal/config"
	"github.com/FennelBeef/adbpick/internal/picker"
	"github.com/FennelBeef/adbpick/internal/registry"

	"github.com/spf13/cobra"
)

var (
	pickReconnect   bool
	pickNoReconnect bool
)

var pickCmd = &cobra.Command{
	Use:               "pick",
	Short:             "Select an online device and print its serial",
	PersistentPreRunE: requireDeps(),
	Long: `Pick lists the devices adb knows about, offers to reconnect offline
wireless devices when nothing is online, and selects one online device:
automatically if there is exactly one, by numbered prompt otherwise.
The chosen serial is printed as the last line of output, so

    adb -s "$(adbpick pick | tail -n1)" shell

targets the picked device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		policy := picker.ReconnectAsk
		if pickReconnect || cfg.AutoReconnect {
			policy = picker.ReconnectAlways
		}
		if pickNoReconnect {
			policy = picker.ReconnectNever
		}

		var observe func([]adb.Device)
		db, err := registry.Open(config.ConfigDir())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: registry unavailable: %v\n", err)
		} else {
			defer db.Close()
			observe = func(devices []adb.Device) { recordSightings(db, devices) }
		}

		p := &picker.Picker{
			Bridge:    newADBClient(cfg),
			In:        os.Stdin,
			Out:       os.Stdout,
			Reconnect: policy,
			Observe:   observe,
		}
		serial, err := p.Run()
		if err != nil {
			return err
		}
		if serial != "" {
			fmt.Println(serial)
		}
		return nil
	},
}

func init() {
	pickCmd.Flags().BoolVar(&pickReconnect, "reconnect", false, "Reconnect offline devices without asking")
	pickCmd.Flags().BoolVar(&pickNoReconnect, "no-reconnect", false, "Never attempt to reconnect offline devices")
	pickCmd.MarkFlagsMutuallyExclusive("reconnect", "no-reconnect")
	rootCmd.AddCommand(pickCmd)
}
