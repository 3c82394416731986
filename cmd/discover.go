package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/FennelBeef/adbpick/internal/discovery"

	"github.com/spf13/cobra"
)

var discoverTimeout int

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse the LAN for adb mDNS services",
	Long: `Discover listens for the _adb-tls-connect._tcp and _adb._tcp mDNS
services that wireless-debugging devices announce, and prints an
endpoint for each one that adbpick connect accepts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(discoverTimeout)*time.Second)
		defer cancel()

		fmt.Printf("Browsing for adb services (%ds)...\n", discoverTimeout)
		endpoints, err := discovery.Browse(ctx)
		if err != nil {
			return err
		}
		if len(endpoints) == 0 {
			fmt.Println("No adb services found. Is wireless debugging enabled?")
			return nil
		}
		for _, e := range endpoints {
			fmt.Printf("%-30s %-24s %s\n", e.Instance, e.Service, e.ConnectTarget())
		}
		fmt.Println("\nConnect with: adbpick connect <host:port>")
		return nil
	},
}

func init() {
	discoverCmd.Flags().IntVarP(&discoverTimeout, "timeout", "t", 5, "Seconds to listen for announcements")
	rootCmd.AddCommand(discoverCmd)
}
