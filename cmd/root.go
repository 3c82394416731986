package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version of adbpick.
const Version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:     "adbpick",
	Short:   "Pick an Android device from adb's device list",
	Version: Version,
	Long: `adbpick enumerates the devices known to ADB, tells wired, wireless
and mDNS-paired devices apart, reconnects offline wireless devices on
request, and prints the serial of the device you pick so scripts can
feed it to adb -s.`,
}

// requireDeps returns a PersistentPreRunE that checks for the adb binary.
func requireDeps() func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return checkDeps()
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
