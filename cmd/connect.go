package cmd

import (
	"fmt"

	"github.com/FennelBeef/adbpick/internal/config"

	"github.com/spf13/cobra"
)

var connectCmd = &cobra.Command{
	Use:               "connect <host:port | mdns-serial>",
	Short:             "Connect to a wireless device",
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := newADBClient(cfg).Connect(args[0]); err != nil {
			return err
		}
		fmt.Printf("Connected: %s\n", args[0])
		return nil
	},
}

var disconnectCmd = &cobra.Command{
	Use:               "disconnect <host:port | mdns-serial>",
	Short:             "Disconnect a wireless device",
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: requireDeps(),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := newADBClient(cfg).Disconnect(args[0]); err != nil {
			return err
		}
		fmt.Printf("Disconnected: %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
}
