package cmd

import (
	"fmt"

	"github.com/FennelBeef/adbpick/internal/config"
	"github.com/FennelBeef/adbpick/internal/registry"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show every device this tool has seen",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := registry.Open(config.ConfigDir())
		if err != nil {
			return fmt.Errorf("open registry: %w", err)
		}
		defer db.Close()

		sightings, err := db.Sightings()
		if err != nil {
			return err
		}
		if len(sightings) == 0 {
			fmt.Println("No devices recorded yet. Run 'adbpick devices' first.")
			return nil
		}

		for _, s := range sightings {
			fmt.Printf("%-44s %-14s last state %-12s seen %dx, last %s\n",
				s.Serial, s.Kind, s.LastState, s.TimesSeen, humanize.Time(s.LastSeen))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
