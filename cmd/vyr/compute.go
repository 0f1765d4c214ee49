package main

import (
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func computeCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the cognitive state for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			if day == "" {
				day = d.states.Today()
			} else if _, err := time.Parse(time.DateOnly, day); err != nil {
				return fmt.Errorf("invalid --day %q (expected YYYY-MM-DD)", day)
			}

			state, err := d.states.Compute(cmd.Context(), localUserID, day)
			if err != nil {
				return err
			}

			out, err := go_json.MarshalIndent(state, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "day to compute (YYYY-MM-DD, default today)")
	return cmd
}
