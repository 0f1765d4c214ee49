package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vyrlabs/vyr/internal/device"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Backfill simulated data and print today's insight",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			adapter, err := d.registry.Get(device.ModelRing)
			if err != nil {
				return err
			}
			devices, err := adapter.Scan(ctx)
			if err != nil {
				return err
			}
			if err := adapter.Connect(ctx, devices[0].ID); err != nil {
				return err
			}
			defer func() {
				_ = adapter.Disconnect(ctx)
			}()

			if err := d.syncer.Backfill(ctx, localUserID, device.ModelRing); err != nil {
				return err
			}
			if _, err := d.syncer.SyncDay(ctx, localUserID, device.ModelRing, d.states.Today()); err != nil {
				return err
			}

			insight, err := d.states.Insight(ctx, localUserID, d.states.Today())
			if err != nil {
				return err
			}

			s := insight.State
			fmt.Printf("%s: score %d (%s)\n\n", d.states.Today(), s.Score, s.Level)
			fmt.Printf("  energia       %.2f\n", s.Pillars.Energia)
			fmt.Printf("  clareza       %.2f\n", s.Pillars.Clareza)
			fmt.Printf("  estabilidade  %.2f\n\n", s.Pillars.Estabilidade)

			i := insight.Interpretation
			fmt.Println(i.StateLabel)
			fmt.Println(i.ScoreNarrative)
			fmt.Println(i.LimitingFactor)
			fmt.Println(i.DayRisk)
			if i.CognitiveWindow.Available {
				fmt.Printf("\nJanela cognitiva: %s (%s)\n", i.CognitiveWindow.Duration, i.CognitiveWindow.Framing)
			}
			for _, item := range i.ActionItems {
				fmt.Printf("  • %s\n", item)
			}
			fmt.Printf("\nAção recomendada: %s\n", insight.RecommendedAction)
			return nil
		},
	}
}
