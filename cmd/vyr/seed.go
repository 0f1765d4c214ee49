package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vyrlabs/vyr/internal/vyr"
)

// Population reference bands seeded for cold-start scoring. Each band
// is interpreted as roughly ±2σ around its center.
var seedRefs = []vyr.PopulationRef{
	{Metric: vyr.MetricRHR, RangeMin: 53, RangeMax: 73},
	{Metric: vyr.MetricHRV, RangeMin: 31, RangeMax: 79},
	{Metric: vyr.MetricSleepDuration, RangeMin: 5.6, RangeMax: 8.4},
	{Metric: vyr.MetricSleepQuality, RangeMin: 30, RangeMax: 90},
	{Metric: vyr.MetricSpO2, RangeMin: 94, RangeMax: 100},
}

func seedRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-refs",
		Short: "Seed population reference bands",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDeps(cmd.Context())
			if err != nil {
				return err
			}
			defer d.Close()

			for _, ref := range seedRefs {
				if err := d.repo.PopulationRefs.Insert(cmd.Context(), ref, nil); err != nil {
					return fmt.Errorf("seeding %s: %w", ref.Metric, err)
				}
			}

			fmt.Printf("Seeded %d population reference bands\n", len(seedRefs))
			return nil
		},
	}
}
