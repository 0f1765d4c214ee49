package main

import (
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vyrlabs/vyr/internal/device"
)

func syncCmd() *cobra.Command {
	var (
		model    string
		backfill bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync readings from a device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			d, err := openDeps(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			adapter, err := d.registry.Get(device.Model(model))
			if err != nil {
				return fmt.Errorf("model %q: %w", model, err)
			}

			devices, err := adapter.Scan(ctx)
			if err != nil {
				return err
			}
			if len(devices) == 0 {
				return fmt.Errorf("no %s devices found", model)
			}
			if err := adapter.Connect(ctx, devices[0].ID); err != nil {
				return err
			}
			defer func() {
				_ = adapter.Disconnect(ctx)
			}()

			if backfill {
				if err := d.syncer.Backfill(ctx, localUserID, device.Model(model)); err != nil {
					return err
				}
			}

			state, err := d.syncer.SyncDay(ctx, localUserID, device.Model(model), d.states.Today())
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

	cmd.Flags().StringVar(&model, "model", string(device.ModelRing), "device model (ring or band)")
	cmd.Flags().BoolVar(&backfill, "backfill", false, "backfill the trailing baseline window first")
	return cmd
}
