package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vyrlabs/vyr/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "vyr",
		Short:   "Cognitive state from your wearable data",
		Version: version.Get(),
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedRefsCmd())
	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(demoCmd())

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
