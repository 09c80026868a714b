package main

import (
	"fmt"
	"os"

	"github.com/gorustyt/gonavgraph/common/logger"
	"github.com/gorustyt/gonavgraph/config"
	"github.com/spf13/cobra"
)

const VERSION = "1.0.0"

var (
	configFile string
	cfg        *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "navmesh",
		Short:        "navigation mesh builder and path query tool",
		Version:      VERSION,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}
			return logger.Init(cfg.Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "hjson config file")
	rootCmd.AddCommand(
		BuildCmd(),
		PathCmd(),
		ClampCmd(),
		CostsCmd(),
		DrawCmd(),
		ListCmd(),
		DeleteCmd(),
		ServeCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
