package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRoot() *cobra.Command {
	flags := &serveFlags{}

	root := &cobra.Command{
		Use:   "phronesis",
		Short: "Phronesis voice-learning server",
		Long:  "Provisions Daily rooms, supervises one voice bot per room, and serves the learning content API.",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(flags)
		},
	}
	serve.Flags().StringVar(&flags.ConfigPath, "config", "", "path to TOML config file")
	serve.Flags().StringVar(&flags.Listen, "listen", "", "listen address (overrides config)")

	root.AddCommand(serve)
	return root
}
