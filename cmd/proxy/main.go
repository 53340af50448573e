/*
Proxy is a Minetest proxy server
supporting multiple concurrent connections.

Usage:

	proxy --dial host:port [--listen host:port] [--config proxy.yaml] [--metrics host:port]

Every client connecting to the listen address gets its own connection
to the dial address and commands are forwarded in both directions.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	dialAddr    string
	listenAddr  string
	metricsAddr string
	logLevel    string

	cfg *Config
)

var rootCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Minetest proxy server",
	Long: `Proxy accepts Minetest clients and connects each of them
to the configured server, forwarding decoded commands both ways.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if dialAddr != "" {
			cfg.Dial = dialAddr
		}
		if listenAddr != "" {
			cfg.Listen = listenAddr
		}
		if metricsAddr != "" {
			cfg.Metrics = metricsAddr
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		return cfg.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.Flags().StringVarP(&dialAddr, "dial", "d", "", "server address")
	rootCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "address to listen on (default :30000)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics", "", "serve prometheus metrics on this address")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
