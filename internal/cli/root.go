// Package cli implements the claimctl command line client for the data
// claim service.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/madhuka-dev/dataclaim-service/internal/client"
)

var (
	serverURL      string
	requestTimeout time.Duration
	verbose        bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimctl",
	Short: "claimctl - command line client for the data claim service",
	Long: `claimctl submits one-time data claims, browses recent claims, and
manages the named location catalog of a running data claim service.

The server address comes from --server, the CLAIMCTL_SERVER environment
variable, or the default http://localhost:3001.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimctl v0.3.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3001", "data claim service base URL")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 15*time.Second, "per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in environment variables that match CLAIMCTL_*
func initConfig() {
	viper.SetEnvPrefix("CLAIMCTL")
	viper.AutomaticEnv()

	if !rootCmd.PersistentFlags().Changed("server") {
		if v := viper.GetString("server"); v != "" {
			serverURL = v
		}
	}
	if !rootCmd.PersistentFlags().Changed("timeout") {
		if v := viper.GetDuration("timeout"); v > 0 {
			requestTimeout = v
		}
	}
}

func newServiceClient() *client.Client {
	return client.NewClient(serverURL, requestTimeout, cliLogger())
}

func cliLogger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
