package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check service health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		report, err := newServiceClient().Health(ctx)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		fmt.Printf("%s\n", report.Message)
		fmt.Printf("MongoDB: %s\n", report.MongoDB)
		fmt.Printf("Server time: %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
		return nil
	},
}

var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List recent claims, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		claims, err := newServiceClient().Claims(ctx)
		if err != nil {
			return fmt.Errorf("list claims failed: %w", err)
		}

		for _, c := range claims {
			located := "no location"
			if c.Location != nil {
				located = fmt.Sprintf("%.4f, %.4f", c.Location.Latitude, c.Location.Longitude)
			}
			fmt.Printf("%s  %s  %sGB  %s\n", c.SubmittedAt.Format("2006-01-02 15:04"), c.PhoneNumber, c.SelectedGB, located)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(claimsCmd)
}
