package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/madhuka-dev/dataclaim-service/internal/client"
	"github.com/madhuka-dev/dataclaim-service/internal/domain"
	"github.com/madhuka-dev/dataclaim-service/internal/geolocate"
)

var (
	selectedGB  string
	noLocation  bool
	geoURL      string
	geoTimeout  time.Duration
	lowAccuracy bool
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit <phone-number>",
	Short: "Submit a one-time data claim",
	Long: `Submit formats the given phone number into the (XXX) XXX-XXXX mask,
acquires the device position, and submits one data claim.

Position acquisition failures abort the submission; pass --no-location
to submit without one.

Example:
  claimctl submit 5551234567 --gb 5
  claimctl submit "(555) 123-4567" --gb other --no-location`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().StringVar(&selectedGB, "gb", "", "data amount in GB (1, 2, 5, 10, 20, other)")
	submitCmd.Flags().BoolVar(&noLocation, "no-location", false, "submit without acquiring the device position")
	submitCmd.Flags().StringVar(&geoURL, "geo-url", "http://ip-api.com/json", "position provider endpoint")
	submitCmd.Flags().DurationVar(&geoTimeout, "geo-timeout", 10*time.Second, "position acquisition timeout")
	submitCmd.Flags().BoolVar(&lowAccuracy, "low-accuracy", false, "accept a coarse position fix")
	_ = submitCmd.MarkFlagRequired("gb")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if err := applyGeoEnv(cmd); err != nil {
		return err
	}
	phone, err := resolvePhone(args[0])
	if err != nil {
		return err
	}
	if !validGB(selectedGB) {
		return fmt.Errorf("invalid --gb value %q: must be one of %v", selectedGB, domain.GBOptions)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout+geoTimeout)
	defer cancel()

	var position *domain.Position
	if !noLocation {
		pos, err := acquirePosition(ctx)
		if err != nil {
			return err
		}
		position = &pos
		if verbose {
			fmt.Fprintf(os.Stderr, "Position: %.4f, %.4f (accuracy %.0fm)\n", pos.Latitude, pos.Longitude, pos.Accuracy)
		}
	}

	receipt, err := newServiceClient().SubmitClaim(ctx, client.ClaimSubmission{
		PhoneNumber: phone,
		SelectedGB:  selectedGB,
		Location:    position,
	})
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}

	fmt.Printf("%s\n", receipt.Message)
	fmt.Printf("Claim ID: %s\n", receipt.ClaimID)
	return nil
}

// applyGeoEnv fills geo flag defaults from the same environment variables the
// server's config layer reads. Explicit flags win.
func applyGeoEnv(cmd *cobra.Command) error {
	if !cmd.Flags().Changed("geo-url") {
		if v := os.Getenv("GEO_PROVIDER_URL"); v != "" {
			geoURL = v
		}
	}
	if !cmd.Flags().Changed("geo-timeout") {
		if v := os.Getenv("GEO_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid GEO_TIMEOUT %q", v)
			}
			geoTimeout = d
		}
	}
	return nil
}

// resolvePhone masks the raw argument and requires a complete number. The
// canonical form sent to the server carries the country code prefix.
func resolvePhone(raw string) (string, error) {
	masked := domain.FormatPhone(raw)
	if !domain.ValidPhone(masked) {
		return "", fmt.Errorf("incomplete phone number %q: need 10 digits", raw)
	}
	return domain.CanonicalPhone(masked), nil
}

func validGB(gb string) bool {
	for _, opt := range domain.GBOptions {
		if gb == opt {
			return true
		}
	}
	return false
}

func acquirePosition(ctx context.Context) (domain.Position, error) {
	opts := geolocate.DefaultOptions()
	opts.HighAccuracy = !lowAccuracy
	opts.Timeout = geoTimeout

	provider := geolocate.NewHTTPProvider(geoURL, geoTimeout, cliLogger())
	pos, err := geolocate.New(provider, opts, cliLogger()).Acquire(ctx)
	if err != nil {
		return domain.Position{}, fmt.Errorf("%w (use --no-location to submit anyway)", err)
	}
	return pos, nil
}
