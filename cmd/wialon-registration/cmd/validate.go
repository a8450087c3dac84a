package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terminusgps/wialon-registration/internal/validate"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

func validateCommand() *cobra.Command {
	var r domain.Registration

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a registration against Wialon",
		Long: "Validates every registration field locally, checking the IMEI\n" +
			"against the configured Wialon account. Nothing is stored.",
		Example: `  wialon-registration validate --first-name Jane --last-name Doe \
    --email jane@example.com --asset-name "Truck 12" --imei 356938035643809`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			deps, err := openWialon(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer deps.close()

			opts := []validate.Option{validate.WithLogger(log)}
			if cfg.Validation.IMEIFormatCheck {
				opts = append(opts, validate.WithIMEIFormatCheck())
			}

			report, err := validate.New(deps.searcher, opts...).ValidateAll(cmd.Context(), &r)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), report)
			}
			if err := printReport(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.IsValid {
				return fmt.Errorf("invalid fields: %v", report.ErrorFields)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&r.FirstName, "first-name", "", "first name")
	f.StringVar(&r.LastName, "last-name", "", "last name")
	f.StringVar(&r.Email, "email", "", "contact email")
	f.StringVar(&r.AssetName, "asset-name", "", "asset display name")
	f.StringVar(&r.PhoneNumber, "phone", "", "contact phone number")
	f.StringVar(&r.IMEI, "imei", "", "tracking device IMEI")
	f.StringVar(&r.VIN, "vin", "", "vehicle identification number")

	return cmd
}
