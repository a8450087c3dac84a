package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apiclient "github.com/terminusgps/wialon-registration/internal/api/client"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

func registrationFlags(f *pflag.FlagSet, r *domain.Registration) {
	f.StringVar(&r.FirstName, "first-name", "", "first name")
	f.StringVar(&r.LastName, "last-name", "", "last name")
	f.StringVar(&r.Email, "email", "", "contact email")
	f.StringVar(&r.AssetName, "asset-name", "", "asset display name")
	f.StringVar(&r.PhoneNumber, "phone", "", "contact phone number")
	f.StringVar(&r.IMEI, "imei", "", "tracking device IMEI")
	f.StringVar(&r.VIN, "vin", "", "vehicle identification number")
}

func validateCmd() *cobra.Command {
	var r domain.Registration

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a registration without storing it",
		Example: `  wrctl validate --first-name Jane --last-name Doe --email jane@example.com \
    --asset-name "Truck 12" --imei 356938035643809`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := newClient().Validate(cmd.Context(), &r)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(report)
			}
			return printReport(os.Stdout, report)
		},
	}
	registrationFlags(cmd.Flags(), &r)
	return cmd
}

func registerCmd() *cobra.Command {
	var r domain.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Submit a registration",
		Long: "Validates and stores a registration. Invalid registrations are stored\n" +
			"as rejected; the command prints which fields failed.",
		Example: `  wrctl register --first-name Jane --last-name Doe --email jane@example.com \
    --asset-name "Truck 12" --imei 356938035643809`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().SubmitRegistration(cmd.Context(), &r)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(resp)
			}
			if err := printSubmissionDetail(os.Stdout, &resp.Submission); err != nil {
				return err
			}
			if resp.Submission.Status == domain.SubmissionRejected {
				return fmt.Errorf("registration rejected: %v", resp.Submission.ErrorFields)
			}
			return nil
		},
	}
	registrationFlags(cmd.Flags(), &r)
	return cmd
}

func registrationsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "registrations",
		Aliases: []string{"regs"},
		Short:   "Inspect stored registrations",
	}

	root.AddCommand(
		registrationsListCmd(),
		registrationsGetCmd(),
		registrationsStatsCmd(),
	)

	return root
}

func registrationsListCmd() *cobra.Command {
	var params apiclient.ListRegistrationsParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registrations with optional filters",
		Example: `  # Newest registrations
  wrctl registrations list

  # Rejected registrations for one device
  wrctl registrations list --status rejected --imei 356938035643809`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := newClient().ListRegistrations(cmd.Context(), &params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Submissions) == 0 {
				fmt.Println("No registrations found.")
				return nil
			}

			fmt.Printf("Showing %d of %d registrations\n\n", len(resp.Submissions), resp.Total)
			return printSubmissionsTable(os.Stdout, resp.Submissions)
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Status, "status", "", "filter by status (accepted, rejected)")
	f.StringVar(&params.IMEI, "imei", "", "filter by IMEI")
	f.StringVar(&params.Email, "email", "", "filter by email")
	f.IntVar(&params.Limit, "limit", 50, "number of results")
	f.IntVar(&params.Offset, "offset", 0, "pagination offset")

	return cmd
}

func registrationsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a registration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := newClient().GetRegistration(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(sub)
			}
			return printSubmissionDetail(os.Stdout, sub)
		},
	}
}

func registrationsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count registrations by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := newClient().RegistrationStats(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(stats)
			}
			tw := newTabWriter(os.Stdout)
			tw.writef("Accepted:\t%d\n", stats.Accepted)
			tw.writef("Rejected:\t%d\n", stats.Rejected)
			return tw.finish()
		},
	}
}
