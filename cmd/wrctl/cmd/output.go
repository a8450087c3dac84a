package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	apiclient "github.com/terminusgps/wialon-registration/internal/api/client"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printReport(w io.Writer, r *domain.Report) error {
	tw := newTabWriter(w)
	tw.writef("FIELD\tRESULT\n")
	for _, field := range domain.Fields {
		tw.writef("%s\t%s\n", field, r.Fields[field])
	}
	tw.writef("\nValid:\t%v\n", r.IsValid)
	return tw.finish()
}

func printSubmissionsTable(w io.Writer, subs []domain.Submission) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSTATUS\tIMEI\tUNIT\tASSET\tEMAIL\tCREATED\n")
	for i := range subs {
		s := &subs[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID,
			s.Status,
			s.Registration.IMEI,
			unitID(s.UnitID),
			truncate(s.Registration.AssetName, 30),
			s.Registration.Email,
			s.CreatedAt.Format(time.DateTime),
		)
	}
	return tw.finish()
}

func printSubmissionDetail(w io.Writer, s *domain.Submission) error {
	r := &s.Registration
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", s.ID)
	tw.writef("Status:\t%s\n", s.Status)
	tw.writef("Unit ID:\t%s\n", unitID(s.UnitID))
	tw.writef("Name:\t%s %s\n", r.FirstName, r.LastName)
	tw.writef("Email:\t%s\n", r.Email)
	tw.writef("Asset:\t%s\n", r.AssetName)
	tw.writef("Phone:\t%s\n", orDash(r.PhoneNumber))
	tw.writef("IMEI:\t%s\n", r.IMEI)
	tw.writef("VIN:\t%s\n", orDash(r.VIN))
	if len(s.ErrorFields) > 0 {
		tw.writef("Errors:\t%s\n", strings.Join(s.ErrorFields, ", "))
	}
	tw.writef("Created:\t%s\n", s.CreatedAt.Format(time.RFC3339))
	return tw.finish()
}

func printSession(w io.Writer, s *apiclient.Session) error {
	tw := newTabWriter(w)
	tw.writef("Ready:\t%v\n", s.Ready)
	tw.writef("User:\t%s\n", orDash(s.User))
	tw.writef("Host:\t%s\n", orDash(s.Host))
	if !s.LoggedInAt.IsZero() {
		tw.writef("Logged in:\t%s\n", s.LoggedInAt.Format(time.RFC3339))
	}
	tw.writef("Refreshes:\t%d\n", s.Refreshes)
	return tw.finish()
}

func printTokensTable(w io.Writer, tokens []apiclient.Token) error {
	tw := newTabWriter(w)
	tw.writef("TOKEN\tAPP\tCREATED\tLAST LOGIN\tDURATION\n")
	for i := range tokens {
		t := &tokens[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			t.Value,
			t.App,
			formatTime(t.CreatedAt),
			formatTime(t.LastLoginAt),
			formatDuration(t.Duration),
		)
	}
	return tw.finish()
}

func printQuota(w io.Writer, q *apiclient.Quota) error {
	tw := newTabWriter(w)
	if q.DailyLimit == 0 {
		tw.writef("Daily limit:\tunlimited\n")
	} else {
		tw.writef("Daily limit:\t%d\n", q.DailyLimit)
		tw.writef("Remaining:\t%d\n", q.Remaining)
	}
	tw.writef("Used:\t%d\n", q.DailyUsed)
	tw.writef("Resets:\t%s\n", q.ResetAt.Format(time.RFC3339))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func unitID(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateTime)
}

func formatDuration(seconds int64) string {
	if seconds == 0 {
		return "unlimited"
	}
	return (time.Duration(seconds) * time.Second).String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
