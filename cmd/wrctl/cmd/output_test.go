package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apiclient "github.com/terminusgps/wialon-registration/internal/api/client"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

func TestPrintReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, &domain.Report{
		IsValid: false,
		Fields: map[string]domain.Outcome{
			domain.FieldFirstName: domain.OutcomeValid,
			domain.FieldIMEI:      domain.OutcomeInvalid,
			domain.FieldVIN:       domain.OutcomeUnchecked,
		},
	}))

	out := buf.String()
	assert.Regexp(t, `firstName\s+valid`, out)
	assert.Regexp(t, `imei\s+invalid`, out)
	assert.Regexp(t, `vin\s+unchecked`, out)
	assert.Regexp(t, `Valid:\s+false`, out)
}

func TestPrintSubmissionsTable(t *testing.T) {
	t.Parallel()

	id := int64(27654)
	var buf bytes.Buffer
	require.NoError(t, printSubmissionsTable(&buf, []domain.Submission{
		{
			ID:           "sub-1",
			Status:       domain.SubmissionAccepted,
			UnitID:       &id,
			Registration: domain.Registration{IMEI: "356938035643809", AssetName: "A very long asset name that will be cut"},
			CreatedAt:    time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		},
		{ID: "sub-2", Status: domain.SubmissionRejected},
	}))

	out := buf.String()
	assert.Contains(t, out, "27654")
	assert.Contains(t, out, "A very long asset name that...")
	assert.Contains(t, out, "2026-10-01 12:00:00")
	assert.Regexp(t, `sub-2\s+rejected\s+-`, out)
}

func TestPrintQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    apiclient.Quota
		want []string
		omit string
	}{
		{
			name: "limited",
			q:    apiclient.Quota{DailyLimit: 100, DailyUsed: 3, Remaining: 97},
			want: []string{"100", "97"},
		},
		{
			name: "unlimited",
			q:    apiclient.Quota{DailyUsed: 3},
			want: []string{"unlimited"},
			omit: "Remaining",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, printQuota(&buf, &tt.q))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
			if tt.omit != "" {
				assert.NotContains(t, buf.String(), tt.omit)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unlimited", formatDuration(0))
	assert.Equal(t, "1h0m0s", formatDuration(3600))
}
