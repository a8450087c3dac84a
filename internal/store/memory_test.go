package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

func seededMemoryStore(t *testing.T, n int) *MemoryStore {
	t.Helper()

	m := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range n {
		m.nowFunc = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }

		status := domain.SubmissionAccepted
		if i%2 == 1 {
			status = domain.SubmissionRejected
		}
		sub := &domain.Submission{
			ID: fmt.Sprintf("sub-%02d", i),
			Registration: domain.Registration{
				FirstName: "Blake",
				Email:     fmt.Sprintf("user%d@example.com", i%3),
				IMEI:      fmt.Sprintf("35693803564380%d", i%2),
			},
			Status: status,
		}
		require.NoError(t, m.CreateSubmission(context.Background(), sub))
	}
	return m
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore()
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("CST", -6*3600))
	m.nowFunc = func() time.Time { return fixed }

	unitID := int64(401)
	sub := &domain.Submission{
		ID:           "abc",
		Registration: domain.Registration{FirstName: "Blake", IMEI: "356938035643809"},
		UnitID:       &unitID,
		Status:       domain.SubmissionAccepted,
	}
	require.NoError(t, m.CreateSubmission(context.Background(), sub))
	assert.Equal(t, fixed.UTC(), sub.CreatedAt)
	assert.Equal(t, []string{}, sub.ErrorFields)

	got, err := m.GetSubmission(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	// Mutating the returned copy must not change the stored one.
	*got.UnitID = 999
	again, err := m.GetSubmission(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(401), *again.UnitID)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	t.Parallel()

	_, err := NewMemoryStore().GetSubmission(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListSubmissions(t *testing.T) {
	t.Parallel()

	m := seededMemoryStore(t, 6)

	tests := []struct {
		name      string
		query     *SubmissionQuery
		wantIDs   []string
		wantTotal int
	}{
		{
			name:      "nil query returns newest first",
			query:     nil,
			wantIDs:   []string{"sub-05", "sub-04", "sub-03", "sub-02", "sub-01", "sub-00"},
			wantTotal: 6,
		},
		{
			name:      "status filter",
			query:     &SubmissionQuery{Status: ptr(domain.SubmissionRejected)},
			wantIDs:   []string{"sub-05", "sub-03", "sub-01"},
			wantTotal: 3,
		},
		{
			name:      "email filter ignores case",
			query:     &SubmissionQuery{Email: ptr("USER1@example.com")},
			wantIDs:   []string{"sub-04", "sub-01"},
			wantTotal: 2,
		},
		{
			name:      "imei filter",
			query:     &SubmissionQuery{IMEI: ptr("356938035643800")},
			wantIDs:   []string{"sub-04", "sub-02", "sub-00"},
			wantTotal: 3,
		},
		{
			name:      "paging",
			query:     &SubmissionQuery{Limit: 2, Offset: 2},
			wantIDs:   []string{"sub-03", "sub-02"},
			wantTotal: 6,
		},
		{
			name:      "offset past end",
			query:     &SubmissionQuery{Offset: 10},
			wantIDs:   []string{},
			wantTotal: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subs, total, err := m.ListSubmissions(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			ids := make([]string, 0, len(subs))
			for _, s := range subs {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMemoryStore_CountSubmissionsByStatus(t *testing.T) {
	t.Parallel()

	counts, err := seededMemoryStore(t, 5).CountSubmissionsByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[domain.SubmissionStatus]int{
		domain.SubmissionAccepted: 3,
		domain.SubmissionRejected: 2,
	}, counts)
}

func TestMemoryStore_ImplementsStore(t *testing.T) {
	t.Parallel()

	var s Store = NewMemoryStore()
	require.NoError(t, s.Ping(context.Background()))
}
