package store

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// MemoryStore implements Store in process memory. It is used when no
// database is configured and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	subs    map[string]domain.Submission
	nowFunc func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs:    make(map[string]domain.Submission),
		nowFunc: time.Now,
	}
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error { return nil }

// CreateSubmission stores a copy of sub and fills in its CreatedAt.
func (m *MemoryStore) CreateSubmission(_ context.Context, sub *domain.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub.ErrorFields == nil {
		sub.ErrorFields = []string{}
	}
	sub.CreatedAt = m.nowFunc().UTC()
	m.subs[sub.ID] = cloneSubmission(*sub)
	return nil
}

// GetSubmission returns a copy of the stored submission.
func (m *MemoryStore) GetSubmission(_ context.Context, id string) (*domain.Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneSubmission(sub)
	return &out, nil
}

// ListSubmissions filters, orders and pages submissions the same way the
// Postgres query does.
func (m *MemoryStore) ListSubmissions(
	_ context.Context,
	q *SubmissionQuery,
) ([]domain.Submission, int, error) {
	if q == nil {
		q = &SubmissionQuery{}
	}

	m.mu.RLock()
	matched := make([]domain.Submission, 0, len(m.subs))
	for _, sub := range m.subs {
		if q.matches(&sub) {
			matched = append(matched, cloneSubmission(sub))
		}
	}
	m.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Submission) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	total := len(matched)
	limit, offset := q.Page()
	if offset >= total {
		return []domain.Submission{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

// CountSubmissionsByStatus returns the number of stored submissions per status.
func (m *MemoryStore) CountSubmissionsByStatus(context.Context) (map[domain.SubmissionStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[domain.SubmissionStatus]int)
	for _, sub := range m.subs {
		counts[sub.Status]++
	}
	return counts, nil
}

func (q *SubmissionQuery) matches(sub *domain.Submission) bool {
	if q.Status != nil && sub.Status != *q.Status {
		return false
	}
	if q.IMEI != nil && sub.Registration.IMEI != *q.IMEI {
		return false
	}
	if q.Email != nil && !strings.EqualFold(sub.Registration.Email, *q.Email) {
		return false
	}
	return true
}

func cloneSubmission(sub domain.Submission) domain.Submission {
	sub.ErrorFields = slices.Clone(sub.ErrorFields)
	if sub.UnitID != nil {
		id := *sub.UnitID
		sub.UnitID = &id
	}
	return sub
}
