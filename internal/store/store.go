// Package store defines the datastore abstraction for registration
// submissions. Business logic depends on the Store interface; PostgresStore
// backs production deployments and MemoryStore backs local runs and tests.
package store

import (
	"context"
	"errors"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// ErrNotFound is returned when a submission does not exist.
var ErrNotFound = errors.New("submission not found")

// SubmissionQuery defines optional filters for listing submissions.
type SubmissionQuery struct {
	Status *domain.SubmissionStatus
	IMEI   *string
	Email  *string
	Limit  int // default 50
	Offset int
}

// Store defines all data access operations for wialon-registration.
type Store interface {
	CreateSubmission(ctx context.Context, s *domain.Submission) error
	GetSubmission(ctx context.Context, id string) (*domain.Submission, error)
	ListSubmissions(ctx context.Context, q *SubmissionQuery) ([]domain.Submission, int, error)
	CountSubmissionsByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error)

	Ping(ctx context.Context) error
}
