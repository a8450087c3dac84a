package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateSubmission inserts sub and fills in its CreatedAt.
func (s *PostgresStore) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	errorFields := sub.ErrorFields
	if errorFields == nil {
		errorFields = []string{}
	}

	r := sub.Registration
	args := pgx.NamedArgs{
		"id":           sub.ID,
		"first_name":   r.FirstName,
		"last_name":    r.LastName,
		"email":        r.Email,
		"asset_name":   r.AssetName,
		"phone_number": r.PhoneNumber,
		"imei":         r.IMEI,
		"vin":          r.VIN,
		"unit_id":      sub.UnitID,
		"status":       string(sub.Status),
		"error_fields": errorFields,
	}

	if err := s.pool.QueryRow(ctx, queryCreateSubmission, args).Scan(&sub.CreatedAt); err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

// GetSubmission retrieves a submission by ID.
func (s *PostgresStore) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	sub := &domain.Submission{}
	err := scanSubmission(s.pool.QueryRow(ctx, queryGetSubmission, id), sub)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting submission %s: %w", id, err)
	}
	return sub, nil
}

// ListSubmissions queries submissions with optional filters, returning a
// page of results and the total match count.
func (s *PostgresStore) ListSubmissions(
	ctx context.Context,
	q *SubmissionQuery,
) ([]domain.Submission, int, error) {
	if q == nil {
		q = &SubmissionQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting submissions: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	subs := []domain.Submission{}
	for rows.Next() {
		var sub domain.Submission
		if err := scanSubmission(rows, &sub); err != nil {
			return nil, 0, fmt.Errorf("scanning submission: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating submissions: %w", err)
	}

	return subs, total, nil
}

// CountSubmissionsByStatus returns the number of stored submissions per status.
func (s *PostgresStore) CountSubmissionsByStatus(ctx context.Context) (map[domain.SubmissionStatus]int, error) {
	rows, err := s.pool.Query(ctx, queryCountSubmissionsByStatus)
	if err != nil {
		return nil, fmt.Errorf("counting submissions by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.SubmissionStatus]int)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[domain.SubmissionStatus(status)] = n
	}
	return counts, rows.Err()
}

func scanSubmission(row pgx.Row, sub *domain.Submission) error {
	var status string
	err := row.Scan(
		&sub.ID,
		&sub.Registration.FirstName,
		&sub.Registration.LastName,
		&sub.Registration.Email,
		&sub.Registration.AssetName,
		&sub.Registration.PhoneNumber,
		&sub.Registration.IMEI,
		&sub.Registration.VIN,
		&sub.UnitID,
		&status,
		&sub.ErrorFields,
		&sub.CreatedAt,
	)
	sub.Status = domain.SubmissionStatus(status)
	return err
}
