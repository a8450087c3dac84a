package registrar_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/notify"
	"github.com/terminusgps/wialon-registration/internal/registrar"
	"github.com/terminusgps/wialon-registration/internal/store"
	"github.com/terminusgps/wialon-registration/internal/validate"
	"github.com/terminusgps/wialon-registration/internal/wialon"
	wialonMocks "github.com/terminusgps/wialon-registration/internal/wialon/mocks"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

const testIMEI = "356938035643809"

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*notify.RegistrationPayload
	err  error
}

func (r *recordingNotifier) SendRegistration(_ context.Context, p *notify.RegistrationPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, p)
	return r.err
}

func (r *recordingNotifier) SendSessionAlert(context.Context, *notify.SessionAlertPayload) error {
	return nil
}

type failingStore struct {
	*store.MemoryStore
}

func (failingStore) CreateSubmission(context.Context, *domain.Submission) error {
	return errors.New("connection reset")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func registration() *domain.Registration {
	return &domain.Registration{
		FirstName: "Blake",
		LastName:  "Nall",
		Email:     "blake@terminusgps.com",
		AssetName: "Service Van 3",
		IMEI:      testIMEI,
	}
}

func newService(
	t *testing.T,
	st store.Store,
	units wialon.UnitSearcher,
	n notify.Notifier,
) *registrar.Service {
	t.Helper()
	return registrar.New(st, validate.New(units), units, n,
		registrar.WithLogger(quietLogger()),
		registrar.WithIDFunc(func() string { return "7f9c2ba4-e88f-4a5b-9c1d-2f3e4a5b6c7d" }),
	)
}

func TestService_Submit_Accepted(t *testing.T) {
	t.Parallel()

	units := wialonMocks.NewMockUnitSearcher(t)
	units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(401), true, nil).Times(2)
	units.EXPECT().InvalidateAvailability(testIMEI).Return().Once()

	st := store.NewMemoryStore()
	n := &recordingNotifier{}
	svc := newService(t, st, units, n)

	sub, report, err := svc.Submit(context.Background(), registration())
	require.NoError(t, err)

	assert.True(t, report.IsValid)
	assert.Equal(t, domain.SubmissionAccepted, sub.Status)
	require.NotNil(t, sub.UnitID)
	assert.Equal(t, int64(401), *sub.UnitID)
	assert.Empty(t, sub.ErrorFields)

	stored, err := svc.Get(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, stored.ID)

	require.Len(t, n.sent, 1)
	assert.Equal(t, "Blake Nall", n.sent[0].Name)
	assert.Equal(t, domain.SubmissionAccepted, n.sent[0].Status)
}

func TestService_Submit_Rejected(t *testing.T) {
	t.Parallel()

	units := wialonMocks.NewMockUnitSearcher(t)
	units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(0), false, nil).Once()

	st := store.NewMemoryStore()
	n := &recordingNotifier{}
	svc := newService(t, st, units, n)

	r := registration()
	r.Email = "blake@terminusgps.xyz"

	sub, report, err := svc.Submit(context.Background(), r)
	require.NoError(t, err)

	assert.False(t, report.IsValid)
	assert.Equal(t, domain.SubmissionRejected, sub.Status)
	assert.Nil(t, sub.UnitID)
	assert.Equal(t, []string{domain.FieldEmail, domain.FieldIMEI}, sub.ErrorFields)

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[domain.SubmissionRejected])
	require.Len(t, n.sent, 1)
}

func TestService_Submit_UnitVanishes(t *testing.T) {
	t.Parallel()

	units := wialonMocks.NewMockUnitSearcher(t)
	units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(401), true, nil).Once()
	units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(0), false, nil).Once()

	svc := newService(t, store.NewMemoryStore(), units, &recordingNotifier{})

	sub, report, err := svc.Submit(context.Background(), registration())
	require.NoError(t, err)
	assert.False(t, report.IsValid)
	assert.Equal(t, domain.OutcomeInvalid, report.Fields[domain.FieldIMEI])
	assert.Equal(t, domain.SubmissionRejected, sub.Status)
	assert.Equal(t, []string{domain.FieldIMEI}, sub.ErrorFields)
}

// fieldlessValidator passes every registration without per-field outcomes.
type fieldlessValidator struct{}

func (fieldlessValidator) ValidateAll(context.Context, *domain.Registration) (*domain.Report, error) {
	return &domain.Report{IsValid: true}, nil
}

func TestService_Submit_UnitVanishesWithoutFieldOutcomes(t *testing.T) {
	t.Parallel()

	units := wialonMocks.NewMockUnitSearcher(t)
	units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(0), false, nil).Once()

	svc := registrar.New(store.NewMemoryStore(), fieldlessValidator{}, units, &recordingNotifier{},
		registrar.WithLogger(quietLogger()),
	)

	var (
		sub    *domain.Submission
		report *domain.Report
		err    error
	)
	require.NotPanics(t, func() {
		sub, report, err = svc.Submit(context.Background(), registration())
	})
	require.NoError(t, err)
	assert.False(t, report.IsValid)
	assert.Equal(t, domain.OutcomeInvalid, report.Fields[domain.FieldIMEI])
	assert.Equal(t, domain.SubmissionRejected, sub.Status)
	assert.Equal(t, []string{domain.FieldIMEI}, sub.ErrorFields)
}

func TestService_Submit_Errors(t *testing.T) {
	t.Parallel()

	t.Run("remote unavailable stores nothing", func(t *testing.T) {
		t.Parallel()

		units := wialonMocks.NewMockUnitSearcher(t)
		units.EXPECT().FindByIMEI(mock.Anything, testIMEI).
			Return(int64(0), false, wialon.ErrRemoteUnavailable).Once()

		st := store.NewMemoryStore()
		n := &recordingNotifier{}
		svc := newService(t, st, units, n)

		_, _, err := svc.Submit(context.Background(), registration())
		require.ErrorIs(t, err, wialon.ErrRemoteUnavailable)

		_, total, err := st.ListSubmissions(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, n.sent)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		units := wialonMocks.NewMockUnitSearcher(t)
		units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(401), true, nil).Times(2)

		svc := newService(t, failingStore{store.NewMemoryStore()}, units, &recordingNotifier{})

		_, _, err := svc.Submit(context.Background(), registration())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storing submission")
	})

	t.Run("notifier failure is not fatal", func(t *testing.T) {
		t.Parallel()

		units := wialonMocks.NewMockUnitSearcher(t)
		units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(0), false, nil).Once()

		n := &recordingNotifier{err: notify.ErrRateLimited}
		svc := newService(t, store.NewMemoryStore(), units, n)

		sub, _, err := svc.Submit(context.Background(), registration())
		require.NoError(t, err)
		assert.Equal(t, domain.SubmissionRejected, sub.Status)
	})
}

func TestService_Get(t *testing.T) {
	t.Parallel()

	units := wialonMocks.NewMockUnitSearcher(t)
	svc := newService(t, store.NewMemoryStore(), units, &recordingNotifier{})

	_, err := svc.Get(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, registrar.ErrNotFound)

	_, err = svc.Get(context.Background(), "00000000-0000-4000-8000-000000000000")
	require.ErrorIs(t, err, registrar.ErrNotFound)
}

func TestService_List(t *testing.T) {
	t.Parallel()

	units := wialonMocks.NewMockUnitSearcher(t)
	units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(0), false, nil)

	ids := []string{
		"11111111-1111-4111-8111-111111111111",
		"22222222-2222-4222-8222-222222222222",
	}
	var next int
	svc := registrar.New(store.NewMemoryStore(), validate.New(units), units, &recordingNotifier{},
		registrar.WithLogger(quietLogger()),
		registrar.WithIDFunc(func() string {
			id := ids[next]
			next++
			return id
		}),
	)

	for range ids {
		_, _, err := svc.Submit(context.Background(), registration())
		require.NoError(t, err)
	}

	status := domain.SubmissionRejected
	subs, total, err := svc.List(context.Background(), &store.SubmissionQuery{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, subs, 2)
}
