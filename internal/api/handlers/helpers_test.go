package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/notify"
	"github.com/terminusgps/wialon-registration/internal/registrar"
	"github.com/terminusgps/wialon-registration/internal/store"
	"github.com/terminusgps/wialon-registration/internal/validate"
	wialonMocks "github.com/terminusgps/wialon-registration/internal/wialon/mocks"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

const testIMEI = "356938035643809"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validBody() map[string]any {
	return map[string]any{
		"firstName": "Blake",
		"lastName":  "Nall",
		"email":     "blake@terminusgps.com",
		"assetName": "Service Van 3",
		"imei":      testIMEI,
	}
}

// newRegistrar wires a real registrar over an in-memory store and a mocked
// unit directory.
func newRegistrar(t *testing.T) (*registrar.Service, *store.MemoryStore, *wialonMocks.MockUnitSearcher) {
	t.Helper()

	units := wialonMocks.NewMockUnitSearcher(t)
	st := store.NewMemoryStore()
	svc := registrar.New(st, validate.New(units, validate.WithLogger(quietLogger())), units,
		notify.NewNoOpNotifier(quietLogger()),
		registrar.WithLogger(quietLogger()),
	)
	return svc, st, units
}

func seedSubmission(t *testing.T, st *store.MemoryStore, id, imei string, status domain.SubmissionStatus) {
	t.Helper()

	sub := &domain.Submission{
		ID: id,
		Registration: domain.Registration{
			FirstName: "Blake",
			LastName:  "Nall",
			Email:     "blake@terminusgps.com",
			AssetName: "Service Van 3",
			IMEI:      imei,
		},
		Status: status,
	}
	require.NoError(t, st.CreateSubmission(t.Context(), sub))
}

func decode(t *testing.T, data []byte, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, dst), string(data))
}
