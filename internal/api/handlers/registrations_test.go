package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/terminusgps/wialon-registration/internal/api/handlers"
	"github.com/terminusgps/wialon-registration/internal/wialon"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

type submitResponse struct {
	Submission domain.Submission `json:"submission"`
	Report     domain.Report     `json:"report"`
}

func TestRegistrationsHandler_Submit(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()

		svc, st, units := newRegistrar(t)
		units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(27654), true, nil).Twice()
		units.EXPECT().InvalidateAvailability(testIMEI).Return().Once()

		_, api := humatest.New(t)
		handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(svc))

		resp := api.Post("/api/v1/registrations", validBody())
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var out submitResponse
		decode(t, resp.Body.Bytes(), &out)
		assert.Equal(t, domain.SubmissionAccepted, out.Submission.Status)
		require.NotNil(t, out.Submission.UnitID)
		assert.Equal(t, int64(27654), *out.Submission.UnitID)
		assert.True(t, out.Report.IsValid)

		stored, err := st.GetSubmission(t.Context(), out.Submission.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.SubmissionAccepted, stored.Status)
	})

	t.Run("invalid registration is stored as rejected", func(t *testing.T) {
		t.Parallel()

		svc, st, units := newRegistrar(t)
		units.EXPECT().FindByIMEI(mock.Anything, testIMEI).Return(int64(0), false, nil).Once()

		_, api := humatest.New(t)
		handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(svc))

		body := validBody()
		body["assetName"] = ""
		resp := api.Post("/api/v1/registrations", body)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var out submitResponse
		decode(t, resp.Body.Bytes(), &out)
		assert.Equal(t, domain.SubmissionRejected, out.Submission.Status)
		assert.Nil(t, out.Submission.UnitID)
		assert.Equal(t, []string{domain.FieldAssetName, domain.FieldIMEI}, out.Submission.ErrorFields)
		assert.False(t, out.Report.IsValid)

		counts, err := st.CountSubmissionsByStatus(t.Context())
		require.NoError(t, err)
		assert.Equal(t, 1, counts[domain.SubmissionRejected])
	})

	t.Run("remote failure stores nothing", func(t *testing.T) {
		t.Parallel()

		svc, st, units := newRegistrar(t)
		units.EXPECT().FindByIMEI(mock.Anything, testIMEI).
			Return(int64(0), false, fmt.Errorf("searching: %w", wialon.ErrRemoteUnavailable)).Once()

		_, api := humatest.New(t)
		handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(svc))

		resp := api.Post("/api/v1/registrations", validBody())
		assert.Equal(t, http.StatusBadGateway, resp.Code)

		_, total, err := st.ListSubmissions(t.Context(), nil)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestRegistrationsHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTotal  int
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "no filters",
			wantStatus: http.StatusOK,
			wantTotal:  3,
			wantLimit:  50,
		},
		{
			name:       "status filter",
			query:      "?status=accepted",
			wantStatus: http.StatusOK,
			wantTotal:  2,
			wantLimit:  50,
		},
		{
			name:       "imei filter",
			query:      "?imei=356938035643817",
			wantStatus: http.StatusOK,
			wantTotal:  1,
			wantLimit:  50,
		},
		{
			name:       "email filter ignores case",
			query:      "?email=BLAKE@terminusgps.com",
			wantStatus: http.StatusOK,
			wantTotal:  3,
			wantLimit:  50,
		},
		{
			name:       "pagination",
			query:      "?limit=1&offset=1",
			wantStatus: http.StatusOK,
			wantTotal:  3,
			wantLimit:  1,
			wantOffset: 1,
		},
		{
			name:       "unknown status is rejected",
			query:      "?status=pending",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "limit above maximum is rejected",
			query:      "?limit=501",
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, st, _ := newRegistrar(t)
			seedSubmission(t, st, "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a61", testIMEI, domain.SubmissionAccepted)
			seedSubmission(t, st, "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a62", "356938035643817", domain.SubmissionAccepted)
			seedSubmission(t, st, "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a63", "356938035643825", domain.SubmissionRejected)

			_, api := humatest.New(t)
			handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(svc))

			resp := api.Get("/api/v1/registrations" + tt.query)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var out struct {
				Submissions []domain.Submission `json:"submissions"`
				Total       int                 `json:"total"`
				Limit       int                 `json:"limit"`
				Offset      int                 `json:"offset"`
			}
			decode(t, resp.Body.Bytes(), &out)
			assert.Equal(t, tt.wantTotal, out.Total)
			assert.Equal(t, tt.wantLimit, out.Limit)
			assert.Equal(t, tt.wantOffset, out.Offset)
			assert.LessOrEqual(t, len(out.Submissions), out.Limit)
		})
	}
}

func TestRegistrationsHandler_Get(t *testing.T) {
	t.Parallel()

	const id = "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a61"

	svc, st, _ := newRegistrar(t)
	seedSubmission(t, st, id, testIMEI, domain.SubmissionAccepted)

	_, api := humatest.New(t)
	handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(svc))

	resp := api.Get("/api/v1/registrations/" + id)
	require.Equal(t, http.StatusOK, resp.Code)
	var sub domain.Submission
	decode(t, resp.Body.Bytes(), &sub)
	assert.Equal(t, id, sub.ID)
	assert.Equal(t, testIMEI, sub.Registration.IMEI)

	resp = api.Get("/api/v1/registrations/9d2c1f7a-0000-4000-8000-000000000000")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Get("/api/v1/registrations/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRegistrationsHandler_Stats(t *testing.T) {
	t.Parallel()

	svc, st, _ := newRegistrar(t)
	seedSubmission(t, st, "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a61", testIMEI, domain.SubmissionAccepted)
	seedSubmission(t, st, "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a62", testIMEI, domain.SubmissionRejected)
	seedSubmission(t, st, "0b9f4c8e-2d1a-4e55-9a3b-1c2d3e4f5a63", testIMEI, domain.SubmissionRejected)

	_, api := humatest.New(t)
	handlers.RegisterRegistrationRoutes(api, handlers.NewRegistrationsHandler(svc))

	resp := api.Get("/api/v1/registrations/stats")
	require.Equal(t, http.StatusOK, resp.Code)
	var out struct {
		Accepted int `json:"accepted"`
		Rejected int `json:"rejected"`
	}
	decode(t, resp.Body.Bytes(), &out)
	assert.Equal(t, 1, out.Accepted)
	assert.Equal(t, 2, out.Rejected)
}
