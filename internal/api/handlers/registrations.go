package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/terminusgps/wialon-registration/internal/registrar"
	"github.com/terminusgps/wialon-registration/internal/store"
	domain "github.com/terminusgps/wialon-registration/pkg/types"
)

// Registrar accepts and reads back registration submissions.
type Registrar interface {
	Submit(ctx context.Context, r *domain.Registration) (*domain.Submission, *domain.Report, error)
	Get(ctx context.Context, id string) (*domain.Submission, error)
	List(ctx context.Context, q *store.SubmissionQuery) ([]domain.Submission, int, error)
	Counts(ctx context.Context) (map[domain.SubmissionStatus]int, error)
}

// RegistrationsHandler handles registration submission endpoints.
type RegistrationsHandler struct {
	registrar Registrar
}

// NewRegistrationsHandler creates a new RegistrationsHandler.
func NewRegistrationsHandler(r Registrar) *RegistrationsHandler {
	return &RegistrationsHandler{registrar: r}
}

// --- Input/Output types ---

// SubmitRegistrationInput is the request for submitting a registration.
type SubmitRegistrationInput struct {
	Body RegistrationBody
}

// SubmitRegistrationOutput is the stored submission and its report.
type SubmitRegistrationOutput struct {
	Body struct {
		Submission domain.Submission `json:"submission"`
		Report     domain.Report     `json:"report"`
	}
}

// ListRegistrationsInput is the input for listing submissions.
type ListRegistrationsInput struct {
	Status string `query:"status" doc:"Filter by status"               enum:"accepted,rejected,"`
	IMEI   string `query:"imei"   doc:"Filter by IMEI"`
	Email  string `query:"email"  doc:"Filter by email, case-insensitive"`
	Limit  int    `query:"limit"  doc:"Number of results (default 50)"                       minimum:"1" maximum:"500"`
	Offset int    `query:"offset" doc:"Pagination offset"                                     minimum:"0"`
}

// ListRegistrationsOutput is the response for listing submissions.
type ListRegistrationsOutput struct {
	Body struct {
		Submissions []domain.Submission `json:"submissions"`
		Total       int                 `json:"total"`
		Limit       int                 `json:"limit"`
		Offset      int                 `json:"offset"`
	}
}

// GetRegistrationInput is the input for getting a single submission.
type GetRegistrationInput struct {
	ID string `path:"id" doc:"Submission UUID"`
}

// GetRegistrationOutput is the response for getting a single submission.
type GetRegistrationOutput struct {
	Body domain.Submission
}

// RegistrationStatsOutput reports submission counts per status.
type RegistrationStatsOutput struct {
	Body struct {
		Accepted int `json:"accepted" doc:"Accepted submissions"`
		Rejected int `json:"rejected" doc:"Rejected submissions"`
	}
}

// --- Handlers ---

// Submit validates and stores a registration. Invalid registrations are
// stored as rejected and still answer 201.
func (h *RegistrationsHandler) Submit(
	ctx context.Context,
	input *SubmitRegistrationInput,
) (*SubmitRegistrationOutput, error) {
	sub, report, err := h.registrar.Submit(ctx, input.Body.registration())
	if err != nil {
		return nil, wialonError("registration failed", err)
	}

	resp := &SubmitRegistrationOutput{}
	resp.Body.Submission = *sub
	resp.Body.Report = *report
	return resp, nil
}

// ListRegistrations returns stored submissions, newest first.
func (h *RegistrationsHandler) ListRegistrations(
	ctx context.Context,
	input *ListRegistrationsInput,
) (*ListRegistrationsOutput, error) {
	q := &store.SubmissionQuery{
		Limit:  input.Limit,
		Offset: input.Offset,
	}

	if input.Status != "" {
		status := domain.SubmissionStatus(input.Status)
		q.Status = &status
	}

	if input.IMEI != "" {
		q.IMEI = &input.IMEI
	}

	if input.Email != "" {
		q.Email = &input.Email
	}

	subs, total, err := h.registrar.List(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing registrations failed: " + err.Error())
	}
	if subs == nil {
		subs = []domain.Submission{}
	}

	resp := &ListRegistrationsOutput{}
	resp.Body.Submissions = subs
	resp.Body.Total = total
	resp.Body.Limit, resp.Body.Offset = q.Page()

	return resp, nil
}

// GetRegistration returns a single submission by ID.
func (h *RegistrationsHandler) GetRegistration(
	ctx context.Context,
	input *GetRegistrationInput,
) (*GetRegistrationOutput, error) {
	sub, err := h.registrar.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, registrar.ErrNotFound) {
			return nil, huma.Error404NotFound("registration not found")
		}
		return nil, huma.Error500InternalServerError("getting registration failed: " + err.Error())
	}

	return &GetRegistrationOutput{Body: *sub}, nil
}

// RegistrationStats returns submission counts per status.
func (h *RegistrationsHandler) RegistrationStats(
	ctx context.Context,
	_ *struct{},
) (*RegistrationStatsOutput, error) {
	counts, err := h.registrar.Counts(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("counting registrations failed: " + err.Error())
	}

	resp := &RegistrationStatsOutput{}
	resp.Body.Accepted = counts[domain.SubmissionAccepted]
	resp.Body.Rejected = counts[domain.SubmissionRejected]
	return resp, nil
}

// RegisterRegistrationRoutes registers registration endpoints with the Huma API.
func RegisterRegistrationRoutes(api huma.API, h *RegistrationsHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "submit-registration",
		Method:        http.MethodPost,
		Path:          "/api/v1/registrations",
		Summary:       "Submit a registration",
		Description:   "Validates a registration and stores it as accepted or rejected.",
		Tags:          []string{"registrations"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusTooManyRequests},
	}, h.Submit)

	huma.Register(api, huma.Operation{
		OperationID: "list-registrations",
		Method:      http.MethodGet,
		Path:        "/api/v1/registrations",
		Summary:     "List registrations",
		Description: "Returns stored submissions with optional status, IMEI, and email filters.",
		Tags:        []string{"registrations"},
	}, h.ListRegistrations)

	huma.Register(api, huma.Operation{
		OperationID: "registration-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/registrations/stats",
		Summary:     "Count registrations by status",
		Tags:        []string{"registrations"},
	}, h.RegistrationStats)

	huma.Register(api, huma.Operation{
		OperationID: "get-registration",
		Method:      http.MethodGet,
		Path:        "/api/v1/registrations/{id}",
		Summary:     "Get a registration by ID",
		Description: "Returns a single stored submission by its UUID.",
		Tags:        []string{"registrations"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetRegistration)
}
