package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"parcels/internal/domain"
	"parcels/internal/parcel"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, in parcel.CreateInput) (domain.Package, error)
	List(ctx context.Context, sessionID string, filter domain.PackageFilter, page domain.Page) ([]domain.Package, int, error)
	Get(ctx context.Context, id uuid.UUID, sessionID string) (domain.Package, error)
	Delete(ctx context.Context, id uuid.UUID, sessionID string) error
	AssignCompany(ctx context.Context, packageID uuid.UUID, companyID int64) (domain.AssignmentResult, error)
	ListTypes(ctx context.Context) ([]domain.PackageType, error)
	GetType(ctx context.Context, id int64) (domain.PackageType, error)
	ListCompanies(ctx context.Context) ([]domain.DeliveryCompany, error)
	GetCompany(ctx context.Context, id int64) (domain.DeliveryCompany, error)
	CreateCompany(ctx context.Context, in parcel.CreateCompanyInput) (domain.DeliveryCompany, error)
}

// Jobs starts background jobs without waiting for them.
type Jobs interface {
	TriggerRateRefresh() error
	TriggerRecalculation() error
}

type Handler struct {
	service Service
	jobs    Jobs
}

func NewHandler(service Service, jobs Jobs) *Handler {
	return &Handler{service: service, jobs: jobs}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeServiceError maps domain errors to statuses; anything unknown is logged and hidden
// behind internalMsg.
func writeServiceError(w http.ResponseWriter, err error, internalMsg string, fields logrus.Fields) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrTypeNotFound),
		errors.Is(err, domain.ErrCompanyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logrus.WithError(err).WithFields(fields).Error(internalMsg)
		writeError(w, http.StatusInternalServerError, internalMsg)
	}
}
