package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"parcels/internal/domain"
	"parcels/internal/parcel"
	"parcels/internal/session"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 4 << 10

type CreatePackageRequest struct {
	Name      string           `json:"name" example:"Зимняя куртка"`
	Weight    *decimal.Decimal `json:"weight" swaggertype:"string" example:"5.000"`
	TypeID    int64            `json:"type_package" example:"1"`
	CostInUSD *decimal.Decimal `json:"cost_in_usd" swaggertype:"string" example:"12.00"`
}

type AssignCompanyRequest struct {
	CompanyID int64 `json:"company_id" example:"1"`
}

// CreatePackage godoc
// @Summary Register a package
// @Description Creates a package owned by the caller's session. The delivery cost is filled in right away only when the USD rate is cached.
// @Tags Packages
// @Accept json
// @Produce json
// @Param request body CreatePackageRequest true "Package"
// @Success 201 {object} PackageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /packages [post]
func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreatePackageRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Weight == nil || req.CostInUSD == nil {
		writeError(w, http.StatusBadRequest, "weight and cost_in_usd are required")
		return
	}

	sessionID := session.FromContext(r.Context())
	pkg, err := h.service.Create(r.Context(), parcel.CreateInput{
		SessionID: sessionID,
		Name:      req.Name,
		Weight:    *req.Weight,
		ValueUSD:  *req.CostInUSD,
		TypeID:    req.TypeID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTypeNotFound) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err, "failed to create package", logrus.Fields{"handler": "CreatePackage", "session_id": sessionID})
		return
	}

	writeJSON(w, http.StatusCreated, toPackageResponse(pkg))
}

// ListPackages godoc
// @Summary List own packages
// @Description Lists packages of the caller's session, oldest first
// @Tags Packages
// @Produce json
// @Param type_id query int false "Package type ID"
// @Param has_cost query bool false "Only packages with (true) or without (false) a delivery cost"
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size, at most 100"
// @Success 200 {object} ListPackagesResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /packages [get]
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	filter, page, err := parseListQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := session.FromContext(r.Context())
	pkgs, total, err := h.service.List(r.Context(), sessionID, filter, page)
	if err != nil {
		writeServiceError(w, err, "failed to list packages", logrus.Fields{"handler": "ListPackages", "session_id": sessionID})
		return
	}

	res := ListPackagesResponse{Count: total, Results: make([]PackageResponse, 0, len(pkgs))}
	for _, pkg := range pkgs {
		res.Results = append(res.Results, toPackageResponse(pkg))
	}
	writeJSON(w, http.StatusOK, res)
}

// GetPackage godoc
// @Summary Get own package
// @Tags Packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} PackageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /packages/{id} [get]
func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, ok := packageIDParam(w, r)
	if !ok {
		return
	}

	pkg, err := h.service.Get(r.Context(), id, session.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "failed to get package", logrus.Fields{"handler": "GetPackage", "package_id": id})
		return
	}
	writeJSON(w, http.StatusOK, toPackageResponse(pkg))
}

// DeletePackage godoc
// @Summary Delete own package
// @Tags Packages
// @Param id path string true "Package ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /packages/{id} [delete]
func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, ok := packageIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, session.FromContext(r.Context())); err != nil {
		writeServiceError(w, err, "failed to delete package", logrus.Fields{"handler": "DeletePackage", "package_id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignCompany godoc
// @Summary Choose the delivery company
// @Description Binds the package to the company unless a company was already chosen. Losing a race is not an error: assigned is false.
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body AssignCompanyRequest true "Company"
// @Success 200 {object} AssignCompanyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse "package or company not found"
// @Failure 500 {object} errorResponse
// @Router /packages/{id}/company [post]
func (h *Handler) AssignCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := packageIDParam(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AssignCompanyRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CompanyID <= 0 {
		writeError(w, http.StatusBadRequest, "company_id is required")
		return
	}

	result, err := h.service.AssignCompany(r.Context(), id, req.CompanyID)
	if err != nil {
		writeServiceError(w, err, "failed to assign delivery company", logrus.Fields{
			"handler": "AssignCompany", "package_id": id, "company_id": req.CompanyID,
		})
		return
	}

	switch result.Outcome {
	case domain.Assigned:
		writeJSON(w, http.StatusOK, AssignCompanyResponse{
			Assigned: true,
			Message:  fmt.Sprintf("Компания %s выбрана перевозчиком.", result.Company.Name),
		})
	case domain.AlreadyAssigned:
		writeJSON(w, http.StatusOK, AssignCompanyResponse{
			Assigned: false,
			Message:  fmt.Sprintf("Компания %s не может быть выбрана перевозчиком либо уже выбрана.", result.Company.Name),
		})
	default:
		writeError(w, http.StatusNotFound, domain.ErrPackageNotFound.Error())
	}
}

func packageIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid package ID format")
		return uuid.Nil, false
	}
	return id, true
}

func parseListQuery(r *http.Request) (domain.PackageFilter, domain.Page, error) {
	var (
		filter domain.PackageFilter
		page   domain.Page
	)
	q := r.URL.Query()

	if raw := q.Get("type_id"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, page, fmt.Errorf("invalid type_id %q", raw)
		}
		filter.TypeID = &typeID
	}
	if raw := q.Get("has_cost"); raw != "" {
		hasCost, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, page, fmt.Errorf("invalid has_cost %q", raw)
		}
		filter.HasCost = &hasCost
	}
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, page, fmt.Errorf("invalid page %q", raw)
		}
		page.Number = n
	}
	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, page, fmt.Errorf("invalid page_size %q", raw)
		}
		page.Size = n
	}
	return filter, page, nil
}
