package handler

import (
	"encoding/json"
	"net/http"
	"parcels/internal/parcel"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type CreateCompanyRequest struct {
	Name string `json:"name" example:"СДЭК"`
}

// ListPackageTypes godoc
// @Summary List package types
// @Tags Package types
// @Produce json
// @Success 200 {array} PackageTypeResponse
// @Failure 500 {object} errorResponse
// @Router /package-types [get]
func (h *Handler) ListPackageTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListTypes(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list package types", logrus.Fields{"handler": "ListPackageTypes"})
		return
	}

	res := make([]PackageTypeResponse, 0, len(types))
	for _, t := range types {
		res = append(res, toTypeResponse(t))
	}
	writeJSON(w, http.StatusOK, res)
}

// GetPackageType godoc
// @Summary Get package type
// @Tags Package types
// @Produce json
// @Param id path int true "Package type ID"
// @Success 200 {object} PackageTypeResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /package-types/{id} [get]
func (h *Handler) GetPackageType(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "invalid package type ID")
	if !ok {
		return
	}

	t, err := h.service.GetType(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get package type", logrus.Fields{"handler": "GetPackageType", "type_id": id})
		return
	}
	writeJSON(w, http.StatusOK, toTypeResponse(t))
}

// ListCompanies godoc
// @Summary List delivery companies
// @Tags Companies
// @Produce json
// @Success 200 {array} CompanyResponse
// @Failure 500 {object} errorResponse
// @Router /companies [get]
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list delivery companies", logrus.Fields{"handler": "ListCompanies"})
		return
	}

	res := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		res = append(res, toCompanyResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}

// GetCompany godoc
// @Summary Get delivery company
// @Tags Companies
// @Produce json
// @Param id path int true "Company ID"
// @Success 200 {object} CompanyResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /companies/{id} [get]
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "invalid company ID")
	if !ok {
		return
	}

	c, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get delivery company", logrus.Fields{"handler": "GetCompany", "company_id": id})
		return
	}
	writeJSON(w, http.StatusOK, toCompanyResponse(c))
}

// CreateCompany godoc
// @Summary Register a delivery company
// @Tags Companies
// @Accept json
// @Produce json
// @Param request body CreateCompanyRequest true "Company"
// @Success 201 {object} CompanyResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /companies [post]
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<10)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreateCompanyRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.service.CreateCompany(r.Context(), parcel.CreateCompanyInput{Name: req.Name})
	if err != nil {
		writeServiceError(w, err, "failed to create delivery company", logrus.Fields{"handler": "CreateCompany"})
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyResponse(c))
}

func int64Param(w http.ResponseWriter, r *http.Request, msg string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}
