package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parcels/internal/domain"
	"parcels/internal/parcel"
	"parcels/internal/scheduler"
	"parcels/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, in parcel.CreateInput) (domain.Package, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(domain.Package)
	return p, args.Error(1)
}

func (m *MockService) List(ctx context.Context, sessionID string, filter domain.PackageFilter, page domain.Page) ([]domain.Package, int, error) {
	args := m.Called(ctx, sessionID, filter, page)
	pkgs, _ := args.Get(0).([]domain.Package)
	return pkgs, args.Int(1), args.Error(2)
}

func (m *MockService) Get(ctx context.Context, id uuid.UUID, sessionID string) (domain.Package, error) {
	args := m.Called(ctx, id, sessionID)
	p, _ := args.Get(0).(domain.Package)
	return p, args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uuid.UUID, sessionID string) error {
	return m.Called(ctx, id, sessionID).Error(0)
}

func (m *MockService) AssignCompany(ctx context.Context, packageID uuid.UUID, companyID int64) (domain.AssignmentResult, error) {
	args := m.Called(ctx, packageID, companyID)
	r, _ := args.Get(0).(domain.AssignmentResult)
	return r, args.Error(1)
}

func (m *MockService) ListTypes(ctx context.Context) ([]domain.PackageType, error) {
	args := m.Called(ctx)
	t, _ := args.Get(0).([]domain.PackageType)
	return t, args.Error(1)
}

func (m *MockService) GetType(ctx context.Context, id int64) (domain.PackageType, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(domain.PackageType)
	return t, args.Error(1)
}

func (m *MockService) ListCompanies(ctx context.Context) ([]domain.DeliveryCompany, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]domain.DeliveryCompany)
	return c, args.Error(1)
}

func (m *MockService) GetCompany(ctx context.Context, id int64) (domain.DeliveryCompany, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(domain.DeliveryCompany)
	return c, args.Error(1)
}

func (m *MockService) CreateCompany(ctx context.Context, in parcel.CreateCompanyInput) (domain.DeliveryCompany, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(domain.DeliveryCompany)
	return c, args.Error(1)
}

type MockJobs struct{ mock.Mock }

func (m *MockJobs) TriggerRateRefresh() error   { return m.Called().Error(0) }
func (m *MockJobs) TriggerRecalculation() error { return m.Called().Error(0) }

type errorJSON struct {
	Error string `json:"error"`
}

const testSession = "4b0f4c52-5a8f-4b34-9d55-5b5cb2f9c1a0"

func newRequest(method, target string, body []byte, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(session.WithID(ctx, testSession))
}

func samplePackage() domain.Package {
	companyID := int64(3)
	return domain.Package{
		ID:           uuid.MustParse("77b5d9f5-0569-47e3-aee2-f659d59fbd97"),
		SessionID:    testSession,
		Name:         "Зимняя куртка",
		Weight:       decimal.RequireFromString("5"),
		ValueUSD:     decimal.RequireFromString("12"),
		TypeID:       1,
		TypeCode:     domain.TypeCloth,
		DeliveryCost: decimal.NewNullDecimal(decimal.RequireFromString("233.18")),
		CompanyID:    &companyID,
		CreatedAt:    time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC),
	}
}

// --- CreatePackage ---

func TestHandler_CreatePackage_Success(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))

	pkg := samplePackage()
	pkg.DeliveryCost = decimal.NullDecimal{}
	pkg.CompanyID = nil
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in parcel.CreateInput) bool {
		return in.SessionID == testSession &&
			in.Name == "Зимняя куртка" &&
			in.Weight.Equal(decimal.RequireFromString("5")) &&
			in.ValueUSD.Equal(decimal.RequireFromString("12.00")) &&
			in.TypeID == 1
	})).Return(pkg, nil).Once()

	body := []byte(`{"name":"Зимняя куртка","weight":5,"type_package":1,"cost_in_usd":"12.00"}`)
	rr := httptest.NewRecorder()
	h.CreatePackage(rr, newRequest(http.MethodPost, "/api/v1/packages", body, nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res PackageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, pkg.ID.String(), res.ID)
	require.Equal(t, "Одежда", res.TypePackageName)
	require.Equal(t, "5.000", res.Weight)
	require.Equal(t, "12.00", res.CostInUSD)
	require.Equal(t, CostNotCalculated, res.DeliveryCost)
	require.Nil(t, res.DeliveryCompany)
	svc.AssertExpectations(t)
}

func TestHandler_CreatePackage_BadRequests(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "invalid json", body: `{`, wantMsg: "invalid request body"},
		{name: "unknown field", body: `{"name":"x","weight":1,"type_package":1,"cost_in_usd":1,"extra":1}`, wantMsg: "invalid request body"},
		{name: "missing weight", body: `{"name":"x","type_package":1,"cost_in_usd":1}`, wantMsg: "weight and cost_in_usd are required"},
		{name: "missing cost", body: `{"name":"x","weight":1,"type_package":1}`, wantMsg: "weight and cost_in_usd are required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, new(MockJobs))
			rr := httptest.NewRecorder()

			h.CreatePackage(rr, newRequest(http.MethodPost, "/api/v1/packages", []byte(tc.body), nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.wantMsg, ej.Error)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_CreatePackage_ServiceErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "validation", err: errors.Join(domain.ErrInvalidInput, errors.New("name")), wantCode: http.StatusBadRequest},
		{name: "unknown type", err: domain.ErrTypeNotFound, wantCode: http.StatusBadRequest},
		{name: "storage", err: errors.New("connection reset"), wantCode: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, new(MockJobs))
			svc.On("Create", mock.Anything, mock.Anything).Return(domain.Package{}, tc.err).Once()

			body := []byte(`{"name":"x","weight":"1.5","type_package":7,"cost_in_usd":"3"}`)
			rr := httptest.NewRecorder()
			h.CreatePackage(rr, newRequest(http.MethodPost, "/api/v1/packages", body, nil))

			require.Equal(t, tc.wantCode, rr.Code)
			if tc.wantCode == http.StatusInternalServerError {
				var ej errorJSON
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
				require.Equal(t, "failed to create package", ej.Error)
			}
		})
	}
}

// --- ListPackages ---

func TestHandler_ListPackages_ParsesQuery(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))

	typeID := int64(2)
	hasCost := false
	svc.On("List", mock.Anything, testSession,
		domain.PackageFilter{TypeID: &typeID, HasCost: &hasCost},
		domain.Page{Number: 2, Size: 5},
	).Return([]domain.Package{samplePackage()}, 6, nil).Once()

	rr := httptest.NewRecorder()
	h.ListPackages(rr, newRequest(http.MethodGet, "/api/v1/packages?type_id=2&has_cost=false&page=2&page_size=5", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res ListPackagesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 6, res.Count)
	require.Len(t, res.Results, 1)
	require.Equal(t, "233.18", res.Results[0].DeliveryCost)
	require.Equal(t, int64(3), *res.Results[0].DeliveryCompany)
	svc.AssertExpectations(t)
}

func TestHandler_ListPackages_EmptyIsArray(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	svc.On("List", mock.Anything, testSession, domain.PackageFilter{}, domain.Page{}).Return(nil, 0, nil).Once()

	rr := httptest.NewRecorder()
	h.ListPackages(rr, newRequest(http.MethodGet, "/api/v1/packages", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"count":0,"results":[]}`, rr.Body.String())
}

func TestHandler_ListPackages_InvalidQuery(t *testing.T) {
	for _, query := range []string{"type_id=abc", "has_cost=maybe", "page=0", "page_size=-1"} {
		t.Run(query, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, new(MockJobs))
			rr := httptest.NewRecorder()

			h.ListPackages(rr, newRequest(http.MethodGet, "/api/v1/packages?"+query, nil, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// --- GetPackage / DeletePackage ---

func TestHandler_GetPackage_InvalidID(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	rr := httptest.NewRecorder()

	h.GetPackage(rr, newRequest(http.MethodGet, "/api/v1/packages/nope", nil, map[string]string{"id": "nope"}))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid package ID format", ej.Error)
}

func TestHandler_GetPackage_NotFound(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	id := uuid.New()
	svc.On("Get", mock.Anything, id, testSession).Return(domain.Package{}, domain.ErrPackageNotFound).Once()

	rr := httptest.NewRecorder()
	h.GetPackage(rr, newRequest(http.MethodGet, "/api/v1/packages/"+id.String(), nil, map[string]string{"id": id.String()}))

	require.Equal(t, http.StatusNotFound, rr.Code)
	svc.AssertExpectations(t)
}

func TestHandler_GetPackage_Success(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	pkg := samplePackage()
	svc.On("Get", mock.Anything, pkg.ID, testSession).Return(pkg, nil).Once()

	rr := httptest.NewRecorder()
	h.GetPackage(rr, newRequest(http.MethodGet, "/api/v1/packages/"+pkg.ID.String(), nil, map[string]string{"id": pkg.ID.String()}))

	require.Equal(t, http.StatusOK, rr.Code)
	var res PackageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "Зимняя куртка", res.Name)
	require.Equal(t, "233.18", res.DeliveryCost)
	require.True(t, res.CreatedAt.Equal(pkg.CreatedAt))
}

func TestHandler_DeletePackage(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	id := uuid.New()
	svc.On("Delete", mock.Anything, id, testSession).Return(nil).Once()

	rr := httptest.NewRecorder()
	h.DeletePackage(rr, newRequest(http.MethodDelete, "/api/v1/packages/"+id.String(), nil, map[string]string{"id": id.String()}))

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Empty(t, rr.Body.Bytes())
	svc.AssertExpectations(t)
}

// --- AssignCompany ---

func TestHandler_AssignCompany_Outcomes(t *testing.T) {
	company := domain.DeliveryCompany{ID: 3, Name: "СДЭК"}
	cases := []struct {
		name         string
		outcome      domain.AssignmentOutcome
		wantCode     int
		wantAssigned bool
		wantMsg      string
	}{
		{name: "assigned", outcome: domain.Assigned, wantCode: http.StatusOK, wantAssigned: true, wantMsg: "Компания СДЭК выбрана перевозчиком."},
		{name: "already assigned", outcome: domain.AlreadyAssigned, wantCode: http.StatusOK, wantMsg: "Компания СДЭК не может быть выбрана перевозчиком либо уже выбрана."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, new(MockJobs))
			id := uuid.New()
			svc.On("AssignCompany", mock.Anything, id, int64(3)).
				Return(domain.AssignmentResult{Outcome: tc.outcome, Company: company}, nil).Once()

			rr := httptest.NewRecorder()
			h.AssignCompany(rr, newRequest(http.MethodPost, "/", []byte(`{"company_id":3}`), map[string]string{"id": id.String()}))

			require.Equal(t, tc.wantCode, rr.Code)
			var res AssignCompanyResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
			require.Equal(t, tc.wantAssigned, res.Assigned)
			require.Equal(t, tc.wantMsg, res.Message)
		})
	}
}

func TestHandler_AssignCompany_NotFound(t *testing.T) {
	id := uuid.New()

	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	svc.On("AssignCompany", mock.Anything, id, int64(3)).
		Return(domain.AssignmentResult{Outcome: domain.NotFound}, nil).Once()
	rr := httptest.NewRecorder()
	h.AssignCompany(rr, newRequest(http.MethodPost, "/", []byte(`{"company_id":3}`), map[string]string{"id": id.String()}))
	require.Equal(t, http.StatusNotFound, rr.Code)

	svc = new(MockService)
	h = NewHandler(svc, new(MockJobs))
	svc.On("AssignCompany", mock.Anything, id, int64(3)).
		Return(domain.AssignmentResult{}, domain.ErrCompanyNotFound).Once()
	rr = httptest.NewRecorder()
	h.AssignCompany(rr, newRequest(http.MethodPost, "/", []byte(`{"company_id":3}`), map[string]string{"id": id.String()}))
	require.Equal(t, http.StatusNotFound, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, domain.ErrCompanyNotFound.Error(), ej.Error)
}

func TestHandler_AssignCompany_BadBody(t *testing.T) {
	for _, body := range []string{`{`, `{"company_id":0}`, `{}`, `{"company_id":1,"x":2}`} {
		t.Run(body, func(t *testing.T) {
			svc := new(MockService)
			h := NewHandler(svc, new(MockJobs))
			rr := httptest.NewRecorder()

			h.AssignCompany(rr, newRequest(http.MethodPost, "/", []byte(body), map[string]string{"id": uuid.NewString()}))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			svc.AssertNotCalled(t, "AssignCompany", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

// --- catalog ---

func TestHandler_ListPackageTypes(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	svc.On("ListTypes", mock.Anything).Return([]domain.PackageType{
		{ID: 1, Code: domain.TypeCloth},
		{ID: 2, Code: domain.TypeElectronic},
	}, nil).Once()

	rr := httptest.NewRecorder()
	h.ListPackageTypes(rr, newRequest(http.MethodGet, "/", nil, nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{"id":1,"name":"CL","display_name":"Одежда"},{"id":2,"name":"EL","display_name":"Электроника"}]`, rr.Body.String())
}

func TestHandler_GetPackageType(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	svc.On("GetType", mock.Anything, int64(9)).Return(domain.PackageType{}, domain.ErrTypeNotFound).Once()

	rr := httptest.NewRecorder()
	h.GetPackageType(rr, newRequest(http.MethodGet, "/", nil, map[string]string{"id": "9"}))
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.GetPackageType(rr, newRequest(http.MethodGet, "/", nil, map[string]string{"id": "x"}))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Companies(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	svc.On("CreateCompany", mock.Anything, parcel.CreateCompanyInput{Name: "DHL"}).
		Return(domain.DeliveryCompany{ID: 4, Name: "DHL"}, nil).Once()
	svc.On("ListCompanies", mock.Anything).Return([]domain.DeliveryCompany{{ID: 4, Name: "DHL"}}, nil).Once()
	svc.On("GetCompany", mock.Anything, int64(4)).Return(domain.DeliveryCompany{ID: 4, Name: "DHL"}, nil).Once()

	rr := httptest.NewRecorder()
	h.CreateCompany(rr, newRequest(http.MethodPost, "/", []byte(`{"name":"DHL"}`), nil))
	require.Equal(t, http.StatusCreated, rr.Code)
	require.JSONEq(t, `{"id":4,"name":"DHL"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ListCompanies(rr, newRequest(http.MethodGet, "/", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{"id":4,"name":"DHL"}]`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.GetCompany(rr, newRequest(http.MethodGet, "/", nil, map[string]string{"id": "4"}))
	require.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestHandler_CreateCompany_Invalid(t *testing.T) {
	svc := new(MockService)
	h := NewHandler(svc, new(MockJobs))
	svc.On("CreateCompany", mock.Anything, parcel.CreateCompanyInput{Name: ""}).
		Return(domain.DeliveryCompany{}, errors.Join(domain.ErrInvalidInput, errors.New("Name"))).Once()

	rr := httptest.NewRecorder()
	h.CreateCompany(rr, newRequest(http.MethodPost, "/", []byte(`{"name":""}`), nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

// --- jobs ---

func TestHandler_TriggerJobs(t *testing.T) {
	jobs := new(MockJobs)
	h := NewHandler(new(MockService), jobs)
	jobs.On("TriggerRateRefresh").Return(nil).Once()
	jobs.On("TriggerRecalculation").Return(nil).Once()

	rr := httptest.NewRecorder()
	h.TriggerRateRefresh(rr, newRequest(http.MethodPost, "/", nil, nil))
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.JSONEq(t, `{"message":"Задача обновления курса доллара запущена."}`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.TriggerRecalculation(rr, newRequest(http.MethodPost, "/", nil, nil))
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.JSONEq(t, `{"message":"Задача пересчета стоимости доставки запущена."}`, rr.Body.String())
	jobs.AssertExpectations(t)
}

func TestHandler_TriggerJobs_SchedulerStopped(t *testing.T) {
	jobs := new(MockJobs)
	h := NewHandler(new(MockService), jobs)
	jobs.On("TriggerRecalculation").Return(scheduler.ErrNotStarted).Once()

	rr := httptest.NewRecorder()
	h.TriggerRecalculation(rr, newRequest(http.MethodPost, "/", nil, nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
