package handler

import (
	"parcels/internal/domain"
	"time"
)

// CostNotCalculated is shown instead of the delivery cost while it is pending.
const CostNotCalculated = "Не рассчитано"

type PackageResponse struct {
	ID              string    `json:"id" example:"77b5d9f5-0569-47e3-aee2-f659d59fbd97"`
	Name            string    `json:"name" example:"Зимняя куртка"`
	TypeID          int64     `json:"type_package" example:"1"`
	TypePackageName string    `json:"type_package_name" example:"Одежда"`
	Weight          string    `json:"weight" example:"5.000"`
	CostInUSD       string    `json:"cost_in_usd" example:"12.00"`
	DeliveryCost    string    `json:"delivery_cost" example:"233.18"`
	DeliveryCompany *int64    `json:"delivery_company" example:"3"`
	CreatedAt       time.Time `json:"created_at" example:"2025-01-02T15:04:05Z"`
}

type ListPackagesResponse struct {
	Count   int               `json:"count" example:"1"`
	Results []PackageResponse `json:"results"`
}

type PackageTypeResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"CL"`
	DisplayName string `json:"display_name" example:"Одежда"`
}

type CompanyResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"СДЭК"`
}

type AssignCompanyResponse struct {
	Assigned bool   `json:"assigned" example:"true"`
	Message  string `json:"message" example:"Компания СДЭК выбрана перевозчиком."`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toPackageResponse(pkg domain.Package) PackageResponse {
	cost := CostNotCalculated
	if pkg.HasCost() {
		cost = pkg.DeliveryCost.Decimal.StringFixed(domain.RateScale)
	}
	return PackageResponse{
		ID:              pkg.ID.String(),
		Name:            pkg.Name,
		TypeID:          pkg.TypeID,
		TypePackageName: pkg.TypeCode.DisplayName(),
		Weight:          pkg.Weight.StringFixed(3),
		CostInUSD:       pkg.ValueUSD.StringFixed(2),
		DeliveryCost:    cost,
		DeliveryCompany: pkg.CompanyID,
		CreatedAt:       pkg.CreatedAt,
	}
}

func toTypeResponse(t domain.PackageType) PackageTypeResponse {
	return PackageTypeResponse{ID: t.ID, Name: string(t.Code), DisplayName: t.Code.DisplayName()}
}

func toCompanyResponse(c domain.DeliveryCompany) CompanyResponse {
	return CompanyResponse{ID: c.ID, Name: c.Name}
}
