// Package docs holds the OpenAPI document served under /swagger. Keep it in sync with the @-annotations in cmd/main.go and internal/parcel/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
	"schemes": {{ marshal .Schemes }},
	"swagger": "2.0",
	"info": {
		"description": "{{escape .Description}}",
		"title": "{{.Title}}",
		"contact": {},
		"version": "{{.Version}}"
	},
	"host": "{{.Host}}",
	"basePath": "{{.BasePath}}",
	"paths": {
		"/packages": {
			"get": {
				"description": "Lists packages of the caller's session, oldest first",
				"produces": [
					"application/json"
				],
				"tags": [
					"Packages"
				],
				"summary": "List own packages",
				"parameters": [
					{
						"type": "integer",
						"description": "Package type ID",
						"name": "type_id",
						"in": "query"
					},
					{
						"type": "boolean",
						"description": "Only packages with (true) or without (false) a delivery cost",
						"name": "has_cost",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page number, starting at 1",
						"name": "page",
						"in": "query"
					},
					{
						"type": "integer",
						"description": "Page size, at most 100",
						"name": "page_size",
						"in": "query"
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ListPackagesResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"description": "Creates a package owned by the caller's session. The delivery cost is filled in right away only when the USD rate is cached.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Packages"
				],
				"summary": "Register a package",
				"parameters": [
					{
						"description": "Package",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreatePackageRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.PackageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/packages/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Packages"
				],
				"summary": "Get own package",
				"parameters": [
					{
						"type": "string",
						"description": "Package ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.PackageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"delete": {
				"tags": [
					"Packages"
				],
				"summary": "Delete own package",
				"parameters": [
					{
						"type": "string",
						"description": "Package ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"204": {
						"description": "No Content"
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/packages/{id}/company": {
			"post": {
				"description": "Binds the package to the company unless a company was already chosen. Losing a race is not an error: assigned is false.",
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Packages"
				],
				"summary": "Choose the delivery company",
				"parameters": [
					{
						"type": "string",
						"description": "Package ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"description": "Company",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.AssignCompanyRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.AssignCompanyResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "package or company not found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/package-types": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Package types"
				],
				"summary": "List package types",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/handler.PackageTypeResponse"
							}
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/package-types/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Package types"
				],
				"summary": "Get package type",
				"parameters": [
					{
						"type": "integer",
						"description": "Package type ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.PackageTypeResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/companies": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Companies"
				],
				"summary": "List delivery companies",
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"type": "array",
							"items": {
								"$ref": "#/definitions/handler.CompanyResponse"
							}
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			},
			"post": {
				"consumes": [
					"application/json"
				],
				"produces": [
					"application/json"
				],
				"tags": [
					"Companies"
				],
				"summary": "Register a delivery company",
				"parameters": [
					{
						"description": "Company",
						"name": "request",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateCompanyRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.CompanyResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/companies/{id}": {
			"get": {
				"produces": [
					"application/json"
				],
				"tags": [
					"Companies"
				],
				"summary": "Get delivery company",
				"parameters": [
					{
						"type": "integer",
						"description": "Company ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.CompanyResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/jobs/rate-refresh": {
			"post": {
				"description": "Queues the rate refresh job and returns immediately",
				"produces": [
					"application/json"
				],
				"tags": [
					"Jobs"
				],
				"summary": "Refresh the USD rate now",
				"responses": {
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/handler.MessageResponse"
						}
					},
					"503": {
						"description": "scheduler is not running",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		},
		"/jobs/recalculation": {
			"post": {
				"description": "Queues the bulk recalculation job and returns immediately",
				"produces": [
					"application/json"
				],
				"tags": [
					"Jobs"
				],
				"summary": "Recalculate pending delivery costs now",
				"responses": {
					"202": {
						"description": "Accepted",
						"schema": {
							"$ref": "#/definitions/handler.MessageResponse"
						}
					},
					"503": {
						"description": "scheduler is not running",
						"schema": {
							"$ref": "#/definitions/handler.errorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"handler.AssignCompanyRequest": {
			"type": "object",
			"properties": {
				"company_id": {
					"type": "integer",
					"example": 1
				}
			}
		},
		"handler.AssignCompanyResponse": {
			"type": "object",
			"properties": {
				"assigned": {
					"type": "boolean",
					"example": true
				},
				"message": {
					"type": "string",
					"example": "Компания СДЭК выбрана перевозчиком."
				}
			}
		},
		"handler.CompanyResponse": {
			"type": "object",
			"properties": {
				"id": {
					"type": "integer",
					"example": 1
				},
				"name": {
					"type": "string",
					"example": "СДЭК"
				}
			}
		},
		"handler.CreateCompanyRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string",
					"example": "СДЭК"
				}
			}
		},
		"handler.CreatePackageRequest": {
			"type": "object",
			"properties": {
				"cost_in_usd": {
					"type": "string",
					"example": "12.00"
				},
				"name": {
					"type": "string",
					"example": "Зимняя куртка"
				},
				"type_package": {
					"type": "integer",
					"example": 1
				},
				"weight": {
					"type": "string",
					"example": "5.000"
				}
			}
		},
		"handler.ListPackagesResponse": {
			"type": "object",
			"properties": {
				"count": {
					"type": "integer",
					"example": 1
				},
				"results": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.PackageResponse"
					}
				}
			}
		},
		"handler.MessageResponse": {
			"type": "object",
			"properties": {
				"message": {
					"type": "string"
				}
			}
		},
		"handler.PackageResponse": {
			"type": "object",
			"properties": {
				"cost_in_usd": {
					"type": "string",
					"example": "12.00"
				},
				"created_at": {
					"type": "string",
					"example": "2025-01-02T15:04:05Z"
				},
				"delivery_company": {
					"type": "integer",
					"example": 3
				},
				"delivery_cost": {
					"type": "string",
					"example": "233.18"
				},
				"id": {
					"type": "string",
					"example": "77b5d9f5-0569-47e3-aee2-f659d59fbd97"
				},
				"name": {
					"type": "string",
					"example": "Зимняя куртка"
				},
				"type_package": {
					"type": "integer",
					"example": 1
				},
				"type_package_name": {
					"type": "string",
					"example": "Одежда"
				},
				"weight": {
					"type": "string",
					"example": "5.000"
				}
			}
		},
		"handler.PackageTypeResponse": {
			"type": "object",
			"properties": {
				"display_name": {
					"type": "string",
					"example": "Одежда"
				},
				"id": {
					"type": "integer",
					"example": 1
				},
				"name": {
					"type": "string",
					"example": "CL"
				}
			}
		},
		"handler.errorResponse": {
			"type": "object",
			"properties": {
				"error": {
					"type": "string"
				}
			}
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Parcels API",
	Description:      "Package registration, delivery cost calculation and delivery company assignment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
