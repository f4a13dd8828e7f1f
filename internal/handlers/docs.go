package handlers

import (
	"encoding/json"
	"net/http"
)

// Documentation routes
const (
	RouteDocs        = "/api/docs"
	RouteOpenAPISpec = "/api/docs/openapi.json"
)

func schemaRef(name string) map[string]string {
	return map[string]string{"$ref": "#/components/schemas/" + name}
}

func jsonResponse(description string, schema interface{}) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{"schema": schema},
		},
	}
}

func getOperation(summary, description string, responses map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     summary,
			"description": description,
			"responses":   responses,
		},
	}
}

func stringProps(names ...string) map[string]interface{} {
	props := make(map[string]interface{}, len(names))
	for _, n := range names {
		props[n] = map[string]string{"type": "string"}
	}
	return props
}

// openAPIDocument describes every route registered by AgriHandler
func openAPIDocument() map[string]interface{} {
	errorResp := jsonResponse("Error response", schemaRef("ErrorResponse"))

	localWeather := getOperation(
		"Get weather for a location",
		"Returns the sample weather summary for a latitude/longitude pair in decimal degrees",
		map[string]interface{}{
			"200": jsonResponse("Local weather", schemaRef("LocalWeather")),
			"400": errorResp,
			"404": errorResp,
		},
	)
	localWeather["get"].(map[string]interface{})["parameters"] = []map[string]interface{}{
		{"name": "latitude", "in": "path", "required": true, "schema": map[string]string{"type": "number"}},
		{"name": "longitude", "in": "path", "required": true, "schema": map[string]string{"type": "number"}},
	}

	crop := getOperation(
		"Get one crop",
		"Returns growing requirements for a single crop by exact name",
		map[string]interface{}{"200": jsonResponse("Crop", schemaRef("CropInfo")), "404": errorResp},
	)
	crop["get"].(map[string]interface{})["parameters"] = []map[string]interface{}{
		{"name": "name", "in": "path", "required": true, "schema": map[string]string{"type": "string"}},
	}

	return map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Agri Platform API",
			"description": "Read-only reference data for crops, weather, crop advisories and market prices",
			"version":     "1.0.0",
		},
		"servers": []map[string]string{
			{"url": "http://localhost:5000", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/crops": getOperation(
				"List crops",
				"Returns every crop keyed by name",
				map[string]interface{}{"200": jsonResponse("Crop table", map[string]interface{}{
					"type":                 "object",
					"additionalProperties": schemaRef("CropInfo"),
				})},
			),
			"/api/crops/{name}": crop,
			"/api/weather": getOperation(
				"Get weather sample",
				"Returns an illustrative weather reading with a planting recommendation",
				map[string]interface{}{"200": jsonResponse("Weather sample", schemaRef("WeatherSample"))},
			),
			"/api/weather/{latitude}/{longitude}": localWeather,
			"/api/crop-advisory": getOperation(
				"Get crop advisory",
				"Returns recommended crops, soil types and weather alerts",
				map[string]interface{}{"200": jsonResponse("Crop advisory", schemaRef("CropAdvisory"))},
			),
			"/api/market-prices": getOperation(
				"Get market prices",
				"Returns current crop prices stamped with the time of the request",
				map[string]interface{}{"200": jsonResponse("Market prices", schemaRef("MarketPrices"))},
			),
			"/health": getOperation(
				"Health check",
				"Reports service liveness",
				map[string]interface{}{"200": jsonResponse("Healthy", map[string]interface{}{
					"type":       "object",
					"properties": stringProps("status", "timestamp"),
				})},
			),
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"CropInfo": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"cycle":       map[string]string{"type": "integer", "description": "Days to maturity"},
						"temperature": map[string]string{"type": "string"},
						"water":       map[string]string{"type": "string"},
					},
				},
				"WeatherSample": map[string]interface{}{
					"type":       "object",
					"properties": stringProps("temperature", "humidity", "recommendation"),
				},
				"LocalWeather": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"temperature":   map[string]string{"type": "number"},
						"humidity":      map[string]string{"type": "number"},
						"precipitation": map[string]string{"type": "number"},
						"weatherType":   map[string]string{"type": "string"},
					},
				},
				"CropAdvisory": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"recommendedCrops": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type":       "object",
								"properties": stringProps("name", "season", "waterRequirement"),
							},
						},
						"soilTypes": map[string]interface{}{
							"type":  "array",
							"items": map[string]string{"type": "string"},
						},
						"weatherAlerts": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type":       "object",
								"properties": stringProps("type", "severity", "startDate"),
							},
						},
					},
				},
				"MarketPrices": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"crops": map[string]interface{}{
							"type": "array",
							"items": map[string]interface{}{
								"type": "object",
								"properties": map[string]interface{}{
									"name":         map[string]string{"type": "string"},
									"currentPrice": map[string]string{"type": "number"},
									"unit":         map[string]string{"type": "string"},
									"trend":        map[string]string{"type": "string"},
								},
							},
						},
						"lastUpdated": map[string]string{"type": "string", "format": "date-time"},
					},
				},
				"ErrorResponse": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"error":   map[string]string{"type": "string"},
						"message": map[string]string{"type": "string"},
						"code":    map[string]string{"type": "integer"},
					},
				},
			},
		},
	}
}

// OpenAPISpec returns the OpenAPI 3.0 specification for the Agri Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(openAPIDocument())
}
