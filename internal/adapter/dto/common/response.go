package common

// SuccessResponse wraps every successful API response
type SuccessResponse struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse reports service health
type HealthResponse struct {
	Status      string            `json:"status"`
	Environment string            `json:"environment"`
	Connections int               `json:"connections"`
	Sessions    int               `json:"sessions"`
	Components  map[string]string `json:"components,omitempty"`
}
