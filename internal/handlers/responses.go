package handlers

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists the failing fields of a registration.
type ValidationErrorResponse struct {
	Code   string            `json:"code"`
	Errors map[string]string `json:"errors"`
}

// RegisterResponse acknowledges a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness and the number of open form sessions.
type HealthResponse struct {
	Status string `json:"status"`
	Forms  int    `json:"forms"`
}
