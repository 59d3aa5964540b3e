package domain

// ErrorResponse é o corpo de erro padronizado devolvido pela API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
