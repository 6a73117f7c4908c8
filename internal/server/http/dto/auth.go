package dto

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message string `json:"message"`
}
