// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CredentialsRequest is the body of POST /register and POST /login.
// Pointer fields distinguish a missing field from an empty string.
type CredentialsRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Valid reports whether both fields are present.
func (r CredentialsRequest) Valid() bool {
	return r.Username != nil && r.Password != nil
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	UserID  *int64  `json:"user_id"`
	Message *string `json:"message"`
}

// Valid reports whether both fields are present.
func (r ChatRequest) Valid() bool {
	return r.UserID != nil && r.Message != nil
}

// StatusResponse carries a status word such as "ok" or "registered".
type StatusResponse struct {
	Status string `json:"status"`
}

// LoginResponse carries the id of an authenticated user.
type LoginResponse struct {
	UserID int64 `json:"user_id"`
}

// ChatResponse carries the chat reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse carries a human-readable error.
type ErrorResponse struct {
	Error string `json:"error"`
}
