package dto

// RegisterAccountRequest payload for new accounts.
type RegisterAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountRequest payload for account updates. Both fields are
// mandatory; partial updates are rejected.
type UpdateAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the public view of an account. The credential
// digest is never part of any response.
type AccountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned on both login outcomes; UserID is only set
// on success.
type LoginResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UserID  int64  `json:"user_id,omitempty"`
}
