package dto

// MessageResponse is the minimal success body used by registration
type MessageResponse struct {
	Message string `json:"message" example:"User registered successfully!"`
}

// Messages returned verbatim to clients
const (
	MessageUserRegistered    = "User registered successfully!"
	MessageEmailAlreadyTaken = "Error: Email is already taken!"
	MessageFullAuthRequired  = "Full authentication is required to access this resource"
)
