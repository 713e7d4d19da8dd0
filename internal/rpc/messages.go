package rpc

// Optional string fields are pointers so an absent field can be told apart
// from an empty one.

type RegisterRequest struct {
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// Account is the public projection of an account.
type Account struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type VerifyEmailRequest struct {
	Key *string `json:"key,omitempty"`
}

type ResendVerificationRequest struct {
	Email *string `json:"email,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Username  *string `json:"username,omitempty"`
	Password  *string `json:"password,omitempty"`
	GrantType string  `json:"grant_type"`
	ClientID  string  `json:"client_id"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ChangePasswordRequest struct {
	OldPassword *string `json:"old_password,omitempty"`
	NewPassword *string `json:"new_password,omitempty"`
}

type GetProfileRequest struct{}

type UpdateProfileRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	// Partial leaves absent fields unchanged; otherwise email is required.
	Partial bool `json:"partial"`
}

type ListUsersRequest struct{}

// UserEntry carries either the full projection or only the first name.
type UserEntry struct {
	Email     *string `json:"email,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
}

type ListUsersResponse struct {
	Full  bool        `json:"full"`
	Users []UserEntry `json:"users"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
