package models

type RegisterRequest struct {
	FirstName            string `json:"first_name" form:"first_name"`
	LastName             string `json:"last_name" form:"last_name"`
	Email                string `json:"email" form:"email"`
	Password             string `json:"password" form:"password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
	Email     string `json:"email" form:"email"`
}

// AuthResponse is what a successful register or login hands to the session layer.
type AuthResponse struct {
	User          User
	LikedQuoteIDs []uint
}
