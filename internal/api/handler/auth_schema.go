package handler

// --- Request / Response types ---
// Response types are owned by the transport layer so the JSON contract is not
// coupled to internal service changes. Password and refresh-token hashes have
// no representation here at all.

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type tokensResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginResponse struct {
	User   userResponse   `json:"user"`
	Tokens tokensResponse `json:"tokens"`
}

type messageResponse struct {
	Message string `json:"message"`
}
