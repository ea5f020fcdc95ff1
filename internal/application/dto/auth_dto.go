package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido más el usuario normalizado (la UI guarda este
// objeto como sesión; nunca incluye el hash de password).
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
