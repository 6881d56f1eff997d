package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RecuperarRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RestablecerRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type CrearUsuarioRequest struct {
	Username        string  `json:"username" validate:"required,min=1,max=150"`
	Nombre          string  `json:"nombre"   validate:"required,min=2,max=100"`
	Email           *string `json:"email"    validate:"omitempty,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	AreaID          uint    `json:"area_id"  validate:"required,min=1"`
	EsEmpleado      bool    `json:"es_empleado"`
	EsAutorizador   bool    `json:"es_autorizador"`
	EsRH            bool    `json:"es_rh"`
	EsAdministrador bool    `json:"es_administrador"`
}

type ActualizarUsuarioRequest struct {
	Nombre          string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Email           *string `json:"email"    validate:"omitempty,email"`
	Password        string  `json:"password" validate:"omitempty,min=8"`
	AreaID          *uint   `json:"area_id"  validate:"omitempty,min=1"`
	EsEmpleado      *bool   `json:"es_empleado"`
	EsAutorizador   *bool   `json:"es_autorizador"`
	EsRH            *bool   `json:"es_rh"`
	EsAdministrador *bool   `json:"es_administrador"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID              uint    `json:"id"`
	Username        string  `json:"username"`
	Nombre          string  `json:"nombre"`
	Email           *string `json:"email"`
	AreaID          uint    `json:"area_id"`
	EsEmpleado      bool    `json:"es_empleado"`
	EsAutorizador   bool    `json:"es_autorizador"`
	EsRH            bool    `json:"es_rh"`
	EsAdministrador bool    `json:"es_administrador"`
	Activo          bool    `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
