package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rriojas/TecRHPermisos-sub000/internal/config"
	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"
	"github.com/rriojas/TecRHPermisos-sub000/internal/worker"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const resetKeyPrefix = "reset:"

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// Recuperar starts the password-reset flow: a short-lived token goes out
	// by email. Always succeeds from the caller's perspective so account
	// existence is not leaked.
	Recuperar(ctx context.Context, email string) error
	Restablecer(ctx context.Context, token, password string) error

	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uint) error
	ReactivarUsuario(ctx context.Context, id uint) error
}

type authService struct {
	repo       repository.UsuarioRepository
	rdb        *redis.Client
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, rdb *redis.Client, dispatcher *worker.Dispatcher, cfg *config.Config) AuthService {
	return &authService{repo: repo, rdb: rdb, dispatcher: dispatcher, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil || !user.Activo {
		return nil, errors.New("credenciales invalidas")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}
	return s.armarLogin(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uint(rawID))
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.armarLogin(user)
}

func (s *authService) Recuperar(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Same outcome whether or not the account exists.
		return nil
	}

	token := uuid.NewString()
	ttl := time.Duration(s.cfg.ResetTokenMinutes) * time.Minute
	if err := s.rdb.Set(ctx, resetKeyPrefix+token, user.ID, ttl).Err(); err != nil {
		return err
	}

	cuerpo := fmt.Sprintf(
		"Hola %s:\n\nPara restablecer tu contraseña ingresa a:\n%s/restablecer?token=%s\n\nEl enlace expira en %d minutos.",
		user.Nombre, s.cfg.Domain, token, s.cfg.ResetTokenMinutes)
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		ToEmail: email,
		Subject: "Recuperación de contraseña",
		Body:    cuerpo,
	})
}

func (s *authService) Restablecer(ctx context.Context, token, password string) error {
	val, err := s.rdb.Get(ctx, resetKeyPrefix+token).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return errors.New("token inválido o expirado")
		}
		return err
	}

	user, err := s.repo.FindByID(ctx, uint(val))
	if err != nil || !user.Activo {
		return errors.New("usuario no encontrado o inactivo")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	// One-shot token
	return s.rdb.Del(ctx, resetKeyPrefix+token).Err()
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.Usuario{
		Username:        req.Username,
		Nombre:          req.Nombre,
		Email:           req.Email,
		PasswordHash:    string(hash),
		AreaID:          req.AreaID,
		EsEmpleado:      req.EsEmpleado,
		EsAutorizador:   req.EsAutorizador,
		EsRH:            req.EsRH,
		EsAdministrador: req.EsAdministrador,
		Activo:          true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInactivos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uint, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
	}
	if req.AreaID != nil {
		user.AreaID = *req.AreaID
	}
	if req.EsEmpleado != nil {
		user.EsEmpleado = *req.EsEmpleado
	}
	if req.EsAutorizador != nil {
		user.EsAutorizador = *req.EsAutorizador
	}
	if req.EsRH != nil {
		user.EsRH = *req.EsRH
	}
	if req.EsAdministrador != nil {
		user.EsAdministrador = *req.EsAdministrador
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uint) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uint) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *authService) armarLogin(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":          user.ID,
		"username":         user.Username,
		"area_id":          user.AreaID,
		"es_empleado":      user.EsEmpleado,
		"es_autorizador":   user.EsAutorizador,
		"es_rh":            user.EsRH,
		"es_administrador": user.EsAdministrador,
		"exp":              time.Now().Add(duration).Unix(),
		"iat":              time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:              u.ID,
		Username:        u.Username,
		Nombre:          u.Nombre,
		Email:           u.Email,
		AreaID:          u.AreaID,
		EsEmpleado:      u.EsEmpleado,
		EsAutorizador:   u.EsAutorizador,
		EsRH:            u.EsRH,
		EsAdministrador: u.EsAdministrador,
		Activo:          u.Activo,
	}
}
