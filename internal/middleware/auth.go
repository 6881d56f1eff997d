package middleware

import (
	"net/http"
	"strings"

	"github.com/rriojas/TecRHPermisos-sub000/internal/apierror"
	"github.com/rriojas/TecRHPermisos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ClaimsKey = "claims"
)

// Role names as used in route declarations.
const (
	RolEmpleado      = "empleado"
	RolAutorizador   = "autorizador"
	RolRH            = "rh"
	RolAdministrador = "administrador"
)

// JWTClaims are the custom claims embedded in every access token.
// Roles are flags, not a single string: a user may hold several at once.
type JWTClaims struct {
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
	AreaID          uint   `json:"area_id"`
	EsEmpleado      bool   `json:"es_empleado"`
	EsAutorizador   bool   `json:"es_autorizador"`
	EsRH            bool   `json:"es_rh"`
	EsAdministrador bool   `json:"es_administrador"`
	jwt.RegisteredClaims
}

// TieneRol maps a role name onto the claim flags.
func (c *JWTClaims) TieneRol(rol string) bool {
	switch rol {
	case RolEmpleado:
		return c.EsEmpleado
	case RolAutorizador:
		return c.EsAutorizador
	case RolRH:
		return c.EsRH
	case RolAdministrador:
		return c.EsAdministrador
	}
	return false
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRol rejects requests whose JWT carries none of the allowed roles.
func RequireRol(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		for _, r := range roles {
			if claims.TieneRol(r) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
	}
}

// GetClaims is a helper to retrieve typed claims from the Gin context.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// GetActor builds the policy input the service layer consumes. Business code
// never touches the gin context or the raw token.
func GetActor(c *gin.Context) service.Actor {
	claims := GetClaims(c)
	return service.Actor{
		UsuarioID:     claims.UserID,
		AreaID:        claims.AreaID,
		Empleado:      claims.EsEmpleado,
		Autorizador:   claims.EsAutorizador,
		RH:            claims.EsRH,
		Administrador: claims.EsAdministrador,
	}
}
