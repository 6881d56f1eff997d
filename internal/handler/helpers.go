package handler

import (
	"errors"
	"net/http"

	"github.com/rriojas/TecRHPermisos-sub000/internal/apierror"
	"github.com/rriojas/TecRHPermisos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError translates service-layer errors into HTTP responses. Unknown
// errors are pushed to the gin error chain so the ErrorHandler middleware
// logs them and answers 500.
func respondError(c *gin.Context, err error) {
	var ev *service.ErrorValidacion
	switch {
	case errors.As(err, &ev):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{ev.Campo: ev.Mensaje}))
	case errors.Is(err, service.ErrAccesoDenegado):
		c.JSON(http.StatusForbidden, apierror.New("Acceso denegado"))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("Recurso no encontrado"))
	case errors.Is(err, service.ErrYaRevisado):
		c.JSON(http.StatusConflict, apierror.New("El permiso ya fue revisado"))
	case errors.Is(err, service.ErrCorteCerrado):
		c.JSON(http.StatusConflict, apierror.New("El corte del permiso ya no esta activo"))
	case errors.Is(err, service.ErrSinCorteActivo):
		c.JSON(http.StatusConflict, apierror.New("No hay un corte activo"))
	default:
		c.Error(err)
	}
}
