package handler

import (
	"net/http"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"

	"github.com/gin-gonic/gin"
)

// TiposPermisoHandler exposes the read-only catalog of tipos de permiso
// (falta, retardo, cambio de horario, cambio de turno).
type TiposPermisoHandler struct {
	repo repository.TipoPermisoRepository
}

func NewTiposPermisoHandler(repo repository.TipoPermisoRepository) *TiposPermisoHandler {
	return &TiposPermisoHandler{repo: repo}
}

// Listar GET /v1/tipos-permiso
func (h *TiposPermisoHandler) Listar(c *gin.Context) {
	tipos, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	data := make([]dto.TipoPermisoResponse, 0, len(tipos))
	for _, t := range tipos {
		data = append(data, dto.TipoPermisoResponse{ID: t.ID, Clave: t.Clave, Nombre: t.Nombre})
	}
	c.JSON(http.StatusOK, data)
}
