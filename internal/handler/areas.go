package handler

import (
	"errors"
	"net/http"

	"github.com/rriojas/TecRHPermisos-sub000/internal/apierror"
	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AreasHandler maintains the catalog of areas; it is thin enough to talk to
// the repository directly.
type AreasHandler struct {
	repo repository.AreaRepository
}

func NewAreasHandler(repo repository.AreaRepository) *AreasHandler {
	return &AreasHandler{repo: repo}
}

// Crear POST /v1/areas
func (h *AreasHandler) Crear(c *gin.Context) {
	var req dto.CrearAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	area := &model.Area{Nombre: req.Nombre, Activo: true}
	if err := h.repo.Create(c.Request.Context(), area); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo crear el area"))
		return
	}
	c.JSON(http.StatusCreated, areaToDTO(area))
}

// Listar GET /v1/areas
func (h *AreasHandler) Listar(c *gin.Context) {
	areas, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	data := make([]dto.AreaResponse, 0, len(areas))
	for i := range areas {
		data = append(data, areaToDTO(&areas[i]))
	}
	c.JSON(http.StatusOK, data)
}

// Actualizar PUT /v1/areas/:id
func (h *AreasHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	area, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Area no encontrada"))
			return
		}
		c.Error(err)
		return
	}
	area.Nombre = req.Nombre
	if err := h.repo.Update(c.Request.Context(), area); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, areaToDTO(area))
}

// Eliminar DELETE /v1/areas/:id — logical delete.
func (h *AreasHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.repo.SoftDelete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Area desactivada"})
}

func areaToDTO(a *model.Area) dto.AreaResponse {
	return dto.AreaResponse{ID: a.ID, Nombre: a.Nombre, Activo: a.Activo}
}
