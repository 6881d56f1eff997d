package handler

import (
	"net/http"

	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/middleware"
	"github.com/rriojas/TecRHPermisos-sub000/internal/model"
	"github.com/rriojas/TecRHPermisos-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CortesHandler struct{ svc service.CorteService }

func NewCortesHandler(svc service.CorteService) *CortesHandler {
	return &CortesHandler{svc: svc}
}

// Activo GET /v1/cortes/activo
func (h *CortesHandler) Activo(c *gin.Context) {
	corte, err := h.svc.CorteActivo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, corteToDTO(corte))
}

// Crear POST /v1/cortes
//
// Closes the current corte (if any) and opens the new one atomically; the
// marcador row at the tail of the timeline is maintained inside the same
// transaction.
func (h *CortesHandler) Crear(c *gin.Context) {
	var req dto.CrearCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	corte, err := h.svc.CrearCorte(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, corteToDTO(corte))
}

// Listar GET /v1/cortes
func (h *CortesHandler) Listar(c *gin.Context) {
	cortes, err := h.svc.ListarCortes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	data := make([]dto.CorteResponse, 0, len(cortes))
	for i := range cortes {
		data = append(data, corteToDTO(&cortes[i]))
	}
	c.JSON(http.StatusOK, data)
}

// Actualizar PUT /v1/cortes/:id — date correction only, never touches Activo.
func (h *CortesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarCorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	corte, err := h.svc.ActualizarCorte(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, corteToDTO(corte))
}

// Eliminar DELETE /v1/cortes/:id
func (h *CortesHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarCorte(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Corte eliminado"})
}

func corteToDTO(co *model.Corte) dto.CorteResponse {
	resp := dto.CorteResponse{
		ID:         co.ID,
		Activo:     co.Activo,
		EsMarcador: co.EsMarcador(),
	}
	if co.FechaInicio != nil {
		s := co.FechaInicio.Format("2006-01-02")
		resp.FechaInicio = &s
	}
	if co.FechaFin != nil {
		s := co.FechaFin.Format("2006-01-02")
		resp.FechaFin = &s
	}
	return resp
}
