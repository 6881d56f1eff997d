package handler

import (
	"net/http"
	"strconv"

	"github.com/rriojas/TecRHPermisos-sub000/internal/apierror"
	"github.com/rriojas/TecRHPermisos-sub000/internal/dto"
	"github.com/rriojas/TecRHPermisos-sub000/internal/infra"
	"github.com/rriojas/TecRHPermisos-sub000/internal/middleware"
	"github.com/rriojas/TecRHPermisos-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// maxEvidenciaBytes caps evidence uploads at 10 MB.
const maxEvidenciaBytes = 10 << 20

type PermisosHandler struct {
	svc        service.PermisoService
	evidencias *infra.EvidenciaStore
	pdfPath    string
}

func NewPermisosHandler(svc service.PermisoService, evidencias *infra.EvidenciaStore, pdfPath string) *PermisosHandler {
	return &PermisosHandler{svc: svc, evidencias: evidencias, pdfPath: pdfPath}
}

// Crear godoc
// @Summary Solicitar un permiso
// @Tags permisos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearPermisoRequest true "Solicitud"
// @Success 201 {object} dto.PermisoResponse
// @Failure 409 {object} apierror.Confirmacion
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/permisos [post]
func (h *PermisosHandler) Crear(c *gin.Context) {
	var req dto.CrearPermisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, conf, err := h.svc.CrearPermiso(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if conf != nil {
		// Nothing was persisted; the client repeats the call with
		// confirmado=true to accept the out-of-corte fecha_fin.
		c.JSON(http.StatusConflict, apierror.NewConfirmacion(conf.Mensaje))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener GET /v1/permisos/:id
func (h *PermisosHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPermiso(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar GET /v1/permisos?corte_id=&solicitante_id=&revisado=
func (h *PermisosHandler) Listar(c *gin.Context) {
	var filtro dto.PermisoFiltro
	if v := c.Query("corte_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id)
			filtro.CorteID = &u
		}
	}
	if v := c.Query("solicitante_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(id)
			filtro.SolicitanteID = &u
		}
	}
	if v := c.Query("revisado"); v != "" {
		b := v == "true"
		filtro.Revisado = &b
	}

	resp, err := h.svc.ListarPermisos(c.Request.Context(), middleware.GetActor(c), filtro)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Editar PUT /v1/permisos/:id
func (h *PermisosHandler) Editar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EditarPermisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EditarPermiso(c.Request.Context(), middleware.GetActor(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar DELETE /v1/permisos/:id — logical delete.
func (h *PermisosHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarPermiso(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Permiso eliminado"})
}

// Revisar POST /v1/permisos/:id/revisar
func (h *PermisosHandler) Revisar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.RevisarPermisoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Revisar(c.Request.Context(), middleware.GetActor(c), id, *req.ConGoce)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubirEvidencia POST /v1/permisos/:id/evidencia (multipart, field "archivo").
// The file is written to disk first and the row updated after; if the update
// is rejected the orphan file is removed.
func (h *PermisosHandler) SubirEvidencia(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Archivo requerido (campo 'archivo')"))
		return
	}
	if file.Size > maxEvidenciaBytes {
		c.JSON(http.StatusBadRequest, apierror.New("El archivo excede el tamano maximo de 10 MB"))
		return
	}

	rel := h.evidencias.RutaRelativa(id, file.Filename)
	abs, err := h.evidencias.RutaAbsoluta(rel)
	if err != nil {
		c.Error(err)
		return
	}
	if err := c.SaveUploadedFile(file, abs); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.svc.ActualizarEvidencia(c.Request.Context(), middleware.GetActor(c), id, &rel)
	if err != nil {
		if rmErr := h.evidencias.Eliminar(rel); rmErr != nil {
			log.Warn().Err(rmErr).Str("ruta", rel).Msg("no se pudo limpiar evidencia huerfana")
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EliminarEvidencia DELETE /v1/permisos/:id/evidencia
func (h *PermisosHandler) EliminarEvidencia(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	actor := middleware.GetActor(c)

	actual, err := h.svc.ObtenerPermiso(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.svc.ActualizarEvidencia(c.Request.Context(), actor, id, nil)
	if err != nil {
		respondError(c, err)
		return
	}
	if actual.Evidencia != nil {
		if rmErr := h.evidencias.Eliminar(*actual.Evidencia); rmErr != nil {
			log.Warn().Err(rmErr).Str("ruta", *actual.Evidencia).Msg("no se pudo eliminar archivo de evidencia")
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Imprimir GET /v1/permisos/:id/pdf — renders the printable half-letter form.
func (h *PermisosHandler) Imprimir(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	permiso, err := h.svc.ObtenerParaImpresion(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	ruta, err := infra.GenerarPermisoPDF(permiso, h.pdfPath)
	if err != nil {
		c.Error(err)
		return
	}
	c.FileAttachment(ruta, "permiso_"+strconv.FormatUint(uint64(id), 10)+".pdf")
}
