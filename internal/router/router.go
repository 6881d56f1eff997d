package router

import (
	"time"

	"github.com/rriojas/TecRHPermisos-sub000/internal/config"
	"github.com/rriojas/TecRHPermisos-sub000/internal/handler"
	"github.com/rriojas/TecRHPermisos-sub000/internal/infra"
	"github.com/rriojas/TecRHPermisos-sub000/internal/middleware"
	"github.com/rriojas/TecRHPermisos-sub000/internal/repository"
	"github.com/rriojas/TecRHPermisos-sub000/internal/service"
	"github.com/rriojas/TecRHPermisos-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	evidencias := infra.NewEvidenciaStore(cfg.EvidenciasPath)

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	tipoRepo := repository.NewTipoPermisoRepository(db)
	corteRepo := repository.NewCorteRepository(db)
	permisoRepo := repository.NewPermisoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, rdb, dispatcher, cfg)
	corteSvc := service.NewCorteService(corteRepo, permisoRepo)
	permisoSvc := service.NewPermisoService(permisoRepo, corteRepo, tipoRepo, usuarioRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	areasH := handler.NewAreasHandler(areaRepo)
	tiposH := handler.NewTiposPermisoHandler(tipoRepo)
	cortesH := handler.NewCortesHandler(corteSvc)
	permisosH := handler.NewPermisosHandler(permisoSvc, evidencias, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/recuperar", middleware.LoginRateLimiter(), authH.Recuperar)
		auth.POST("/restablecer", authH.Restablecer)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalogs — any authenticated user can read
		v1.GET("/tipos-permiso", tiposH.Listar)
		v1.GET("/areas", areasH.Listar)

		// Areas — RH/administrador manage the catalog
		areas := v1.Group("/areas", middleware.RequireRol(middleware.RolRH, middleware.RolAdministrador))
		{
			areas.POST("", areasH.Crear)
			areas.PUT("/:id", areasH.Actualizar)
			areas.DELETE("/:id", areasH.Eliminar)
		}

		// Cortes — the active corte is visible to everyone (the request form
		// needs it); mutations are RH/administrador territory.
		v1.GET("/cortes/activo", cortesH.Activo)
		v1.GET("/cortes", middleware.RequireRol(middleware.RolAutorizador, middleware.RolRH, middleware.RolAdministrador), cortesH.Listar)
		cortes := v1.Group("/cortes", middleware.RequireRol(middleware.RolRH, middleware.RolAdministrador))
		{
			cortes.POST("", cortesH.Crear)
			cortes.PUT("/:id", cortesH.Actualizar)
		}
		v1.DELETE("/cortes/:id", middleware.RequireRol(middleware.RolAdministrador), cortesH.Eliminar)

		// Permisos — fine-grained access (own vs area vs all) is enforced in
		// the service layer; the router only requires a valid session.
		permisos := v1.Group("/permisos")
		{
			permisos.POST("", permisosH.Crear)
			permisos.GET("", permisosH.Listar)
			permisos.GET("/:id", permisosH.Obtener)
			permisos.PUT("/:id", permisosH.Editar)
			permisos.DELETE("/:id", permisosH.Eliminar)
			permisos.POST("/:id/revisar", middleware.RequireRol(middleware.RolAutorizador), permisosH.Revisar)
			permisos.POST("/:id/evidencia", permisosH.SubirEvidencia)
			permisos.DELETE("/:id/evidencia", permisosH.EliminarEvidencia)
			permisos.GET("/:id/pdf", permisosH.Imprimir)
		}

		// Usuarios — RH manages accounts; only administrador deactivates
		usuarios := v1.Group("/usuarios", middleware.RequireRol(middleware.RolRH, middleware.RolAdministrador))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
		v1.DELETE("/usuarios/:id", middleware.RequireRol(middleware.RolAdministrador), usuariosH.Desactivar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
