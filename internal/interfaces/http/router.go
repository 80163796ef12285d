package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/heliosapp/helios-api/internal/application/attendance"
	"github.com/heliosapp/helios-api/internal/application/auth"
	appfolio "github.com/heliosapp/helios-api/internal/application/folio"
	"github.com/heliosapp/helios-api/internal/application/report"
	"github.com/heliosapp/helios-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TaxonomyUC  *usecase.TaxonomyUseCase
	FolioUC     *appfolio.UseCase
	TaskUC      *usecase.TaskUseCase
	UserUC      *usecase.UserUseCase
	UbicacionUC *usecase.UbicacionUseCase
	MarcaUC     *attendance.UseCase
	ReportUC    *report.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Actividades: lectura para todos, mutación solo admin
	actividades := protected.Group("/actividades")
	taxonomyHandler := NewTaxonomyHandler(deps.TaxonomyUC)
	actividades.Get("/", taxonomyHandler.List)
	actividades.Post("/", RequireAdmin(), taxonomyHandler.Create)
	actividades.Put("/:clave/nombre", RequireAdmin(), taxonomyHandler.Rename)
	actividades.Put("/:clave/activo", RequireAdmin(), taxonomyHandler.SetActive)
	actividades.Delete("/:clave", RequireAdmin(), taxonomyHandler.Delete)
	actividades.Post("/:clave/sub", RequireAdmin(), taxonomyHandler.AddSub)
	actividades.Put("/:clave/sub/:sub/nombre", RequireAdmin(), taxonomyHandler.RenameSub)
	actividades.Delete("/:clave/sub/:sub", RequireAdmin(), taxonomyHandler.DeleteSub)

	// Folios: asistente, consulta y administración
	folios := protected.Group("/folios")
	folioHandler := NewFolioHandler(deps.FolioUC)
	folios.Post("/builder", folioHandler.StartBuilder)
	folios.Get("/builder/:sesion", folioHandler.BuilderState)
	folios.Put("/builder/:sesion/puntuacion", folioHandler.Score)
	folios.Put("/builder/:sesion/comentario", folioHandler.Comment)
	folios.Post("/builder/:sesion/fotos", folioHandler.AttachPhoto)
	folios.Post("/builder/:sesion/avanzar", folioHandler.Next)
	folios.Post("/builder/:sesion/retroceder", folioHandler.Back)
	folios.Post("/builder/:sesion/enviar", folioHandler.Submit)
	folios.Delete("/builder/:sesion", folioHandler.Abandon)

	folios.Get("/", folioHandler.List)
	folios.Get("/estadisticas", folioHandler.Stats)
	folios.Post("/", folioHandler.CreateLegacy)
	folios.Get("/:id", folioHandler.GetByID)
	folios.Get("/:id/agregado", folioHandler.Aggregate)
	folios.Put("/:id/actividades", folioHandler.SaveActivityLegacy)
	folios.Put("/:id", RequireAdmin(), folioHandler.Update)
	folios.Delete("/:id", RequireAdmin(), folioHandler.Delete)

	// Marcas de asistencia
	marcas := protected.Group("/marcas")
	marcaHandler := NewMarcaHandler(deps.MarcaUC)
	marcas.Post("/", marcaHandler.Register)
	marcas.Get("/", marcaHandler.List)
	marcas.Get("/hoy", marcaHandler.Today)

	// Tareas
	tareas := protected.Group("/tareas")
	tareaHandler := NewTareaHandler(deps.TaskUC)
	tareas.Post("/", RequireAdmin(), tareaHandler.Create)
	tareas.Get("/", tareaHandler.List)
	tareas.Get("/:id", tareaHandler.GetByID)
	tareas.Put("/:id", RequireAdmin(), tareaHandler.Update)
	tareas.Post("/:id/iniciar", tareaHandler.Start)
	tareas.Post("/:id/completar", tareaHandler.Complete)
	tareas.Delete("/:id", RequireAdmin(), tareaHandler.Delete)

	// Usuarios (solo admin)
	usuarios := protected.Group("/usuarios", RequireAdmin())
	usuarioHandler := NewUsuarioHandler(deps.UserUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Post("/roles", usuarioHandler.AssignRole)
	usuarios.Get("/:uid", usuarioHandler.GetByID)
	usuarios.Put("/:uid/activo", usuarioHandler.SetActive)

	// Ubicaciones: lectura para todos, mutación solo admin
	ubicaciones := protected.Group("/ubicaciones")
	ubicacionHandler := NewUbicacionHandler(deps.UbicacionUC)
	ubicaciones.Get("/", ubicacionHandler.List)
	ubicaciones.Post("/", RequireAdmin(), ubicacionHandler.Create)
	ubicaciones.Delete("/:nombre", RequireAdmin(), ubicacionHandler.Delete)

	// Reportes
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.ReportUC)
	reportes.Get("/tablero", reporteHandler.Dashboard)
	reportes.Get("/folios/:id/pdf", reporteHandler.FolioPDF)
	reportes.Get("/supervision/pdf", reporteHandler.SupervisionPDF)
}
