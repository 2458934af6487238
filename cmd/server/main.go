package main

import (
	"log"
	"strings"

	"poa-backend/internal/auditoria"
	"poa-backend/internal/auth"
	"poa-backend/internal/catalogo"
	"poa-backend/internal/config"
	"poa-backend/internal/database"
	"poa-backend/internal/exportar"
	"poa-backend/internal/models"
	"poa-backend/internal/poa"
	"poa-backend/internal/programacion"
	"poa-backend/internal/proyectos"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"detail": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"detail": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Caché de items presupuestarios compartido por la sesión de edición;
	// se vacía al abrir cada vista de plan
	cacheItems := catalogo.NuevoCacheItems(256)
	catalogoHandler := catalogo.NewHandler(cacheItems)
	planHandler := poa.NewPlanHandler(cacheItems)

	api := app.Group("/api")

	// Auth pública
	api.Post("/auth/registrar-administrador", auth.RegistrarAdministradorHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rutas protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Administración (solo administrador)
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRol(models.RolAdministrador))

	adminRoutes.Post("/periodos", proyectos.CrearPeriodoHandler())
	adminRoutes.Post("/proyectos", proyectos.CrearProyectoHandler())
	adminRoutes.Put("/proyectos/:id", proyectos.ActualizarProyectoHandler())
	adminRoutes.Delete("/proyectos/:id", proyectos.EliminarProyectoHandler())
	adminRoutes.Delete("/poas/:id", poa.EliminarPoaHandler())
	adminRoutes.Get("/auditoria", auditoria.ListRegistrosHandler())

	// Catálogos
	protected.Get("/periodos", proyectos.ListPeriodosHandler())
	protected.Get("/tipos-proyecto", proyectos.ListTiposProyectoHandler())
	protected.Get("/catalogo/actividades", catalogoHandler.ActividadesCatalogoHandler())

	// Proyectos
	protected.Get("/proyectos", proyectos.ListProyectosHandler())
	protected.Get("/proyectos/:id", proyectos.GetProyectoHandler())
	protected.Get("/proyectos/:id/presupuesto-restante", poa.PresupuestoRestanteHandler())

	// POAs
	protected.Post("/poas", poa.CrearPoaHandler())
	protected.Get("/poas", poa.ListPoasHandler())
	protected.Get("/poas/:id", poa.GetPoaHandler())
	protected.Put("/poas/:id", poa.ActualizarPoaHandler())
	protected.Get("/poas/:id/detalles-tarea", catalogoHandler.DetallesPorActividadHandler())
	protected.Get("/poas/:id/exportar", exportar.ExportarPoaHandler())

	// Planificación (árbol completo)
	protected.Get("/poas/:id/plan", planHandler.CargarPlanHandler())
	protected.Post("/planificacion/guardar-actividades", planHandler.GuardarActividadesHandler())
	protected.Post("/planificacion/editar-tareas", planHandler.EditarTareasHandler())
	protected.Get("/actividades/:id/detalles-tarea", planHandler.DetallesDeActividadHandler())

	// Programación mensual (operaciones individuales)
	protected.Post("/programacion-mensual", programacion.CrearProgramacionHandler())
	protected.Get("/tareas/:id/programacion", programacion.ListProgramacionPorTareaHandler())
	protected.Put("/tareas/:id/programacion", programacion.ReemplazarProgramacionHandler())
	protected.Delete("/tareas/:id/programacion", programacion.EliminarProgramacionPorTareaHandler())

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
