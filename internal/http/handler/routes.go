package handler

import (
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jobtracker/docs"
	"jobtracker/internal/auth"
	"jobtracker/internal/brand"
	"jobtracker/internal/http/middleware"
	"jobtracker/internal/service"
)

// Deps holds what the routes call into. Brand and Metrics may be nil.
// Location is the service clock's zone for bare-date filters; nil means UTC.
type Deps struct {
	DB       *sql.DB
	Apps     service.ApplicationService
	Auth     auth.Provider
	Brand    brand.Generator
	Metrics  prometheus.Gatherer
	Location *time.Location
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Everything except health, metrics, docs, register and login requires a bearer token.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", swaggerUI)

	app.Post("/auth/register", Register(d.Auth))
	app.Post("/auth/login", Login(d.Auth))

	authn := middleware.Auth(d.Auth)
	app.Post("/auth/logout", authn, Logout(d.Auth))

	apps := app.Group("/applications", authn)
	apps.Get("/", ListApplications(d.Apps, d.Location))
	apps.Post("/", CreateApplication(d.Apps))
	apps.Get("/tags", AvailableTags(d.Apps))
	apps.Post("/bulk/status", BulkUpdateStatus(d.Apps))
	apps.Post("/bulk/delete", BulkDelete(d.Apps))
	apps.Get("/:id", GetApplication(d.Apps))
	apps.Patch("/:id", UpdateApplication(d.Apps))
	apps.Delete("/:id", DeleteApplication(d.Apps))
	apps.Put("/:id/status", UpdateStatus(d.Apps))
	apps.Post("/:id/notes", AddNote(d.Apps))
	apps.Delete("/:id/notes/:noteId", DeleteNote(d.Apps))
	apps.Post("/:id/reminders", AddReminder(d.Apps))
	apps.Patch("/:id/reminders/:reminderId", ToggleReminder(d.Apps))
	apps.Delete("/:id/reminders/:reminderId", DeleteReminder(d.Apps))
	apps.Post("/:id/tags", AddTag(d.Apps))
	apps.Delete("/:id/tags/:tag", RemoveTag(d.Apps))
	apps.Post("/:id/timeline", AddTimelineEvent(d.Apps))
	apps.Post("/:id/generate", GenerateDocuments(d.Apps))
	apps.Get("/:id/export", ExportApplication(d.Apps))

	stats := app.Group("/analytics", authn)
	stats.Get("/summary", Summary(d.Apps))
	stats.Get("/trend", Trend(d.Apps))
	stats.Get("/export", ExportAnalytics(d.Apps, d.Location))

	app.Post("/backup", authn, Backup(d.Apps))
	app.Post("/restore", authn, Restore(d.Apps))
	app.Get("/preferences", authn, GetPreferences(d.Apps))
	app.Put("/preferences", authn, PutPreferences(d.Apps))

	if d.Brand != nil {
		app.Post("/brand", authn, GenerateBrand(d.Brand))
	}
}

// swaggerUI serves the docs with the host and scheme the client used.
func swaggerUI(c *fiber.Ctx) error {
	scheme := c.Protocol()
	if proto := c.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.Split(proto, ",")[0]
	}

	docs.SwaggerInfo.Host = c.Get("Host")
	docs.SwaggerInfo.Schemes = []string{scheme}

	return swagger.HandlerDefault(c)
}
