package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/auth"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	AnalyticsUC    *analytics.AnalyticsUseCase
	ReportUC       *analytics.ReportUseCase
	Collections    CollectionStatus
	ServiceName    string
	JWTSecret      string
	RequestTimeout time.Duration // 0 = sin deadline por petición
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// deadline: cada handler que toca MongoDB recibe un UserContext con timeout.
	deadline := func(h fiber.Handler) fiber.Handler {
		if deps.RequestTimeout <= 0 {
			return h
		}
		return timeout.NewWithContext(h, deps.RequestTimeout)
	}

	// Público
	healthHandler := NewHealthHandler(deps.ServiceName, deps.Collections)
	api.Get("/health", healthHandler.Health)

	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/verify", authHandler.Verify)

	dataHandler := NewDataHandler(deps.AnalyticsUC)
	protected.Get("/jobs", deadline(dataHandler.Jobs))
	protected.Get("/roles", deadline(dataHandler.Roles))

	a := protected.Group("/analytics")
	h := NewAnalyticsHandler(deps.AnalyticsUC)
	a.Get("/summary", deadline(h.Summary))
	a.Get("/profit-by-team", deadline(h.ProfitByTeam))
	a.Get("/profit-by-agent", deadline(h.ProfitByAgent))
	a.Get("/profit-by-lead", deadline(h.ProfitByLead))
	a.Get("/profit-by-outreach", deadline(h.ProfitByOutreach))
	a.Get("/top-performers", deadline(h.TopPerformers))
	a.Get("/efficiency", deadline(h.Efficiency))
	a.Get("/trends", deadline(h.Trends))
	a.Get("/performance-comparison", deadline(h.PerformanceComparison))
	a.Get("/lead-roi", deadline(h.LeadROI))
	a.Get("/team-lead-matrix", deadline(h.TeamLeadMatrix))
	a.Get("/profit-distribution", deadline(h.ProfitDistribution))
	a.Get("/agent-specialization", deadline(h.AgentSpecialization))
	a.Get("/payment-collection", deadline(h.PaymentCollection))

	reportHandler := NewReportHandler(deps.ReportUC)
	a.Get("/report.pdf",
		RequireRole(entity.RoleAdmin, entity.RoleManager),
		deadline(reportHandler.DashboardPDF),
	)
}
