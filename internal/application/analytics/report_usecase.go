package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/application/ports"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
)

const (
	reportTitle         = "Sales Analytics Report"
	reportTopPerformers = 10
)

// ReportUseCase arma el reporte consolidado del dashboard y lo delega al renderer.
// Una sola lectura de las colecciones alimenta todas las secciones.
type ReportUseCase struct {
	data     *AnalyticsUseCase
	renderer ports.ReportRenderer
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(jobs repository.JobRepository, roles repository.RoleRepository, renderer ports.ReportRenderer) *ReportUseCase {
	return &ReportUseCase{
		data:     NewAnalyticsUseCase(jobs, roles),
		renderer: renderer,
		now:      time.Now,
	}
}

// Build devuelve los datos del reporte sin renderizar.
func (uc *ReportUseCase) Build(ctx context.Context, q dto.PeriodRequest) (*dto.DashboardReportDTO, error) {
	ds, err := uc.data.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardReportDTO{
		Title:         reportTitle,
		GeneratedAt:   uc.now().UTC().Format(time.RFC3339),
		Period:        q,
		Summary:       buildSummary(ds.jobs),
		Teams:         buildTeams(ds.jobs, ds.dir),
		TopPerformers: topN(buildAgents(ds.jobs, ds.dir, true), reportTopPerformers),
		LeadROI:       buildLeadROI(ds.jobs),
	}, nil
}

// Render construye el reporte y lo convierte a PDF.
func (uc *ReportUseCase) Render(ctx context.Context, q dto.PeriodRequest) ([]byte, error) {
	report, err := uc.Build(ctx, q)
	if err != nil {
		return nil, err
	}
	doc, err := uc.renderer.RenderDashboardReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return doc, nil
}
