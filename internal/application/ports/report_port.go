package ports

import (
	"context"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
)

// ReportRenderer puerto de salida para exportar el dashboard como documento.
// La capa de aplicación solo conoce este contrato; el adaptador concreto (maroto)
// vive en infrastructure/pdf.
type ReportRenderer interface {
	// RenderDashboardReport devuelve el documento completo en memoria.
	RenderDashboardReport(ctx context.Context, report *dto.DashboardReportDTO) ([]byte, error)
}
