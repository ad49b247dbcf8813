package dto

// ── Resumen ───────────────────────────────────────────────────────────────────

// SummaryDTO respuesta de GET /api/analytics/summary.
type SummaryDTO struct {
	TotalProfit     float64        `json:"totalProfit"`
	TotalJobs       int            `json:"totalJobs"`
	AvgProfitPerJob float64        `json:"avgProfitPerJob"`
	PaidJobs        int            `json:"paidJobs"`
	UnpaidJobs      int            `json:"unpaidJobs"`
	PaidProfit      float64        `json:"paidProfit"`
	UnpaidProfit    float64        `json:"unpaidProfit"`
	PaymentRate     float64        `json:"paymentRate"`    // paidJobs / totalJobs * 100
	JobsByStatus    map[string]int `json:"jobsByStatus"`   // status vacío → "unknown"
}

// ── Agrupaciones ──────────────────────────────────────────────────────────────

// TeamPerformanceDTO fila de GET /api/analytics/profit-by-team.
type TeamPerformanceDTO struct {
	Team         string  `json:"team"`
	TotalProfit  float64 `json:"totalProfit"`
	JobCount     int     `json:"jobCount"`
	AvgProfit    float64 `json:"avgProfit"`
	PaidJobs     int     `json:"paidJobs"`
	UnpaidJobs   int     `json:"unpaidJobs"`
	PaidProfit   float64 `json:"paidProfit"`
	UnpaidProfit float64 `json:"unpaidProfit"`
	PaymentRate  float64 `json:"paymentRate"`
}

// AgentPerformanceDTO fila de profit-by-agent, top-performers y performance-comparison.
type AgentPerformanceDTO struct {
	Rank         int     `json:"rank,omitempty"` // posición (1 = más rentable); solo en rankings
	Agent        string  `json:"agent"`
	Team         string  `json:"team"`
	TotalProfit  float64 `json:"totalProfit"`
	JobCount     int     `json:"jobCount"`
	AvgProfit    float64 `json:"avgProfit"`
	PaidJobs     int     `json:"paidJobs"`
	UnpaidJobs   int     `json:"unpaidJobs"`
	PaidProfit   float64 `json:"paidProfit"`
	UnpaidProfit float64 `json:"unpaidProfit"`
	PaymentRate  float64 `json:"paymentRate"`
}

// LeadSourceDTO fila de GET /api/analytics/profit-by-lead.
type LeadSourceDTO struct {
	LeadSource     string  `json:"leadSource"`
	TotalProfit    float64 `json:"totalProfit"`
	JobCount       int     `json:"jobCount"`
	AvgProfit      float64 `json:"avgProfit"`
	PaidJobs       int     `json:"paidJobs"`
	UnpaidJobs     int     `json:"unpaidJobs"`
	PaidProfit     float64 `json:"paidProfit"`
	UnpaidProfit   float64 `json:"unpaidProfit"`
	PaymentRate    float64 `json:"paymentRate"`
	ConversionRate float64 `json:"conversionRate"` // participación % sobre el total de jobs
}

// OutreachMethodDTO fila de GET /api/analytics/profit-by-outreach (nombre anterior de lead source).
type OutreachMethodDTO struct {
	Method         string  `json:"method"`
	TotalProfit    float64 `json:"totalProfit"`
	JobCount       int     `json:"jobCount"`
	AvgProfit      float64 `json:"avgProfit"`
	ConversionRate float64 `json:"conversionRate"`
}

// EfficiencyDTO respuesta de GET /api/analytics/efficiency.
type EfficiencyDTO struct {
	TotalAgents     int     `json:"totalAgents"`  // filas en la colección de roles
	ActiveAgents    int     `json:"activeAgents"` // agentes distintos con al menos un job
	TotalJobs       int     `json:"totalJobs"`
	AvgJobsPerAgent float64 `json:"avgJobsPerAgent"`
	AvgProfitPerJob float64 `json:"avgProfitPerJob"`
	CompletedJobs   int     `json:"completedJobs"`
	CompletionRate  float64 `json:"completionRate"`
	PaymentRate     float64 `json:"paymentRate"`
}

// TrendDTO fila mensual de GET /api/analytics/trends.
type TrendDTO struct {
	Month       string  `json:"month"` // YYYY-MM (UTC)
	TotalProfit float64 `json:"totalProfit"`
	JobCount    int     `json:"jobCount"`
	AvgProfit   float64 `json:"avgProfit"`
	PaidJobs    int     `json:"paidJobs"`
	UnpaidJobs  int     `json:"unpaidJobs"`
	PaymentRate float64 `json:"paymentRate"`
}

// AverageMetricsDTO promedios sobre todos los agentes.
type AverageMetricsDTO struct {
	AvgProfit     float64 `json:"avgProfit"`
	AvgLeads      float64 `json:"avgLeads"`
	AvgConversion float64 `json:"avgConversion"`
}

// PerformanceComparisonDTO respuesta de GET /api/analytics/performance-comparison.
type PerformanceComparisonDTO struct {
	TopPerformers    []AgentPerformanceDTO `json:"topPerformers"`
	BottomPerformers []AgentPerformanceDTO `json:"bottomPerformers"` // peor primero
	AverageMetrics   AverageMetricsDTO     `json:"averageMetrics"`
	TotalAgents      int                   `json:"totalAgents"`
}

// LeadROIDTO fila de GET /api/analytics/lead-roi.
// ROI aquí = paidProfit / totalProfit * 100 (no es un retorno sobre inversión real).
type LeadROIDTO struct {
	LeadSource   string  `json:"leadSource"`
	TotalProfit  float64 `json:"totalProfit"`
	PaidProfit   float64 `json:"paidProfit"`
	UnpaidProfit float64 `json:"unpaidProfit"`
	JobCount     int     `json:"jobCount"`
	PaidJobs     int     `json:"paidJobs"`
	UnpaidJobs   int     `json:"unpaidJobs"`
	AvgProfit    float64 `json:"avgProfit"`
	PaymentRate  float64 `json:"paymentRate"`
	ROI          float64 `json:"roi"`
}

// TeamLeadCellDTO celda equipo × fuente de GET /api/analytics/team-lead-matrix.
type TeamLeadCellDTO struct {
	Team        string  `json:"team"`
	LeadSource  string  `json:"leadSource"`
	TotalProfit float64 `json:"totalProfit"`
	JobCount    int     `json:"jobCount"`
	AvgProfit   float64 `json:"avgProfit"`
	PaidJobs    int     `json:"paidJobs"`
	UnpaidJobs  int     `json:"unpaidJobs"`
	PaymentRate float64 `json:"paymentRate"`
}

// ── Distribución ──────────────────────────────────────────────────────────────

// QuartilesDTO cuartiles nearest-rank.
type QuartilesDTO struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// PercentilesDTO percentiles nearest-rank.
type PercentilesDTO struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// ProfitDistributionDTO respuesta de GET /api/analytics/profit-distribution.
type ProfitDistributionDTO struct {
	Min         float64        `json:"min"`
	Max         float64        `json:"max"`
	Mean        float64        `json:"mean"`
	Median      float64        `json:"median"`
	StdDev      float64        `json:"stdDev"` // poblacional
	Quartiles   QuartilesDTO   `json:"quartiles"`
	Percentiles PercentilesDTO `json:"percentiles"`
	TotalJobs   int            `json:"totalJobs"`
	TotalProfit float64        `json:"totalProfit"`
}

// ── Especialización y cobranza ────────────────────────────────────────────────

// LeadShareDTO desglose de una fuente de lead dentro de un agente.
type LeadShareDTO struct {
	LeadSource  string  `json:"leadSource"`
	TotalProfit float64 `json:"totalProfit"`
	JobCount    int     `json:"jobCount"`
	AvgProfit   float64 `json:"avgProfit"`
	Percentage  float64 `json:"percentage"` // % del profit total del agente
}

// AgentSpecializationDTO fila de GET /api/analytics/agent-specialization.
type AgentSpecializationDTO struct {
	Agent            string         `json:"agent"`
	Team             string         `json:"team"`
	TotalProfit      float64        `json:"totalProfit"`
	JobCount         int            `json:"jobCount"`
	BestLeadSource   string         `json:"bestLeadSource"`
	BestLeadProfit   float64        `json:"bestLeadProfit"`
	BestLeadJobCount int            `json:"bestLeadJobCount"`
	AllLeadSources   []LeadShareDTO `json:"allLeadSources"`
}

// PaymentCollectionDTO fila de GET /api/analytics/payment-collection.
type PaymentCollectionDTO struct {
	Rank         int     `json:"rank"`
	Agent        string  `json:"agent"`
	Team         string  `json:"team"`
	PaidProfit   float64 `json:"paidProfit"`   // cobrado
	UnpaidProfit float64 `json:"unpaidProfit"` // pendiente
	PaidJobs     int     `json:"paidJobs"`
	UnpaidJobs   int     `json:"unpaidJobs"`
	JobCount     int     `json:"jobCount"`
	PaymentRate  float64 `json:"paymentRate"`
}

// ── Reporte PDF ───────────────────────────────────────────────────────────────

// DashboardReportDTO datos consolidados que se renderizan en el PDF exportable.
type DashboardReportDTO struct {
	Title         string                `json:"title"`
	GeneratedAt   string                `json:"generatedAt"`
	Period        PeriodRequest         `json:"period"`
	Summary       SummaryDTO            `json:"summary"`
	Teams         []TeamPerformanceDTO  `json:"teams"`
	TopPerformers []AgentPerformanceDTO `json:"topPerformers"`
	LeadROI       []LeadROIDTO          `json:"leadRoi"`
}
