// Package analytics contiene los casos de uso del dashboard de ventas: agregaciones
// en memoria sobre la colección de jobs y el directorio agente → equipo.
package analytics

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/repository"
	"github.com/jhoicas/sales-analytics-api/internal/domain/stats"
)

const (
	defaultTopPerformers = 10
	maxTopPerformers     = 100
	defaultComparison    = 5
	maxComparison        = 50
)

// completedStatuses estados que cuentan como trabajo cerrado en efficiency.
var completedStatuses = map[string]bool{
	"paid":      true,
	"completed": true,
	"closed":    true,
	"won":       true,
}

// AnalyticsUseCase casos de uso de analítica. Cada llamada relee ambas colecciones;
// no hay caché.
type AnalyticsUseCase struct {
	jobs  repository.JobRepository
	roles repository.RoleRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(jobs repository.JobRepository, roles repository.RoleRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{jobs: jobs, roles: roles}
}

// dataset jobs ya filtrados por período + roles de la misma petición.
type dataset struct {
	jobs  []entity.Job
	roles []entity.Role
	dir   entity.TeamDirectory
}

func (uc *AnalyticsUseCase) loadJobs(ctx context.Context, q dto.PeriodRequest) ([]entity.Job, error) {
	p, err := parsePeriod(q)
	if err != nil {
		return nil, err
	}
	jobs, err := uc.jobs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return p.filter(jobs), nil
}

// loadDataset lee jobs y roles en paralelo con el contexto de la petición.
func (uc *AnalyticsUseCase) loadDataset(ctx context.Context, q dto.PeriodRequest) (*dataset, error) {
	p, err := parsePeriod(q)
	if err != nil {
		return nil, err
	}

	var jobs []entity.Job
	var roles []entity.Role
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = uc.jobs.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		roles, err = uc.roles.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dataset{
		jobs:  p.filter(jobs),
		roles: roles,
		dir:   entity.NewTeamDirectory(roles),
	}, nil
}

// Summary KPIs globales.
func (uc *AnalyticsUseCase) Summary(ctx context.Context, q dto.PeriodRequest) (*dto.SummaryDTO, error) {
	jobs, err := uc.loadJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	out := buildSummary(jobs)
	return &out, nil
}

// ProfitByTeam profit agregado por equipo.
func (uc *AnalyticsUseCase) ProfitByTeam(ctx context.Context, q dto.PeriodRequest) ([]dto.TeamPerformanceDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildTeams(ds.jobs, ds.dir), nil
}

// ProfitByAgent profit agregado por agente.
func (uc *AnalyticsUseCase) ProfitByAgent(ctx context.Context, q dto.PeriodRequest) ([]dto.AgentPerformanceDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildAgents(ds.jobs, ds.dir, false), nil
}

// ProfitByLead profit agregado por fuente de lead.
func (uc *AnalyticsUseCase) ProfitByLead(ctx context.Context, q dto.PeriodRequest) ([]dto.LeadSourceDTO, error) {
	jobs, err := uc.loadJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildLeadSources(jobs), nil
}

// ProfitByOutreach vista reducida de ProfitByLead con los nombres de campo antiguos.
func (uc *AnalyticsUseCase) ProfitByOutreach(ctx context.Context, q dto.PeriodRequest) ([]dto.OutreachMethodDTO, error) {
	jobs, err := uc.loadJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildOutreach(jobs), nil
}

// TopPerformers primeros N agentes por profit, con rank.
func (uc *AnalyticsUseCase) TopPerformers(ctx context.Context, q dto.PeriodRequest, lim dto.LimitRequest) ([]dto.AgentPerformanceDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	n := normalizeLimit(lim.Limit, defaultTopPerformers, maxTopPerformers)
	return topN(buildAgents(ds.jobs, ds.dir, true), n), nil
}

// Efficiency métricas de productividad del equipo comercial.
func (uc *AnalyticsUseCase) Efficiency(ctx context.Context, q dto.PeriodRequest) (*dto.EfficiencyDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	out := buildEfficiency(ds.jobs, ds.roles)
	return &out, nil
}

// Trends serie mensual ascendente.
func (uc *AnalyticsUseCase) Trends(ctx context.Context, q dto.PeriodRequest) ([]dto.TrendDTO, error) {
	jobs, err := uc.loadJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildTrends(jobs), nil
}

// PerformanceComparison mejores y peores N agentes más promedios globales.
func (uc *AnalyticsUseCase) PerformanceComparison(ctx context.Context, q dto.PeriodRequest, lim dto.LimitRequest) (*dto.PerformanceComparisonDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	n := normalizeLimit(lim.Limit, defaultComparison, maxComparison)
	out := buildComparison(buildAgents(ds.jobs, ds.dir, true), n)
	return &out, nil
}

// LeadROI porcentaje cobrado por fuente de lead.
func (uc *AnalyticsUseCase) LeadROI(ctx context.Context, q dto.PeriodRequest) ([]dto.LeadROIDTO, error) {
	jobs, err := uc.loadJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildLeadROI(jobs), nil
}

// TeamLeadMatrix cruce equipo × fuente de lead.
func (uc *AnalyticsUseCase) TeamLeadMatrix(ctx context.Context, q dto.PeriodRequest) ([]dto.TeamLeadCellDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildTeamLeadMatrix(ds.jobs, ds.dir), nil
}

// ProfitDistribution estadística descriptiva del profit por job.
func (uc *AnalyticsUseCase) ProfitDistribution(ctx context.Context, q dto.PeriodRequest) (*dto.ProfitDistributionDTO, error) {
	jobs, err := uc.loadJobs(ctx, q)
	if err != nil {
		return nil, err
	}
	out := buildDistribution(jobs)
	return &out, nil
}

// AgentSpecialization mejor fuente de lead de cada agente.
func (uc *AnalyticsUseCase) AgentSpecialization(ctx context.Context, q dto.PeriodRequest) ([]dto.AgentSpecializationDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildSpecialization(ds.jobs, ds.dir), nil
}

// PaymentCollection ranking de cobranza por agente.
func (uc *AnalyticsUseCase) PaymentCollection(ctx context.Context, q dto.PeriodRequest) ([]dto.PaymentCollectionDTO, error) {
	ds, err := uc.loadDataset(ctx, q)
	if err != nil {
		return nil, err
	}
	return buildPaymentCollection(ds.jobs, ds.dir), nil
}

// ── Constructores puros ───────────────────────────────────────────────────────

func buildSummary(jobs []entity.Job) dto.SummaryDTO {
	all := &bucket[struct{}]{}
	byStatus := make(map[string]int)
	for _, j := range jobs {
		all.add(j)
		status := j.Status
		if status == "" {
			status = "unknown"
		}
		byStatus[status]++
	}
	return dto.SummaryDTO{
		TotalProfit:     all.totalProfit(),
		TotalJobs:       all.jobs,
		AvgProfitPerJob: all.avgProfit(),
		PaidJobs:        all.paid,
		UnpaidJobs:      all.unpaid,
		PaidProfit:      all.paidAmount(),
		UnpaidProfit:    all.unpaidAmount(),
		PaymentRate:     all.paymentRate(),
		JobsByStatus:    byStatus,
	}
}

func buildTeams(jobs []entity.Job, dir entity.TeamDirectory) []dto.TeamPerformanceDTO {
	buckets := groupJobs(jobs, byTeam(dir))
	sortByProfitDesc(buckets)
	out := make([]dto.TeamPerformanceDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.TeamPerformanceDTO{
			Team:         b.key,
			TotalProfit:  b.totalProfit(),
			JobCount:     b.jobs,
			AvgProfit:    b.avgProfit(),
			PaidJobs:     b.paid,
			UnpaidJobs:   b.unpaid,
			PaidProfit:   b.paidAmount(),
			UnpaidProfit: b.unpaidAmount(),
			PaymentRate:  b.paymentRate(),
		})
	}
	return out
}

// buildAgents ranking de agentes por profit; ranked agrega la posición 1-based.
func buildAgents(jobs []entity.Job, dir entity.TeamDirectory, ranked bool) []dto.AgentPerformanceDTO {
	buckets := groupJobs(jobs, byAgent)
	sortByProfitDesc(buckets)
	out := make([]dto.AgentPerformanceDTO, 0, len(buckets))
	for i, b := range buckets {
		row := dto.AgentPerformanceDTO{
			Agent:        b.key,
			Team:         dir.TeamOf(b.key),
			TotalProfit:  b.totalProfit(),
			JobCount:     b.jobs,
			AvgProfit:    b.avgProfit(),
			PaidJobs:     b.paid,
			UnpaidJobs:   b.unpaid,
			PaidProfit:   b.paidAmount(),
			UnpaidProfit: b.unpaidAmount(),
			PaymentRate:  b.paymentRate(),
		}
		if ranked {
			row.Rank = i + 1
		}
		out = append(out, row)
	}
	return out
}

func topN(agents []dto.AgentPerformanceDTO, n int) []dto.AgentPerformanceDTO {
	if n < len(agents) {
		return agents[:n]
	}
	return agents
}

func buildLeadSources(jobs []entity.Job) []dto.LeadSourceDTO {
	buckets := groupJobs(jobs, byLead)
	sortByProfitDesc(buckets)
	out := make([]dto.LeadSourceDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.LeadSourceDTO{
			LeadSource:     b.key,
			TotalProfit:    b.totalProfit(),
			JobCount:       b.jobs,
			AvgProfit:      b.avgProfit(),
			PaidJobs:       b.paid,
			UnpaidJobs:     b.unpaid,
			PaidProfit:     b.paidAmount(),
			UnpaidProfit:   b.unpaidAmount(),
			PaymentRate:    b.paymentRate(),
			ConversionRate: stats.PercentOf(b.jobs, len(jobs)),
		})
	}
	return out
}

func buildOutreach(jobs []entity.Job) []dto.OutreachMethodDTO {
	leads := buildLeadSources(jobs)
	out := make([]dto.OutreachMethodDTO, 0, len(leads))
	for _, l := range leads {
		out = append(out, dto.OutreachMethodDTO{
			Method:         l.LeadSource,
			TotalProfit:    l.TotalProfit,
			JobCount:       l.JobCount,
			AvgProfit:      l.AvgProfit,
			ConversionRate: l.ConversionRate,
		})
	}
	return out
}

func buildEfficiency(jobs []entity.Job, roles []entity.Role) dto.EfficiencyDTO {
	all := &bucket[struct{}]{}
	completed := 0
	for _, j := range jobs {
		all.add(j)
		if completedStatuses[j.Status] {
			completed++
		}
	}
	active := len(groupJobs(jobs, byAgent))
	return dto.EfficiencyDTO{
		TotalAgents:     len(roles),
		ActiveAgents:    active,
		TotalJobs:       all.jobs,
		AvgJobsPerAgent: stats.Average(decimal.NewFromInt(int64(all.jobs)), len(roles)),
		AvgProfitPerJob: all.avgProfit(),
		CompletedJobs:   completed,
		CompletionRate:  stats.PercentOf(completed, all.jobs),
		PaymentRate:     all.paymentRate(),
	}
}

func buildTrends(jobs []entity.Job) []dto.TrendDTO {
	dated := make([]entity.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.HasTimestamp() {
			dated = append(dated, j)
		}
	}
	buckets := groupJobs(dated, byMonth)
	// YYYY-MM ordena lexicográficamente igual que cronológicamente.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })

	out := make([]dto.TrendDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.TrendDTO{
			Month:       b.key,
			TotalProfit: b.totalProfit(),
			JobCount:    b.jobs,
			AvgProfit:   b.avgProfit(),
			PaidJobs:    b.paid,
			UnpaidJobs:  b.unpaid,
			PaymentRate: b.paymentRate(),
		})
	}
	return out
}

// buildComparison recibe el ranking completo. Con menos de 2N agentes las listas se solapan.
func buildComparison(ranked []dto.AgentPerformanceDTO, n int) dto.PerformanceComparisonDTO {
	top := topN(ranked, n)

	start := len(ranked) - n
	if start < 0 {
		start = 0
	}
	bottom := make([]dto.AgentPerformanceDTO, 0, len(ranked)-start)
	for i := len(ranked) - 1; i >= start; i-- {
		bottom = append(bottom, ranked[i])
	}

	profit := decimal.Zero
	jobs := 0
	rates := make([]float64, 0, len(ranked))
	for _, a := range ranked {
		profit = profit.Add(decimal.NewFromFloat(a.TotalProfit))
		jobs += a.JobCount
		rates = append(rates, a.PaymentRate)
	}

	return dto.PerformanceComparisonDTO{
		TopPerformers:    top,
		BottomPerformers: bottom,
		AverageMetrics: dto.AverageMetricsDTO{
			AvgProfit:     stats.Average(profit, len(ranked)),
			AvgLeads:      stats.Average(decimal.NewFromInt(int64(jobs)), len(ranked)),
			AvgConversion: stats.Round2(stats.Mean(rates)),
		},
		TotalAgents: len(ranked),
	}
}

func buildLeadROI(jobs []entity.Job) []dto.LeadROIDTO {
	buckets := groupJobs(jobs, byLead)
	rows := make([]dto.LeadROIDTO, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, dto.LeadROIDTO{
			LeadSource:   b.key,
			TotalProfit:  b.totalProfit(),
			PaidProfit:   b.paidAmount(),
			UnpaidProfit: b.unpaidAmount(),
			JobCount:     b.jobs,
			PaidJobs:     b.paid,
			UnpaidJobs:   b.unpaid,
			AvgProfit:    b.avgProfit(),
			PaymentRate:  b.paymentRate(),
			ROI:          b.roi(),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ROI > rows[j].ROI })
	return rows
}

func buildTeamLeadMatrix(jobs []entity.Job, dir entity.TeamDirectory) []dto.TeamLeadCellDTO {
	buckets := groupJobs(jobs, byTeamLead(dir))
	sortByProfitDesc(buckets)
	// Segundo orden estable: agrupa por equipo sin perder el orden por profit.
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].key.team < buckets[j].key.team })

	out := make([]dto.TeamLeadCellDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.TeamLeadCellDTO{
			Team:        b.key.team,
			LeadSource:  b.key.lead,
			TotalProfit: b.totalProfit(),
			JobCount:    b.jobs,
			AvgProfit:   b.avgProfit(),
			PaidJobs:    b.paid,
			UnpaidJobs:  b.unpaid,
			PaymentRate: b.paymentRate(),
		})
	}
	return out
}

func buildDistribution(jobs []entity.Job) dto.ProfitDistributionDTO {
	values := make([]float64, 0, len(jobs))
	for _, j := range jobs {
		values = append(values, profitOf(j).InexactFloat64())
	}
	d := stats.Describe(values)
	return dto.ProfitDistributionDTO{
		Min:    d.Min,
		Max:    d.Max,
		Mean:   stats.Round2(d.Mean),
		Median: d.Median,
		StdDev: stats.Round2(d.StdDev),
		Quartiles: dto.QuartilesDTO{
			Q1: d.Q1,
			Q2: d.Q2,
			Q3: d.Q3,
		},
		Percentiles: dto.PercentilesDTO{
			P10: d.P10,
			P25: d.P25,
			P50: d.P50,
			P75: d.P75,
			P90: d.P90,
			P95: d.P95,
			P99: d.P99,
		},
		TotalJobs:   d.Count,
		TotalProfit: d.Total.InexactFloat64(),
	}
}

func buildSpecialization(jobs []entity.Job, dir entity.TeamDirectory) []dto.AgentSpecializationDTO {
	perAgent := make(map[string][]entity.Job)
	for _, j := range jobs {
		a := j.AgentOrUnknown()
		perAgent[a] = append(perAgent[a], j)
	}

	agents := groupJobs(jobs, byAgent)
	sortByProfitDesc(agents)

	out := make([]dto.AgentSpecializationDTO, 0, len(agents))
	for _, a := range agents {
		leads := groupJobs(perAgent[a.key], byLead)
		sortByProfitDesc(leads)

		shares := make([]dto.LeadShareDTO, 0, len(leads))
		for _, l := range leads {
			shares = append(shares, dto.LeadShareDTO{
				LeadSource:  l.key,
				TotalProfit: l.totalProfit(),
				JobCount:    l.jobs,
				AvgProfit:   l.avgProfit(),
				Percentage:  stats.Percent(l.total, a.total),
			})
		}

		// Todo agente agrupado tiene al menos un job, así que leads no está vacío.
		best := leads[0]
		out = append(out, dto.AgentSpecializationDTO{
			Agent:            a.key,
			Team:             dir.TeamOf(a.key),
			TotalProfit:      a.totalProfit(),
			JobCount:         a.jobs,
			BestLeadSource:   best.key,
			BestLeadProfit:   best.totalProfit(),
			BestLeadJobCount: best.jobs,
			AllLeadSources:   shares,
		})
	}
	return out
}

func buildPaymentCollection(jobs []entity.Job, dir entity.TeamDirectory) []dto.PaymentCollectionDTO {
	buckets := groupJobs(jobs, byAgent)
	// Comparación exacta de paid/jobs sin pasar por el redondeo.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].paid*buckets[j].jobs > buckets[j].paid*buckets[i].jobs
	})

	out := make([]dto.PaymentCollectionDTO, 0, len(buckets))
	for i, b := range buckets {
		out = append(out, dto.PaymentCollectionDTO{
			Rank:         i + 1,
			Agent:        b.key,
			Team:         dir.TeamOf(b.key),
			PaidProfit:   b.paidAmount(),
			UnpaidProfit: b.unpaidAmount(),
			PaidJobs:     b.paid,
			UnpaidJobs:   b.unpaid,
			JobCount:     b.jobs,
			PaymentRate:  b.paymentRate(),
		})
	}
	return out
}

// ── Listados crudos ───────────────────────────────────────────────────────────

// ListJobs devuelve los jobs normalizados, sin filtrar ni agregar.
func (uc *AnalyticsUseCase) ListJobs(ctx context.Context) ([]dto.JobDTO, error) {
	jobs, err := uc.jobs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobDTO(j))
	}
	return out, nil
}

// ListRoles devuelve las filas de roles normalizadas.
func (uc *AnalyticsUseCase) ListRoles(ctx context.Context) ([]dto.RoleDTO, error) {
	roles, err := uc.roles.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleDTO, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleDTO{ID: r.ID, Agent: r.Agent, Team: r.Team})
	}
	return out, nil
}

func toJobDTO(j entity.Job) dto.JobDTO {
	d := dto.JobDTO{
		ID:     j.ID,
		Agent:  j.Agent,
		Lead:   j.Lead,
		Profit: j.Profit,
		Status: j.Status,
	}
	if j.HasTimestamp() {
		ts := j.Timestamp.UTC()
		d.Timestamp = &ts
	}
	return d
}
