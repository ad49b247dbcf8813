package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-analytics-api/internal/application/analytics"
	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes y fixture
// ──────────────────────────────────────────────────────────────────────────────

type fakeJobRepo struct {
	jobs []entity.Job
	err  error
}

func (f *fakeJobRepo) FindAll(context.Context) ([]entity.Job, error) { return f.jobs, f.err }

type fakeRoleRepo struct {
	roles []entity.Role
	err   error
}

func (f *fakeRoleRepo) FindAll(context.Context) ([]entity.Role, error) { return f.roles, f.err }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// fixtureJobs: 6 jobs, 4 agentes (uno vacío), 4 fuentes (una vacía), un job sin fecha.
func fixtureJobs() []entity.Job {
	return []entity.Job{
		{ID: "1", Agent: "Ana", Lead: "Referral", Profit: 1000, Status: "paid", Timestamp: day("2024-01-15")},
		{ID: "2", Agent: "Ana", Lead: "Cold Call", Profit: 250.5, Status: "unpaid", Timestamp: day("2024-01-20")},
		{ID: "3", Agent: "Luis", Lead: "Referral", Profit: 500, Status: "paid", Timestamp: day("2024-02-03")},
		{ID: "4", Agent: "Luis", Lead: "Web", Profit: 300, Status: "unpaid", Timestamp: day("2024-02-10")},
		{ID: "5", Agent: "Marta", Lead: "Web", Profit: 100, Status: "paid", Timestamp: day("2024-03-01")},
		{ID: "6", Profit: 50},
	}
}

func fixtureRoles() []entity.Role {
	return []entity.Role{
		{ID: "r1", Agent: "Ana", Team: "North"},
		{ID: "r2", Agent: "Luis", Team: "East"},
		{ID: "r3", Agent: "Luis", Team: "South"}, // la última fila gana
		{ID: "r4", Agent: "Marta", Team: ""},
	}
}

func newUseCase() *analytics.AnalyticsUseCase {
	return analytics.NewAnalyticsUseCase(
		&fakeJobRepo{jobs: fixtureJobs()},
		&fakeRoleRepo{roles: fixtureRoles()},
	)
}

var noPeriod = dto.PeriodRequest{}

// ──────────────────────────────────────────────────────────────────────────────
// Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_TotalesYTasaDePago(t *testing.T) {
	out, err := newUseCase().Summary(context.Background(), noPeriod)
	require.NoError(t, err)

	assert.InDelta(t, 2200.5, out.TotalProfit, 1e-9)
	assert.Equal(t, 6, out.TotalJobs)
	assert.InDelta(t, 366.75, out.AvgProfitPerJob, 1e-9)
	assert.Equal(t, 3, out.PaidJobs)
	assert.Equal(t, 2, out.UnpaidJobs)
	assert.InDelta(t, 1600.0, out.PaidProfit, 1e-9)
	assert.InDelta(t, 550.5, out.UnpaidProfit, 1e-9)
	assert.InDelta(t, 50.0, out.PaymentRate, 1e-9)
	assert.Equal(t, map[string]int{"paid": 3, "unpaid": 2, "unknown": 1}, out.JobsByStatus)
}

func TestSummary_SumaExactaDeCentavos(t *testing.T) {
	jobs := make([]entity.Job, 10)
	for i := range jobs {
		jobs[i] = entity.Job{Agent: "A", Profit: 0.1, Status: "paid"}
	}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.Summary(context.Background(), noPeriod)
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.TotalProfit)
	assert.Equal(t, 100.0, out.PaymentRate)
}

func TestSummary_SinJobs(t *testing.T) {
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{}, &fakeRoleRepo{})

	out, err := uc.Summary(context.Background(), noPeriod)
	require.NoError(t, err)
	assert.Zero(t, out.TotalProfit)
	assert.Zero(t, out.AvgProfitPerJob)
	assert.Zero(t, out.PaymentRate)
	assert.Empty(t, out.JobsByStatus)
}

func TestSummary_FiltroPorPeriodo(t *testing.T) {
	out, err := newUseCase().Summary(context.Background(), dto.PeriodRequest{Start: "2024-02-01", End: "2024-02-29"})
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalJobs)
	assert.InDelta(t, 800.0, out.TotalProfit, 1e-9)
}

func TestSummary_EndEsInclusivo(t *testing.T) {
	out, err := newUseCase().Summary(context.Background(), dto.PeriodRequest{End: "2024-01-15"})
	require.NoError(t, err)

	// Solo el job del 15 de enero; el job sin fecha queda fuera con rango activo.
	assert.Equal(t, 1, out.TotalJobs)
}

func TestSummary_PeriodoInvalido(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Summary(context.Background(), dto.PeriodRequest{Start: "2024-13-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Summary(context.Background(), dto.PeriodRequest{Start: "2024-03-01", End: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Agrupaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitByTeam_OrdenYEquiposEspeciales(t *testing.T) {
	out, err := newUseCase().ProfitByTeam(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "North", out[0].Team)
	assert.InDelta(t, 1250.5, out[0].TotalProfit, 1e-9)
	assert.Equal(t, "South", out[1].Team)
	assert.Equal(t, entity.UnknownLabel, out[2].Team) // fila de rol sin equipo
	assert.Equal(t, entity.UnassignedTeam, out[3].Team)
}

func TestProfitByAgent_TotalesCoincidenConLaSuma(t *testing.T) {
	out, err := newUseCase().ProfitByAgent(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 4)

	var sum float64
	for _, a := range out {
		sum += a.TotalProfit
		assert.Zero(t, a.Rank, "profit-by-agent no lleva rank")
	}
	assert.InDelta(t, 2200.5, sum, 1e-9)

	assert.Equal(t, "Ana", out[0].Agent)
	assert.Equal(t, "North", out[0].Team)
	assert.Equal(t, 2, out[0].JobCount)
	assert.InDelta(t, 625.25, out[0].AvgProfit, 1e-9)
	assert.InDelta(t, 50.0, out[0].PaymentRate, 1e-9)
	assert.Equal(t, entity.UnknownLabel, out[3].Agent)
	assert.Equal(t, entity.UnassignedTeam, out[3].Team)
}

func TestProfitByAgent_EmpateConservaOrdenDeAparicion(t *testing.T) {
	jobs := []entity.Job{
		{Agent: "Zoe", Profit: 100},
		{Agent: "Bob", Profit: 100},
		{Agent: "Al", Profit: 100},
	}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.ProfitByAgent(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"Zoe", "Bob", "Al"}, []string{out[0].Agent, out[1].Agent, out[2].Agent})
}

func TestProfitByLead_ConversionRate(t *testing.T) {
	out, err := newUseCase().ProfitByLead(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "Referral", out[0].LeadSource)
	assert.InDelta(t, 1500.0, out[0].TotalProfit, 1e-9)
	assert.Equal(t, 2, out[0].PaidJobs)
	assert.InDelta(t, 100.0, out[0].PaymentRate, 1e-9)
	assert.InDelta(t, 33.33, out[0].ConversionRate, 1e-9)
	assert.Equal(t, "Web", out[1].LeadSource)
	assert.Equal(t, "Cold Call", out[2].LeadSource)
	assert.InDelta(t, 16.67, out[2].ConversionRate, 1e-9)
}

func TestProfitByOutreach_MismosValoresQueLead(t *testing.T) {
	uc := newUseCase()
	leads, err := uc.ProfitByLead(context.Background(), noPeriod)
	require.NoError(t, err)
	methods, err := uc.ProfitByOutreach(context.Background(), noPeriod)
	require.NoError(t, err)

	require.Len(t, methods, len(leads))
	for i := range leads {
		assert.Equal(t, leads[i].LeadSource, methods[i].Method)
		assert.Equal(t, leads[i].TotalProfit, methods[i].TotalProfit)
		assert.Equal(t, leads[i].ConversionRate, methods[i].ConversionRate)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rankings
// ──────────────────────────────────────────────────────────────────────────────

func TestTopPerformers_Limite(t *testing.T) {
	uc := newUseCase()

	out, err := uc.TopPerformers(context.Background(), noPeriod, dto.LimitRequest{Limit: "2"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, "Ana", out[0].Agent)
	assert.Equal(t, 2, out[1].Rank)
	assert.Equal(t, "Luis", out[1].Agent)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		out, err = uc.TopPerformers(context.Background(), noPeriod, dto.LimitRequest{Limit: raw})
		require.NoError(t, err)
		assert.Len(t, out, 4, "limit %q usa el default", raw)
	}
}

func TestPerformanceComparison(t *testing.T) {
	out, err := newUseCase().PerformanceComparison(context.Background(), noPeriod, dto.LimitRequest{Limit: "1"})
	require.NoError(t, err)

	require.Len(t, out.TopPerformers, 1)
	assert.Equal(t, "Ana", out.TopPerformers[0].Agent)
	require.Len(t, out.BottomPerformers, 1)
	assert.Equal(t, entity.UnknownLabel, out.BottomPerformers[0].Agent)
	assert.Equal(t, 4, out.BottomPerformers[0].Rank)

	assert.Equal(t, 4, out.TotalAgents)
	assert.InDelta(t, 550.13, out.AverageMetrics.AvgProfit, 1e-9)
	assert.InDelta(t, 1.5, out.AverageMetrics.AvgLeads, 1e-9)
	assert.InDelta(t, 50.0, out.AverageMetrics.AvgConversion, 1e-9)
}

func TestPerformanceComparison_BottomPeorPrimero(t *testing.T) {
	out, err := newUseCase().PerformanceComparison(context.Background(), noPeriod, dto.LimitRequest{})
	require.NoError(t, err)

	require.Len(t, out.BottomPerformers, 4)
	assert.Equal(t, []int{4, 3, 2, 1}, []int{
		out.BottomPerformers[0].Rank,
		out.BottomPerformers[1].Rank,
		out.BottomPerformers[2].Rank,
		out.BottomPerformers[3].Rank,
	})
}

func TestPaymentCollection_OrdenPorTasa(t *testing.T) {
	out, err := newUseCase().PaymentCollection(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "Marta", out[0].Agent)
	assert.InDelta(t, 100.0, out[0].PaymentRate, 1e-9)
	// Ana y Luis empatan en 50%: se respeta el orden de aparición.
	assert.Equal(t, "Ana", out[1].Agent)
	assert.Equal(t, "Luis", out[2].Agent)
	assert.Equal(t, entity.UnknownLabel, out[3].Agent)
	for i, row := range out {
		assert.Equal(t, i+1, row.Rank)
	}
	assert.InDelta(t, 250.5, out[1].UnpaidProfit, 1e-9)
}

// ──────────────────────────────────────────────────────────────────────────────
// Efficiency, trends, ROI, matriz
// ──────────────────────────────────────────────────────────────────────────────

func TestEfficiency(t *testing.T) {
	jobs := append(fixtureJobs(), entity.Job{Agent: "Marta", Lead: "Web", Profit: 20, Status: "won"})
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{roles: fixtureRoles()})

	out, err := uc.Efficiency(context.Background(), noPeriod)
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalAgents)
	assert.Equal(t, 4, out.ActiveAgents)
	assert.Equal(t, 7, out.TotalJobs)
	assert.InDelta(t, 1.75, out.AvgJobsPerAgent, 1e-9)
	assert.Equal(t, 4, out.CompletedJobs)
	assert.InDelta(t, 57.14, out.CompletionRate, 1e-9)
	assert.InDelta(t, 42.86, out.PaymentRate, 1e-9)
}

func TestEfficiency_SinRoles(t *testing.T) {
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: fixtureJobs()}, &fakeRoleRepo{})

	out, err := uc.Efficiency(context.Background(), noPeriod)
	require.NoError(t, err)
	assert.Zero(t, out.TotalAgents)
	assert.Zero(t, out.AvgJobsPerAgent)
}

func TestTrends_MesesAscendentes(t *testing.T) {
	jobs := []entity.Job{
		{Agent: "A", Profit: 10, Timestamp: day("2024-03-05")},
		{Agent: "A", Profit: 20, Status: "paid", Timestamp: day("2024-01-05")},
		{Agent: "A", Profit: 30, Timestamp: day("2024-03-28")},
		{Agent: "A", Profit: 99},
	}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.Trends(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "2024-01", out[0].Month)
	assert.InDelta(t, 100.0, out[0].PaymentRate, 1e-9)
	assert.Equal(t, "2024-03", out[1].Month)
	assert.Equal(t, 2, out[1].JobCount)
	assert.InDelta(t, 40.0, out[1].TotalProfit, 1e-9)
	assert.InDelta(t, 20.0, out[1].AvgProfit, 1e-9)
}

func TestLeadROI_OrdenPorROI(t *testing.T) {
	out, err := newUseCase().LeadROI(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, "Referral", out[0].LeadSource)
	assert.InDelta(t, 100.0, out[0].ROI, 1e-9)
	assert.Equal(t, "Web", out[1].LeadSource)
	assert.InDelta(t, 25.0, out[1].ROI, 1e-9)
	// Empate en 0: primero el que apareció antes.
	assert.Equal(t, "Cold Call", out[2].LeadSource)
	assert.Equal(t, entity.UnknownLabel, out[3].LeadSource)
}

func TestLeadROI_ProfitCeroNoDivide(t *testing.T) {
	jobs := []entity.Job{{Agent: "A", Lead: "Zero", Profit: 0, Status: "paid"}}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.LeadROI(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].ROI)
}

func TestTeamLeadMatrix_OrdenEquipoLuegoProfit(t *testing.T) {
	out, err := newUseCase().TeamLeadMatrix(context.Background(), noPeriod)
	require.NoError(t, err)

	got := make([][2]string, 0, len(out))
	for _, c := range out {
		got = append(got, [2]string{c.Team, c.LeadSource})
	}
	assert.Equal(t, [][2]string{
		{"North", "Referral"},
		{"North", "Cold Call"},
		{"South", "Referral"},
		{"South", "Web"},
		{"Unassigned", "Unknown"},
		{"Unknown", "Web"},
	}, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Distribución y especialización
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitDistribution(t *testing.T) {
	out, err := newUseCase().ProfitDistribution(context.Background(), noPeriod)
	require.NoError(t, err)

	assert.Equal(t, 6, out.TotalJobs)
	assert.InDelta(t, 2200.5, out.TotalProfit, 1e-9)
	assert.Equal(t, 50.0, out.Min)
	assert.Equal(t, 1000.0, out.Max)
	assert.InDelta(t, 366.75, out.Mean, 1e-9)
	// n=6 par: nearest-rank toma el índice ceil(3)-1 = 2, sin interpolar.
	assert.Equal(t, 250.5, out.Median)
	assert.Equal(t, out.Median, out.Quartiles.Q2)
	assert.Equal(t, 100.0, out.Quartiles.Q1)
	assert.Equal(t, 500.0, out.Quartiles.Q3)
	assert.Equal(t, 50.0, out.Percentiles.P10)
	assert.Equal(t, 1000.0, out.Percentiles.P99)
}

func TestProfitDistribution_MedianaImpar(t *testing.T) {
	jobs := []entity.Job{{Profit: 30}, {Profit: 10}, {Profit: 20}}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.ProfitDistribution(context.Background(), noPeriod)
	require.NoError(t, err)
	assert.Equal(t, 20.0, out.Median)
}

func TestProfitDistribution_Vacia(t *testing.T) {
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{}, &fakeRoleRepo{})

	out, err := uc.ProfitDistribution(context.Background(), noPeriod)
	require.NoError(t, err)
	assert.Equal(t, dto.ProfitDistributionDTO{}, *out)
}

func TestAgentSpecialization_EligeLaFuenteMasRentable(t *testing.T) {
	jobs := []entity.Job{
		{Agent: "Ana", Lead: "Web", Profit: 100},
		{Agent: "Ana", Lead: "Referral", Profit: 300},
		{Agent: "Ana", Lead: "Web", Profit: 150},
	}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{roles: []entity.Role{{Agent: "Ana", Team: "North"}}})

	out, err := uc.AgentSpecialization(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 1)

	a := out[0]
	assert.Equal(t, "North", a.Team)
	assert.Equal(t, "Referral", a.BestLeadSource)
	assert.InDelta(t, 300.0, a.BestLeadProfit, 1e-9)
	assert.Equal(t, 1, a.BestLeadJobCount)
	require.Len(t, a.AllLeadSources, 2)
	assert.InDelta(t, 54.55, a.AllLeadSources[0].Percentage, 1e-9)
	assert.Equal(t, "Web", a.AllLeadSources[1].LeadSource)
	assert.Equal(t, 2, a.AllLeadSources[1].JobCount)
	assert.InDelta(t, 45.45, a.AllLeadSources[1].Percentage, 1e-9)
}

func TestAgentSpecialization_EmpateGanaLaPrimera(t *testing.T) {
	jobs := []entity.Job{
		{Agent: "Ana", Lead: "Web", Profit: 200},
		{Agent: "Ana", Lead: "Referral", Profit: 200},
	}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.AgentSpecialization(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Web", out[0].BestLeadSource)
	assert.Equal(t, entity.UnassignedTeam, out[0].Team)
}

func TestAgentSpecialization_ProfitCeroSinPorcentaje(t *testing.T) {
	jobs := []entity.Job{{Agent: "Ana", Lead: "Web", Profit: 0}}
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{jobs: jobs}, &fakeRoleRepo{})

	out, err := uc.AgentSpecialization(context.Background(), noPeriod)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].AllLeadSources[0].Percentage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores y listados
// ──────────────────────────────────────────────────────────────────────────────

func TestColeccionNoResuelta_SePropaga(t *testing.T) {
	uc := analytics.NewAnalyticsUseCase(
		&fakeJobRepo{jobs: fixtureJobs()},
		&fakeRoleRepo{err: &domain.CollectionError{Collection: "dummy_roles"}},
	)

	_, err := uc.ProfitByTeam(context.Background(), noPeriod)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCollectionUnavailable)

	var ce *domain.CollectionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "dummy_roles collection not found", ce.Error())

	// Los endpoints que solo leen jobs no dependen de roles.
	_, err = uc.Summary(context.Background(), noPeriod)
	assert.NoError(t, err)
}

func TestErrorDelRepositorio_SeDevuelveTalCual(t *testing.T) {
	boom := errors.New("connection reset")
	uc := analytics.NewAnalyticsUseCase(&fakeJobRepo{err: boom}, &fakeRoleRepo{})

	_, err := uc.Trends(context.Background(), noPeriod)
	assert.ErrorIs(t, err, boom)
}

func TestListJobs_Normaliza(t *testing.T) {
	out, err := newUseCase().ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 6)

	require.NotNil(t, out[0].Timestamp)
	assert.Equal(t, day("2024-01-15"), *out[0].Timestamp)
	assert.Nil(t, out[5].Timestamp)
	assert.Equal(t, "", out[5].Agent)
}

func TestListRoles(t *testing.T) {
	out, err := newUseCase().ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, dto.RoleDTO{ID: "r1", Agent: "Ana", Team: "North"}, out[0])
}
