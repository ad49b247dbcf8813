package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/internal/domain/stats"
)

// bucket acumulador de un grupo de jobs. Todos los endpoints de analítica se
// construyen sobre este mismo primitivo; solo cambia la clave de agrupación.
type bucket[K comparable] struct {
	key          K
	total        decimal.Decimal
	paidProfit   decimal.Decimal
	unpaidProfit decimal.Decimal
	jobs         int
	paid         int
	unpaid       int
}

func (b *bucket[K]) add(j entity.Job) {
	p := profitOf(j)
	b.total = b.total.Add(p)
	b.jobs++
	switch {
	case j.IsPaid():
		b.paid++
		b.paidProfit = b.paidProfit.Add(p)
	case j.IsUnpaid():
		b.unpaid++
		b.unpaidProfit = b.unpaidProfit.Add(p)
	}
}

func (b *bucket[K]) totalProfit() float64  { return b.total.InexactFloat64() }
func (b *bucket[K]) paidAmount() float64   { return b.paidProfit.InexactFloat64() }
func (b *bucket[K]) unpaidAmount() float64 { return b.unpaidProfit.InexactFloat64() }
func (b *bucket[K]) avgProfit() float64    { return stats.Average(b.total, b.jobs) }
func (b *bucket[K]) paymentRate() float64  { return stats.PercentOf(b.paid, b.jobs) }

// roi paidProfit / totalProfit * 100.
func (b *bucket[K]) roi() float64 { return stats.Percent(b.paidProfit, b.total) }

// groupJobs agrupa por la clave indicada preservando el orden de primera aparición.
func groupJobs[K comparable](jobs []entity.Job, key func(entity.Job) K) []*bucket[K] {
	index := make(map[K]*bucket[K])
	var out []*bucket[K]
	for _, j := range jobs {
		k := key(j)
		b, ok := index[k]
		if !ok {
			b = &bucket[K]{key: k}
			index[k] = b
			out = append(out, b)
		}
		b.add(j)
	}
	return out
}

// sortByProfitDesc orden estable: en empate conserva el orden de aparición.
func sortByProfitDesc[K comparable](buckets []*bucket[K]) {
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].total.GreaterThan(buckets[j].total)
	})
}

// Claves de agrupación.

func byAgent(j entity.Job) string { return j.AgentOrUnknown() }

func byLead(j entity.Job) string { return j.LeadOrUnknown() }

func byMonth(j entity.Job) string { return j.Timestamp.UTC().Format("2006-01") }

func byTeam(dir entity.TeamDirectory) func(entity.Job) string {
	return func(j entity.Job) string { return dir.TeamOf(j.AgentOrUnknown()) }
}

type teamLead struct {
	team string
	lead string
}

func byTeamLead(dir entity.TeamDirectory) func(entity.Job) teamLead {
	return func(j entity.Job) teamLead {
		return teamLead{team: dir.TeamOf(j.AgentOrUnknown()), lead: j.LeadOrUnknown()}
	}
}

// profitOf convierte el profit a decimal; valores no finitos cuentan como 0.
func profitOf(j entity.Job) decimal.Decimal {
	if math.IsNaN(j.Profit) || math.IsInf(j.Profit, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(j.Profit)
}
