// Package stats estadística descriptiva sobre montos (servicio de dominio puro).
package stats

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 redondea a 2 decimales con semántica decimal (half away from zero).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent devuelve part/total*100 redondeado a 2 decimales; 0 si total es 0.
func Percent(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(hundred).Round(2).InexactFloat64()
}

// PercentOf versión entera de Percent (conteos).
func PercentOf(part, total int) float64 {
	return Percent(decimal.NewFromInt(int64(part)), decimal.NewFromInt(int64(total)))
}

// Average total/count redondeado a 2 decimales; 0 si count es 0.
func Average(total decimal.Decimal, count int) float64 {
	if count == 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2).InexactFloat64()
}

// Percentile método nearest-rank sobre valores YA ordenados ascendentemente:
// índice = ceil(n·p/100) − 1, acotado a [0, n−1]. Sin interpolación.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(float64(n)*p/100)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// Sum suma exacta de los valores.
func Sum(values []float64) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total
}

// Mean media aritmética; 0 para un slice vacío.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values).Div(decimal.NewFromInt(int64(len(values)))).InexactFloat64()
}

// StdDev desviación estándar poblacional (divide entre n, no n−1).
func StdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	mean := Mean(values)
	var acc float64
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(n))
}

// Distribution resumen de una distribución de montos.
type Distribution struct {
	Count  int
	Total  decimal.Decimal
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
	Q1     float64
	Q2     float64
	Q3     float64
	P10    float64
	P25    float64
	P50    float64
	P75    float64
	P90    float64
	P95    float64
	P99    float64
}

// Describe calcula la distribución. No modifica values.
func Describe(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{Total: decimal.Zero}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Distribution{
		Count:  len(sorted),
		Total:  Sum(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   Mean(sorted),
		Median: Percentile(sorted, 50),
		StdDev: StdDev(sorted),
		Q1:     Percentile(sorted, 25),
		Q2:     Percentile(sorted, 50),
		Q3:     Percentile(sorted, 75),
		P10:    Percentile(sorted, 10),
		P25:    Percentile(sorted, 25),
		P50:    Percentile(sorted, 50),
		P75:    Percentile(sorted, 75),
		P90:    Percentile(sorted, 90),
		P95:    Percentile(sorted, 95),
		P99:    Percentile(sorted, 99),
	}
}
