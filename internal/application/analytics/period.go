package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/sales-analytics-api/internal/application/dto"
	"github.com/jhoicas/sales-analytics-api/internal/domain"
	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// period rango inclusivo opcional. Sin límites no filtra nada.
type period struct {
	start time.Time // zero = sin límite inferior
	end   time.Time // zero = sin límite superior
}

func (p period) bounded() bool { return !p.start.IsZero() || !p.end.IsZero() }

// contains con rango activo, los jobs sin fecha quedan fuera.
func (p period) contains(j entity.Job) bool {
	if !p.bounded() {
		return true
	}
	if !j.HasTimestamp() {
		return false
	}
	ts := j.Timestamp.UTC()
	if !p.start.IsZero() && ts.Before(p.start) {
		return false
	}
	if !p.end.IsZero() && ts.After(p.end) {
		return false
	}
	return true
}

func (p period) filter(jobs []entity.Job) []entity.Job {
	if !p.bounded() {
		return jobs
	}
	out := make([]entity.Job, 0, len(jobs))
	for _, j := range jobs {
		if p.contains(j) {
			out = append(out, j)
		}
	}
	return out
}

// parsePeriod convierte start/end (YYYY-MM-DD, UTC) en un rango; end es inclusivo hasta el final del día.
func parsePeriod(req dto.PeriodRequest) (period, error) {
	var p period
	var err error

	if s := strings.TrimSpace(req.Start); s != "" {
		p.start, err = time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return period{}, fmt.Errorf("%w: invalid start %q, expected YYYY-MM-DD", domain.ErrInvalidInput, s)
		}
	}
	if e := strings.TrimSpace(req.End); e != "" {
		end, err := time.ParseInLocation(dateLayout, e, time.UTC)
		if err != nil {
			return period{}, fmt.Errorf("%w: invalid end %q, expected YYYY-MM-DD", domain.ErrInvalidInput, e)
		}
		p.end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if !p.start.IsZero() && !p.end.IsZero() && p.start.After(p.end) {
		return period{}, fmt.Errorf("%w: start must not be after end", domain.ErrInvalidInput)
	}
	return p, nil
}

// normalizeLimit interpreta ?limit=; vacío, no numérico o <= 0 usa def, y se acota a maxN.
func normalizeLimit(raw string, def, maxN int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	if n > maxN {
		return maxN
	}
	return n
}
