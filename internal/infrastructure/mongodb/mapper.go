package mongodb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
)

// Nombres de campo aceptados, en orden de preferencia. Los datos de origen
// no usan una convención única.
var (
	agentFields     = []string{"agent", "agentName", "agent_name", "agentId", "agent_id"}
	leadFields      = []string{"lead", "leadSource", "lead_source", "outreachMethod", "outreach_method"}
	teamFields      = []string{"team", "department"}
	profitFields    = []string{"profit"}
	statusFields    = []string{"status"}
	timestampFields = []string{"timestamp", "date", "createdAt", "created_at"}
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func toJob(doc bson.M) entity.Job {
	return entity.Job{
		ID:        idString(doc["_id"]),
		Agent:     firstString(doc, agentFields),
		Lead:      firstString(doc, leadFields),
		Profit:    toFloat(first(doc, profitFields)),
		Status:    strings.ToLower(strings.TrimSpace(firstString(doc, statusFields))),
		Timestamp: toTime(first(doc, timestampFields)),
	}
}

func toRole(doc bson.M) entity.Role {
	return entity.Role{
		ID:    idString(doc["_id"]),
		Agent: firstString(doc, agentFields),
		Team:  firstString(doc, teamFields),
	}
}

// first primer campo presente y no nulo.
func first(doc bson.M, fields []string) interface{} {
	for _, f := range fields {
		if v, ok := doc[f]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstString(doc bson.M, fields []string) string {
	for _, f := range fields {
		if s := toString(doc[f]); s != "" {
			return s
		}
	}
	return ""
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case primitive.ObjectID:
		return t.Hex()
	case int32, int64, float64, bool:
		return fmt.Sprint(t)
	default:
		return ""
	}
}

func idString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// toFloat números BSON o strings numéricos; lo demás (y NaN/Inf) cuenta como 0.
func toFloat(v interface{}) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int:
		f = float64(t)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(t, ",", "")), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toTime fechas BSON, strings en los formatos conocidos o epoch en milisegundos.
// Zero time si no se puede interpretar.
func toTime(v interface{}) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case int64:
		return time.UnixMilli(t).UTC()
	case int32:
		return time.UnixMilli(int64(t)).UTC()
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}
		}
		return time.UnixMilli(int64(t)).UTC()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC()
			}
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}
