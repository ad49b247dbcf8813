package dto

// ErrorResponse cuerpo de error HTTP: {"error": "...", "code": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// PeriodRequest filtro opcional de fechas (YYYY-MM-DD, inclusivo) para los endpoints de analítica.
type PeriodRequest struct {
	Start string `query:"start" json:"start,omitempty"`
	End   string `query:"end" json:"end,omitempty"`
}

// LimitRequest parámetro ?limit= de rankings.
type LimitRequest struct {
	Limit string `query:"limit"` // string: valores no numéricos caen al default
}
