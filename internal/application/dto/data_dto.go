package dto

import "time"

// JobDTO registro de venta normalizado para GET /api/jobs.
type JobDTO struct {
	ID        string     `json:"id"`
	Agent     string     `json:"agent"`
	Lead      string     `json:"lead"`
	Profit    float64    `json:"profit"`
	Status    string     `json:"status"`
	Timestamp *time.Time `json:"timestamp,omitempty"` // nil si el documento no trae fecha
}

// RoleDTO fila agente → equipo para GET /api/roles.
type RoleDTO struct {
	ID    string `json:"id"`
	Agent string `json:"agent"`
	Team  string `json:"team"`
}

// HealthResponse respuesta de GET /api/health.
type HealthResponse struct {
	Status      string          `json:"status"`
	Service     string          `json:"service"`
	Timestamp   string          `json:"timestamp"`
	Collections map[string]bool `json:"collections"`
}
