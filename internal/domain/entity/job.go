package entity

import (
	"strings"
	"time"
)

// Estados de pago reconocidos para un Job.
const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// UnknownLabel etiqueta para agentes o fuentes de lead ausentes.
const UnknownLabel = "Unknown"

// Job una transacción de venta. Solo lectura desde la API.
type Job struct {
	ID        string
	Agent     string
	Lead      string    // fuente / canal de adquisición
	Profit    float64
	Status    string    // normalizado a minúsculas
	Timestamp time.Time // zero si el documento no trae fecha interpretable
}

// IsPaid indica si el job fue cobrado.
func (j Job) IsPaid() bool { return j.Status == StatusPaid }

// IsUnpaid indica si el job está pendiente de cobro.
func (j Job) IsUnpaid() bool { return j.Status == StatusUnpaid }

// HasTimestamp false cuando la fecha no pudo interpretarse.
func (j Job) HasTimestamp() bool { return !j.Timestamp.IsZero() }

// AgentOrUnknown devuelve el agente o "Unknown".
func (j Job) AgentOrUnknown() string { return orUnknown(j.Agent) }

// LeadOrUnknown devuelve la fuente de lead o "Unknown".
func (j Job) LeadOrUnknown() string { return orUnknown(j.Lead) }

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return UnknownLabel
	}
	return s
}
