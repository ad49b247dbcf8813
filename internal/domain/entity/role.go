package entity

// UnassignedTeam equipo de los agentes sin fila en la colección de roles.
const UnassignedTeam = "Unassigned"

// Role asigna un agente a un equipo/departamento.
type Role struct {
	ID    string
	Agent string
	Team  string
}

// TeamOrUnknown devuelve el equipo o "Unknown" si la fila no lo trae.
func (r Role) TeamOrUnknown() string { return orUnknown(r.Team) }

// TeamDirectory agente → equipo. Si un agente aparece dos veces gana la última fila.
type TeamDirectory map[string]string

// NewTeamDirectory construye el directorio a partir de los roles leídos.
func NewTeamDirectory(roles []Role) TeamDirectory {
	dir := make(TeamDirectory, len(roles))
	for _, r := range roles {
		dir[r.Agent] = r.TeamOrUnknown()
	}
	return dir
}

// TeamOf devuelve el equipo del agente o "Unassigned".
func (d TeamDirectory) TeamOf(agent string) string {
	if team, ok := d[agent]; ok {
		return team
	}
	return UnassignedTeam
}
