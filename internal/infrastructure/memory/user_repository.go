// Package memory adaptadores en memoria: los usuarios demo se declaran por
// configuración y no se persisten en MongoDB.
package memory

import (
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/sales-analytics-api/internal/domain/entity"
	"github.com/jhoicas/sales-analytics-api/pkg/config"
)

// UserRepository implementa repository.UserRepository sobre un mapa inmutable.
type UserRepository struct {
	users map[string]*entity.User
}

// NewUserRepository hashea cada password con bcrypt al construir; el texto plano
// no se conserva. Un username repetido conserva la primera declaración.
func NewUserRepository(creds []config.Credential, cost int) (*UserRepository, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	title := cases.Title(language.English)
	users := make(map[string]*entity.User, len(creds))
	for i, c := range creds {
		if _, dup := users[c.Username]; dup {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", c.Username, err)
		}
		users[c.Username] = &entity.User{
			ID:           strconv.Itoa(i + 1),
			Username:     c.Username,
			PasswordHash: string(hash),
			Name:         title.String(c.Username) + " User",
			Role:         roleFor(c),
		}
	}
	return &UserRepository{users: users}, nil
}

// FindByUsername devuelve una copia para que el llamador no altere el mapa.
func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// roleFor rol explícito; si no, "admin" solo para el usuario admin.
func roleFor(c config.Credential) string {
	if c.Role != "" {
		return c.Role
	}
	if c.Username == entity.RoleAdmin {
		return entity.RoleAdmin
	}
	return entity.RoleManager
}
