package repository

import "github.com/jhoicas/sales-analytics-api/internal/domain/entity"

// UserRepository define el puerto de lectura de usuarios demo (DIP).
type UserRepository interface {
	// FindByUsername devuelve (nil, nil) si el usuario no existe.
	FindByUsername(username string) (*entity.User, error)
}
