package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrCollectionUnavailable = errors.New("collection unavailable")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidInput          = errors.New("invalid input")
)

// CollectionError colección de MongoDB aún no resuelta. Es ErrCollectionUnavailable
// para errors.Is y su mensaje es el que recibe el cliente en la respuesta 503.
type CollectionError struct {
	Collection string
}

func (e *CollectionError) Error() string {
	return e.Collection + " collection not found"
}

// Is permite errors.Is(err, ErrCollectionUnavailable).
func (e *CollectionError) Is(target error) bool {
	return target == ErrCollectionUnavailable
}
