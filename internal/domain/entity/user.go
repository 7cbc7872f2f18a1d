package entity

import "time"

// User operador autenticado. Se vuelve a pedir al backend en cada sesión; nunca se persiste.
type User struct {
	ID        string
	Email     string
	IsActive  bool
	CreatedAt time.Time
}
