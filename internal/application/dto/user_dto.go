package dto

import (
	"time"

	"github.com/jhoicas/stock-console/internal/application/session"
	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// LoginRequest body de POST /api/console/session/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse operador autenticado.
type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// SessionResponse estado de la sesión (nunca incluye el token).
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Loading       bool          `json:"loading"`
	User          *UserResponse `json:"user,omitempty"`
}

// UserFromEntity convierte la entidad.
func UserFromEntity(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Email: u.Email, IsActive: u.IsActive, CreatedAt: timeOrNil(u.CreatedAt)}
}

// SessionFromState convierte la foto del store.
func SessionFromState(s session.State) SessionResponse {
	return SessionResponse{Authenticated: s.Authenticated, Loading: s.Loading, User: UserFromEntity(s.User)}
}
