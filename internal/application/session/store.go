// Package session mantiene la sesión del operador contra el backend: token,
// usuario actual y el desmontaje global cuando el backend responde 401.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/domain/repository"
	"github.com/jhoicas/stock-console/pkg/jwt"
	"github.com/jhoicas/stock-console/pkg/logger"
	"github.com/jhoicas/stock-console/pkg/metrics"
)

// State vista de la sesión para la UI. Nunca incluye el token.
type State struct {
	Authenticated bool
	Loading       bool
	User          *entity.User
}

// Store dueño único del token y del usuario actual.
// Solo el token se persiste; el usuario se vuelve a pedir en cada arranque.
type Store struct {
	auth   repository.AuthRepository
	tokens repository.TokenRepository
	log    *logger.Logger
	now    func() time.Time

	mu      sync.RWMutex
	token   string
	user    *entity.User
	loading bool
	onEnd   []func()
}

// NewStore construye el store vacío. Llamar Restore para recuperar un token persistido.
func NewStore(auth repository.AuthRepository, tokens repository.TokenRepository, log *logger.Logger) *Store {
	return &Store{
		auth:   auth,
		tokens: tokens,
		log:    log.Named("session"),
		now:    time.Now,
	}
}

// OnEnd registra un callback que corre después de cada logout (cerrar diálogos, limpiar vistas).
func (s *Store) OnEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = append(s.onEnd, fn)
}

// Token implementa stockapi.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Snapshot estado actual.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Authenticated: s.token != "" && s.user != nil, Loading: s.loading}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// Authenticated hay token y usuario cargado.
func (s *Store) Authenticated() bool {
	return s.Snapshot().Authenticated
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Login intercambia credenciales por un token, lo persiste y carga el usuario.
// Si el intercambio falla no se guarda nada y el error se propaga.
// Si luego falla la carga del usuario, la sesión queda cerrada y se devuelve ese error.
func (s *Store) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("session: email y contraseña requeridos: %w", domain.ErrInvalidInput)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		metrics.SessionEvents.WithLabelValues("login_failed").Inc()
		s.log.Info().Err(err).Str("email", email).Msg("login rechazado")
		return fmt.Errorf("session: login: %w", err)
	}
	if err := s.tokens.Save(ctx, token); err != nil {
		metrics.SessionEvents.WithLabelValues("login_failed").Inc()
		return fmt.Errorf("session: persistir token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.user = nil
	s.mu.Unlock()

	if err := s.FetchCurrentUser(ctx); err != nil {
		return err
	}
	metrics.SessionEvents.WithLabelValues("login").Inc()
	s.log.Info().Str("email", email).Msg("sesión iniciada")
	return nil
}

// FetchCurrentUser pide /auth/me con el token vigente. Cualquier fallo cierra la sesión.
func (s *Store) FetchCurrentUser(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		_ = s.Logout(ctx)
		return fmt.Errorf("session: usuario actual: %w", domain.ErrNotAuthenticated)
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudo cargar el usuario, cerrando sesión")
		_ = s.Logout(ctx)
		return fmt.Errorf("session: usuario actual: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		// La sesión cambió mientras se esperaba la respuesta.
		return fmt.Errorf("session: usuario actual: %w", domain.ErrNotAuthenticated)
	}
	s.user = user
	return nil
}

// Logout borra token y usuario, en memoria y persistidos. Idempotente.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	had := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	hooks := append([]func(){}, s.onEnd...)
	s.mu.Unlock()

	if had {
		metrics.SessionEvents.WithLabelValues("logout").Inc()
		s.log.Info().Msg("sesión cerrada")
		for _, fn := range hooks {
			fn()
		}
	}
	if err := s.tokens.Delete(ctx); err != nil {
		s.log.Error().Err(err).Msg("borrar token persistido")
		return fmt.Errorf("session: logout: %w", err)
	}
	return nil
}

// Teardown desmontaje global ante un 401 de cualquier llamada.
func (s *Store) Teardown() {
	metrics.SessionEvents.WithLabelValues("teardown").Inc()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.Logout(ctx)
}

// Restore recupera el token persistido al arrancar. Un JWT ya vencido se descarta
// sin llamar al backend; cualquier otro token se valida pidiendo el usuario.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("session: restaurar: %w", err)
	}
	if token == "" {
		return nil
	}

	if claims, err := jwt.Inspect(token); err == nil && claims.Expired(s.now()) {
		s.log.Info().Time("exp", claims.ExpiresAt.Time).Msg("token persistido vencido, se descarta")
		return s.Logout(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	metrics.SessionEvents.WithLabelValues("restore").Inc()
	return s.FetchCurrentUser(ctx)
}
