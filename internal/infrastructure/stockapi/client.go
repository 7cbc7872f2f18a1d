// Package stockapi es el adaptador HTTP hacia el backend de almacén: inyecta el
// bearer token, clasifica los errores y desmonta la sesión ante un 401.
package stockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/pkg/i18n"
	"github.com/jhoicas/stock-console/pkg/logger"
	"github.com/jhoicas/stock-console/pkg/metrics"
)

const maxBodyBytes = 1 << 20

// Config del cliente.
type Config struct {
	BaseURL    string        // http://backend:8000
	PathPrefix string        // /api
	Timeout    time.Duration // timeout único para todas las llamadas
}

// TokenSource entrega el token vigente; "" si no hay sesión.
type TokenSource interface {
	Token() string
}

// Client cliente HTTP compartido por todos los repositorios remotos.
type Client struct {
	baseURL    string
	httpClient *http.Client
	notifier   ports.Notifier
	texts      *i18n.Catalog
	log        *logger.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func()
}

// NewClient construye el cliente. La sesión se enlaza después con BindSession.
func NewClient(cfg Config, notifier ports.Notifier, texts *i18n.Catalog, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if texts == nil {
		texts = i18n.New("")
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.PathPrefix, "/"),
		httpClient: &http.Client{Timeout: timeout},
		notifier:   notifier,
		texts:      texts,
		log:        log.Named("stockapi"),
	}
}

// BindSession enlaza la fuente del token y el desmontaje global ante un 401.
func (c *Client) BindSession(tokens TokenSource, onUnauthorized func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = tokens
	c.onUnauthorized = onUnauthorized
}

func (c *Client) session() (TokenSource, func()) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens, c.onUnauthorized
}

// ── Errores ───────────────────────────────────────────────────────────────────

// APIError error de una llamada al backend. Kind es uno de los sentinels de domain.
type APIError struct {
	Op     string
	Status int // 0 si no hubo respuesta
	Detail string
	Kind   error
	Cause  error
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("stockapi: ")
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *APIError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// BackendDetail implementa domain.Detailer.
func (e *APIError) BackendDetail() string { return e.Detail }

// DetailOf devuelve el detalle del backend si err es un *APIError.
func DetailOf(err error) string {
	return domain.DetailOf(err)
}

// ── Petición ──────────────────────────────────────────────────────────────────

type request struct {
	resource string // etiqueta para métricas y logs
	method   string
	path     string
	query    url.Values
	body     any
	auth     bool
}

func (r request) op() string {
	return r.method + " " + r.path
}

// do ejecuta la petición y decodifica la respuesta 2xx en out (puede ser nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	tokens, onUnauthorized := c.session()

	var token string
	if r.auth {
		if tokens != nil {
			token = tokens.Token()
		}
		if token == "" {
			return fmt.Errorf("stockapi: %s: %w", r.op(), domain.ErrNotAuthenticated)
		}
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("stockapi: serializar %s: %w", r.op(), err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return fmt.Errorf("stockapi: crear request %s: %w", r.op(), err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.BackendDuration.WithLabelValues(r.resource).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			// Cancelación propia (búsqueda reemplazada, cierre): no es un fallo de red.
			c.count(r, "canceled")
			return fmt.Errorf("stockapi: %s cancelado: %w", r.op(), ctx.Err())
		}
		c.count(r, "network")
		c.log.Warn().Err(err).Str("request_id", requestID).Str("op", r.op()).Msg("backend inalcanzable")
		c.notify(ports.LevelError, c.texts.T(i18n.MsgNetworkError))
		return &APIError{Op: r.op(), Kind: domain.ErrNetwork, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.count(r, "network")
		c.notify(ports.LevelError, c.texts.T(i18n.MsgNetworkError))
		return &APIError{Op: r.op(), Status: resp.StatusCode, Kind: domain.ErrNetwork, Cause: err}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("op", r.op()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.count(r, "ok")
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("stockapi: decodificar %s: %w", r.op(), err)
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		c.count(r, "unauthorized")
		// Un 401 de un token ya reemplazado (re-login en curso) no desmonta la sesión nueva.
		if r.auth && tokens != nil && tokens.Token() != token {
			c.log.Info().Str("request_id", requestID).Str("op", r.op()).Msg("401 con token anterior, se ignora")
		} else {
			if onUnauthorized != nil {
				onUnauthorized()
			}
			if r.auth {
				c.notify(ports.LevelInfo, c.texts.T(i18n.MsgSessionExpired))
			}
		}
		return &APIError{Op: r.op(), Status: resp.StatusCode, Detail: parseDetail(raw), Kind: domain.ErrUnauthorized}

	case resp.StatusCode >= 500:
		c.count(r, "server")
		detail := parseDetail(raw)
		msg := detail
		if msg == "" {
			msg = c.texts.T(i18n.MsgServerError)
		}
		c.log.Error().Str("request_id", requestID).Str("op", r.op()).Int("status", resp.StatusCode).Str("detail", detail).Msg("error del backend")
		c.notify(ports.LevelError, msg)
		return &APIError{Op: r.op(), Status: resp.StatusCode, Detail: detail, Kind: domain.ErrServer}

	case resp.StatusCode == http.StatusNotFound:
		c.count(r, "not_found")
		return &APIError{Op: r.op(), Status: resp.StatusCode, Detail: parseDetail(raw), Kind: domain.ErrNotFound}

	default:
		c.count(r, "rejected")
		return &APIError{Op: r.op(), Status: resp.StatusCode, Detail: parseDetail(raw), Kind: domain.ErrRejected}
	}
}

func (c *Client) count(r request, outcome string) {
	metrics.BackendRequests.WithLabelValues(r.resource, r.method, outcome).Inc()
}

func (c *Client) notify(level ports.Level, msg string) {
	if c.notifier != nil {
		c.notifier.Notify(level, msg)
	}
}

// parseDetail extrae "detail" del cuerpo de error: string o lista de {msg}.
func parseDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
