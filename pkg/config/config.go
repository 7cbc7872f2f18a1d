package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	API      APIConfig
	HTTP     HTTPConfig
	Session  SessionConfig
	DB       DBConfig
	Redis    RedisConfig
	Search   SearchConfig
	Metrics  MetricsConfig
	Telegram TelegramConfig
	Export   ExportConfig
}

// AppConfig configuración general.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	Locale   string // ru, en, es
	LogLevel string
	DocsPath string // swagger.json; vacío o inexistente = sin /docs
}

// APIConfig backend de almacén al que se conecta la consola.
type APIConfig struct {
	BaseURL    string // http://localhost:8000
	PathPrefix string // /api
	Timeout    time.Duration
}

// HTTPConfig configuración del servidor HTTP de la consola.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Backends de persistencia del token.
const (
	SessionStoreFile     = "file"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// SessionConfig dónde se persiste el token de la sesión del operador.
type SessionConfig struct {
	Store    string // file | redis | postgres
	FilePath string
	Name     string // clave/fila bajo la que se guarda el token
}

// DBConfig configuración de PostgreSQL (solo con SESSION_STORE=postgres).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN arma el connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig configuración de Redis (solo con SESSION_STORE=redis).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinSearchChars mínimo de caracteres antes de buscar productos.
const MinSearchChars = 2

// SearchConfig parámetros del selector de productos.
type SearchConfig struct {
	Debounce time.Duration
	MinChars int
	PageSize int
}

// MetricsConfig exposición de /metrics.
type MetricsConfig struct {
	Enabled bool
}

// TelegramConfig sink opcional de notificaciones. Sin token no se activa.
type TelegramConfig struct {
	Token    string
	ChatID   int64
	MinLevel string // info, success, error
}

// Enabled indica si hay credenciales suficientes para el sink.
func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

// ExportConfig fuentes TTF para el PDF del journal. Sin ellas se usa helvetica,
// que no tiene cirílico.
type ExportConfig struct {
	FontPath     string
	BoldFontPath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "stock-console"),
			Locale:   getString(v, "APP_LOCALE", "ru"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsPath: getString(v, "DOCS_PATH", "./docs/swagger.json"),
		},
		API: APIConfig{
			BaseURL:    strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8000"), "/"),
			PathPrefix: getString(v, "API_PATH_PREFIX", "/api"),
			Timeout:    time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Session: SessionConfig{
			Store:    getString(v, "SESSION_STORE", SessionStoreFile),
			FilePath: getString(v, "SESSION_FILE", ".stock-console/session.json"),
			Name:     getString(v, "SESSION_NAME", "default"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "stock_console"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Search: SearchConfig{
			Debounce: time.Duration(getInt(v, "SEARCH_DEBOUNCE_MS", 300)) * time.Millisecond,
			MinChars: getInt(v, "SEARCH_MIN_CHARS", 2),
			PageSize: getInt(v, "SEARCH_PAGE_SIZE", 20),
		},
		Metrics: MetricsConfig{
			Enabled: getBool(v, "METRICS_ENABLED", true),
		},
		Telegram: TelegramConfig{
			Token:    getString(v, "TELEGRAM_TOKEN", ""),
			ChatID:   int64(getInt(v, "TELEGRAM_CHAT_ID", 0)),
			MinLevel: getString(v, "TELEGRAM_MIN_LEVEL", "error"),
		},
		Export: ExportConfig{
			FontPath:     getString(v, "PDF_FONT_PATH", ""),
			BoldFontPath: getString(v, "PDF_FONT_BOLD_PATH", ""),
		},
	}

	switch cfg.Session.Store {
	case SessionStoreFile, SessionStoreRedis, SessionStorePostgres:
	default:
		return nil, fmt.Errorf("config: SESSION_STORE inválido %q", cfg.Session.Store)
	}
	if cfg.Search.MinChars < MinSearchChars {
		return nil, fmt.Errorf("config: SEARCH_MIN_CHARS debe ser al menos %d", MinSearchChars)
	}
	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser positivo")
	}
	if _, err := url.ParseRequestURI(cfg.API.BaseURL); err != nil {
		return nil, fmt.Errorf("config: API_BASE_URL inválido: %w", err)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
