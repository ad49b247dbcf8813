package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Mongo   MongoConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Swagger SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host                  string
	Port                  int
	RequestTimeoutSeconds int
	CORSAllowOrigins      string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RequestTimeout devuelve el deadline por petición; cero desactiva el middleware.
func (c HTTPConfig) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// MongoConfig configuración de MongoDB.
// Si Database está vacío, las colecciones se buscan en todas las bases del cluster.
type MongoConfig struct {
	URI                   string
	Database              string
	JobsCollection        string
	RolesCollection       string
	ConnectTimeoutSeconds int
	DiscoveryRetrySeconds int
}

// ConnectTimeout timeout de conexión + ping inicial.
func (c MongoConfig) ConnectTimeout() time.Duration {
	if c.ConnectTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ConnectTimeoutSeconds) * time.Second
}

// DiscoveryRetry intervalo entre búsquedas de colecciones faltantes (0 = sin reintentos).
func (c MongoConfig) DiscoveryRetry() time.Duration {
	if c.DiscoveryRetrySeconds <= 0 {
		return 0
	}
	return time.Duration(c.DiscoveryRetrySeconds) * time.Second
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Credential usuario demo declarado en AUTH_CREDENTIALS.
type Credential struct {
	Username string
	Password string
	Role     string // vacío = se deriva del username
}

// AuthConfig usuarios demo habilitados para login.
type AuthConfig struct {
	Credentials []Credential
}

// SwaggerConfig documento OpenAPI servido en /docs.
type SwaggerConfig struct {
	FilePath string // vacío desactiva la UI
}

const defaultCredentials = "admin:admin123,manager:manager123"

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, MONGO_URI, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
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

// fromViper construye Config a partir de una instancia ya cargada; separado para tests.
func fromViper(v *viper.Viper) (*Config, error) {
	creds, err := ParseCredentials(getString(v, "AUTH_CREDENTIALS", defaultCredentials))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "sales-analytics-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:                  getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:                  getInt(v, "HTTP_PORT", 3001),
			RequestTimeoutSeconds: getInt(v, "HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSAllowOrigins:      getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Mongo: MongoConfig{
			URI:                   getString(v, "MONGO_URI", "mongodb://localhost:27017"),
			Database:              getString(v, "MONGO_DATABASE", ""),
			JobsCollection:        getString(v, "MONGO_JOBS_COLLECTION", "dummy_data"),
			RolesCollection:       getString(v, "MONGO_ROLES_COLLECTION", "dummy_roles"),
			ConnectTimeoutSeconds: getInt(v, "MONGO_CONNECT_TIMEOUT_SECONDS", 10),
			DiscoveryRetrySeconds: getInt(v, "MONGO_DISCOVERY_RETRY_SECONDS", 30),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", "your-secret-key-change-in-production"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 1440),
			Issuer:     getString(v, "JWT_ISSUER", "sales-analytics-api"),
		},
		Auth: AuthConfig{Credentials: creds},
		Swagger: SwaggerConfig{
			FilePath: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if cfg.HTTP.Port < 1 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: HTTP_PORT out of range: %d", cfg.HTTP.Port)
	}
	return cfg, nil
}

// ParseCredentials interpreta "user:password[:role],user2:password2".
// Los pares incompletos se ignoran; si no queda ninguno se devuelve error.
func ParseCredentials(raw string) ([]Credential, error) {
	var out []Credential
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) < 2 {
			continue
		}
		c := Credential{
			Username: strings.TrimSpace(parts[0]),
			Password: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			c.Role = strings.TrimSpace(parts[2])
		}
		if c.Username == "" || c.Password == "" {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("config: AUTH_CREDENTIALS has no usable user:password pair")
	}
	return out, nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
