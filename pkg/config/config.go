package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	JWT         JWTConfig
	Auth        AuthConfig
	DB          DBConfig
	EWM         EWMConfig
	Destination DestinationConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// Fuentes posibles del atributo de tipos de stock.
const (
	StockTypeSourceToken    = "token"
	StockTypeSourcePostgres = "postgres"
)

// AuthConfig política de autorización por tipo de stock.
type AuthConfig struct {
	EnforceStockTypes  bool   // false = modo público explícito
	StockTypeAttribute string // nombre del atributo de usuario
	StockTypeSource    string // "token" | "postgres"
}

// DBConfig configuración de PostgreSQL (solo si AUTH_STOCK_TYPE_SOURCE=postgres).
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

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
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

// EWMConfig API remota de stock físico.
type EWMConfig struct {
	Destination    string
	APIPath        string
	DefaultTop     int
	MaxTop         int
	TimeoutSeconds int
}

// Timeout timeout de red de las llamadas a EWM.
func (c EWMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DestinationConfig destino único definido por variables EWM_DESTINATION_*.
// DestinationsJSON es la variable "destinations" con el formato de SAP CAP (lista JSON).
type DestinationConfig struct {
	URL              string
	Auth             string
	User             string
	Password         string
	CertPath         string
	CertPassword     string
	SAPClient        string
	DestinationsJSON string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, EWM_DESTINATION_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// CAP usa la variable en minúsculas; se aceptan ambas.
	_ = v.BindEnv("EWM_DESTINATIONS_JSON", "destinations", "DESTINATIONS")

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "ewm-stock-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 4004),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "ewm-stock-api"),
		},
		Auth: AuthConfig{
			EnforceStockTypes:  getBool(v, "AUTH_ENFORCE_STOCK_TYPES", true),
			StockTypeAttribute: getString(v, "AUTH_STOCK_TYPE_ATTRIBUTE", "StockType"),
			StockTypeSource:    strings.ToLower(getString(v, "AUTH_STOCK_TYPE_SOURCE", StockTypeSourceToken)),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "ewm_stock"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		EWM: EWMConfig{
			Destination:    getString(v, "EWM_DESTINATION", "EWM_HMF"),
			APIPath:        getString(v, "EWM_API_PATH", ""),
			DefaultTop:     getInt(v, "EWM_DEFAULT_TOP", 100),
			MaxTop:         getInt(v, "EWM_MAX_TOP", 1000),
			TimeoutSeconds: getInt(v, "EWM_TIMEOUT_SECONDS", 30),
		},
		Destination: DestinationConfig{
			URL:              getString(v, "EWM_DESTINATION_URL", ""),
			Auth:             getString(v, "EWM_DESTINATION_AUTH", ""),
			User:             getString(v, "EWM_DESTINATION_USER", ""),
			Password:         getString(v, "EWM_DESTINATION_PASSWORD", ""),
			CertPath:         getString(v, "EWM_DESTINATION_CERT_PATH", ""),
			CertPassword:     getString(v, "EWM_DESTINATION_CERT_PASSWORD", ""),
			SAPClient:        getString(v, "EWM_DESTINATION_SAP_CLIENT", ""),
			DestinationsJSON: getString(v, "EWM_DESTINATIONS_JSON", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.StockTypeSource {
	case StockTypeSourceToken, StockTypeSourcePostgres:
	default:
		return fmt.Errorf("config: AUTH_STOCK_TYPE_SOURCE inválido %q (usar 'token' o 'postgres')", c.Auth.StockTypeSource)
	}
	if c.EWM.DefaultTop < 0 || c.EWM.MaxTop < 0 {
		return fmt.Errorf("config: EWM_DEFAULT_TOP y EWM_MAX_TOP deben ser no negativos")
	}
	if c.EWM.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: EWM_TIMEOUT_SECONDS debe ser mayor que 0")
	}
	return nil
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

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
