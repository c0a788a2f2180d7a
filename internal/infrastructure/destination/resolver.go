package destination

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/pkcs12"

	"github.com/jhoicas/ewm-stock-api/internal/application/ports"
	"github.com/jhoicas/ewm-stock-api/internal/infrastructure/ewm"
)

// Verificar en tiempo de compilación que Resolver implementa DestinationResolver.
var _ ports.DestinationResolver = (*Resolver)(nil)

// Tipos de autenticación soportados por destino.
const (
	AuthNone       = "none"
	AuthBasic      = "basic"
	AuthClientCert = "client-cert"
)

// Config definición de un destino (desde variables EWM_DESTINATION_* o del JSON "destinations").
type Config struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Auth         string `json:"authentication"`
	User         string `json:"username"`
	Password     string `json:"password"`
	CertPath     string `json:"certPath"`
	CertPassword string `json:"certPassword"`
	SAPClient    string `json:"sapClient"`
}

// Resolver registro estático de destinos construido al arrancar.
// Los certificados se cargan una sola vez; Resolve no hace I/O.
type Resolver struct {
	destinations map[string]*ports.Destination
}

// NewResolver valida y construye los destinos. Los que no tienen URL se ignoran
// (Resolve devolverá nil para ellos).
func NewResolver(configs []Config, timeout time.Duration) (*Resolver, error) {
	r := &Resolver{destinations: make(map[string]*ports.Destination, len(configs))}
	for _, cfg := range configs {
		if cfg.Name == "" || cfg.URL == "" {
			continue
		}
		dest, err := build(cfg, timeout)
		if err != nil {
			return nil, fmt.Errorf("destino %q: %w", cfg.Name, err)
		}
		r.destinations[cfg.Name] = dest
	}
	return r, nil
}

// Resolve devuelve el destino o nil si no está configurado.
func (r *Resolver) Resolve(_ context.Context, name string) (*ports.Destination, error) {
	dest, ok := r.destinations[name]
	if !ok {
		return nil, nil
	}
	return dest, nil
}

// Names nombres de los destinos registrados.
func (r *Resolver) Names() []string {
	out := make([]string, 0, len(r.destinations))
	for name := range r.destinations {
		out = append(out, name)
	}
	return out
}

func build(cfg Config, timeout time.Duration) (*ports.Destination, error) {
	dest := &ports.Destination{
		Name:    cfg.Name,
		BaseURL: strings.TrimRight(cfg.URL, "/"),
		Headers: map[string]string{},
	}
	if cfg.SAPClient != "" {
		dest.Headers["sap-client"] = cfg.SAPClient
	}

	auth := strings.ToLower(strings.TrimSpace(cfg.Auth))
	if auth == "" {
		auth = AuthNone
		if cfg.User != "" {
			auth = AuthBasic
		} else if cfg.CertPath != "" {
			auth = AuthClientCert
		}
	}

	switch auth {
	case AuthNone, "noauthentication":
	case AuthBasic, "basicauthentication":
		if cfg.User == "" {
			return nil, fmt.Errorf("usuario requerido para autenticación básica")
		}
		token := base64.StdEncoding.EncodeToString([]byte(cfg.User + ":" + cfg.Password))
		dest.Headers["Authorization"] = "Basic " + token
	case AuthClientCert, "clientcertificateauthentication":
		cert, err := LoadFromP12(cfg.CertPath, cfg.CertPassword)
		if err != nil {
			return nil, err
		}
		base := http.DefaultTransport.(*http.Transport).Clone()
		base.TLSClientConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		dest.Client = ewm.NewHTTPClient(timeout, base)
	default:
		return nil, fmt.Errorf("tipo de autenticación desconocido %q", cfg.Auth)
	}
	return dest, nil
}

// LoadFromP12 carga certificado y llave privada desde un archivo .p12/.pfx.
func LoadFromP12(path, password string) (tls.Certificate, error) {
	if path == "" {
		return tls.Certificate{}, fmt.Errorf("ruta del certificado p12 requerida")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("leer p12: %w", err)
	}
	priv, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("decodificar p12: %w", err)
	}
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  priv,
		Leaf:        cert,
	}, nil
}

// ParseDestinationsJSON lee la variable "destinations" con el formato de SAP CAP:
// [{"name":"EWM_HMF","url":"https://...","username":"...","password":"..."}].
func ParseDestinationsJSON(raw string) ([]Config, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var out []Config
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("destinations: JSON inválido: %w", err)
	}
	return out, nil
}
