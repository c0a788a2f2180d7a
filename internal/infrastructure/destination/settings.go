package destination

import (
	"github.com/jhoicas/ewm-stock-api/pkg/config"
)

// FromSettings arma la lista de destinos a partir de la configuración de la aplicación:
// primero la variable "destinations" y luego el destino EWM_DESTINATION_* con el nombre
// EWM_DESTINATION, que reemplaza a uno homónimo del JSON.
func FromSettings(cfg *config.Config) ([]Config, error) {
	configs, err := ParseDestinationsJSON(cfg.Destination.DestinationsJSON)
	if err != nil {
		return nil, err
	}
	if cfg.Destination.URL == "" {
		return configs, nil
	}

	single := Config{
		Name:         cfg.EWM.Destination,
		URL:          cfg.Destination.URL,
		Auth:         cfg.Destination.Auth,
		User:         cfg.Destination.User,
		Password:     cfg.Destination.Password,
		CertPath:     cfg.Destination.CertPath,
		CertPassword: cfg.Destination.CertPassword,
		SAPClient:    cfg.Destination.SAPClient,
	}
	out := make([]Config, 0, len(configs)+1)
	for _, c := range configs {
		if c.Name != single.Name {
			out = append(out, c)
		}
	}
	return append(out, single), nil
}
