package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ewm-stock-api/internal/application/dto"
	"github.com/jhoicas/ewm-stock-api/internal/application/stock"
	"github.com/jhoicas/ewm-stock-api/internal/domain"
	"github.com/jhoicas/ewm-stock-api/internal/domain/entity"
	"github.com/jhoicas/ewm-stock-api/internal/infrastructure/destination"
	"github.com/jhoicas/ewm-stock-api/internal/infrastructure/ewm"
	apphttp "github.com/jhoicas/ewm-stock-api/internal/interfaces/http"
	"github.com/jhoicas/ewm-stock-api/pkg/config"
	"github.com/jhoicas/ewm-stock-api/pkg/jwt"
	"github.com/jhoicas/ewm-stock-api/pkg/logger"
)

type queryOptions struct {
	filter     string
	top        string
	skip       string
	token      string
	userID     string
	stockTypes []string
	verbose    bool
}

func newQueryCmd(load loadConfig) *cobra.Command {
	var opts queryOptions
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Ejecutar una lectura de stock contra EWM e imprimir la página como JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runQuery(cmd, cfg, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Expresión $filter")
	cmd.Flags().StringVar(&opts.top, "top", "", "$top")
	cmd.Flags().StringVar(&opts.skip, "skip", "", "$skip")
	cmd.Flags().StringVarP(&opts.token, "token", "t", "", "JWT del usuario (alternativa a --user/--stock-type)")
	cmd.Flags().StringVarP(&opts.userID, "user", "u", "dev", "ID del usuario sin token")
	cmd.Flags().StringSliceVarP(&opts.stockTypes, "stock-type", "s", nil, "Tipos de stock autorizados sin token")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Registrar en stderr a nivel debug")
	return cmd
}

func runQuery(cmd *cobra.Command, cfg *config.Config, opts queryOptions) error {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: cmd.ErrOrStderr()})

	principal, err := buildPrincipal(cfg, opts)
	if err != nil {
		return err
	}
	query, err := apphttp.ParseStockQuery(map[string]string{
		"$filter": opts.filter,
		"$top":    opts.top,
		"$skip":   opts.skip,
	})
	if err != nil {
		return err
	}

	destConfigs, err := destination.FromSettings(cfg)
	if err != nil {
		return err
	}
	resolver, err := destination.NewResolver(destConfigs, cfg.EWM.Timeout())
	if err != nil {
		return err
	}
	gateway := ewm.NewStockGateway(resolver, ewm.NewHTTPTransport(cfg.EWM.Timeout()), ewm.GatewayConfig{
		Destination: cfg.EWM.Destination,
		APIPath:     cfg.EWM.APIPath,
	}, log.Component("ewm"))
	uc := stock.NewReadStockUseCase(gateway, stock.Config{
		EnforceStockTypes:  cfg.Auth.EnforceStockTypes,
		StockTypeAttribute: cfg.Auth.StockTypeAttribute,
		DefaultLimit:       cfg.EWM.DefaultTop,
		MaxLimit:           cfg.EWM.MaxTop,
	}, log.Component("stock"))

	ctx := logger.WithRequestID(cmd.Context(), fmt.Sprintf("stockctl-%d", time.Now().UnixNano()))
	page, err := uc.Read(ctx, principal, query)
	if err != nil {
		se := domain.AsStockError(err)
		return fmt.Errorf("%s (%d): %s", se.Kind, se.Status, se.Message)
	}
	return writeJSON(cmd.OutOrStdout(), dto.ToStockCollection(page))
}

func buildPrincipal(cfg *config.Config, opts queryOptions) (*entity.Principal, error) {
	if opts.token != "" {
		userID, attrs, err := jwt.Parse(cfg.JWT.Secret, opts.token)
		if err != nil {
			return nil, fmt.Errorf("token: %w", err)
		}
		return &entity.Principal{ID: userID, Attributes: attrs}, nil
	}
	p := &entity.Principal{ID: opts.userID, Attributes: map[string]any{}}
	if len(opts.stockTypes) > 0 {
		p.Attributes[cfg.Auth.StockTypeAttribute] = opts.stockTypes
	}
	return p, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
