package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ewm-stock-api/pkg/jwt"
)

func newTokenCmd(load loadConfig) *cobra.Command {
	var (
		userID     string
		stockTypes []string
		expMinutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emitir un JWT de desarrollo con tipos de stock autorizados",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET no configurado")
			}
			if expMinutes <= 0 {
				expMinutes = cfg.JWT.Expiration
			}

			attrs := map[string]any{}
			if len(stockTypes) > 0 {
				attrs[cfg.Auth.StockTypeAttribute] = stockTypes
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, userID, attrs, cfg.JWT.Issuer, expMinutes)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "dev", "ID del usuario (claim user_id)")
	cmd.Flags().StringSliceVarP(&stockTypes, "stock-type", "s", nil, "Tipos de stock autorizados (repetible o separados por coma)")
	cmd.Flags().IntVar(&expMinutes, "exp", 0, "Minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}
