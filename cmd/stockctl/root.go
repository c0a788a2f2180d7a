package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/ewm-stock-api/pkg/config"
)

// loadConfig permite sustituir la carga de configuración en los tests.
type loadConfig func() (*config.Config, error)

func newRootCmd(out io.Writer, load loadConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "Herramientas de línea de comandos para la API de stock EWM",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.AddCommand(newTokenCmd(load), newQueryCmd(load))
	return root
}
