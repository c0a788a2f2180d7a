// Command stockctl emite tokens de desarrollo y ejecuta lecturas de stock puntuales
// con la misma canalización que la API.
package main

import (
	"os"

	"github.com/jhoicas/ewm-stock-api/pkg/config"
)

func main() {
	if err := newRootCmd(os.Stdout, config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
