// Package serve implements the serve command, which runs the HTTP API.
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"fjacquet/taxcalc/cmd/common"
	"fjacquet/taxcalc/cmd/root"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var port int

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Serve the calculator over HTTP until interrupted.

Routes:
  POST /api/v1/calculate  {"category": "income", "amount": 300000, "is_annual": true}
  GET  /api/v1/brackets   active rule set
  GET  /health
  GET  /metrics           Prometheus metrics

Example:
  taxcalc serve --port 9090`,
	RunE: run,
}

func init() {
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: server.port)")
}

func run(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	cfg := c.GetConfig()
	if port != 0 {
		cfg.Server.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(common.Context(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.NewServer().Run(ctx)
}
