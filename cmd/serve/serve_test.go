package serve

import (
	"context"
	"testing"
	"time"

	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/config"
	"fjacquet/taxcalc/internal/container"
	"fjacquet/taxcalc/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, portFlag int) *logging.MockLogger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.Mode = "test"
	logger := &logging.MockLogger{}
	c, err := container.NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	root.SetContainer(c)

	port = portFlag
	t.Cleanup(func() {
		port = 0
		root.SetContainer(nil)
	})
	return logger
}

func TestServeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "serve", Cmd.Use)
	assert.Equal(t, "p", Cmd.Flags().Lookup("port").Shorthand)
}

func TestServeCommand_RejectsInvalidPort(t *testing.T) {
	setup(t, 70000)

	err := run(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be between 1 and 65535")
}

func TestServeCommand_StopsWhenContextEnds(t *testing.T) {
	logger := setup(t, 18089)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	Cmd.SetContext(ctx)
	t.Cleanup(func() { Cmd.SetContext(context.Background()) })

	require.NoError(t, run(Cmd, nil))
	assert.True(t, logger.HasEntry("INFO", "Starting server"))
	assert.True(t, logger.HasEntry("INFO", "Shutting down server"))
	assert.Equal(t, gin.TestMode, gin.Mode())
}
