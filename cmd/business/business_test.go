package business

import (
	"bytes"
	"testing"

	"fjacquet/taxcalc/cmd/common"
	"fjacquet/taxcalc/cmd/root"
	"fjacquet/taxcalc/internal/config"
	"fjacquet/taxcalc/internal/container"
	"fjacquet/taxcalc/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, f common.CalculationFlags) *bytes.Buffer {
	t.Helper()
	c, err := container.NewContainerWithLogger(config.DefaultConfig(), &logging.MockLogger{})
	require.NoError(t, err)
	root.SetContainer(c)

	original := flags
	flags = f
	t.Cleanup(func() {
		flags = original
		root.SetContainer(nil)
	})

	var out bytes.Buffer
	Cmd.SetOut(&out)
	t.Cleanup(func() { Cmd.SetOut(nil) })
	return &out
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "business", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("amount"))
	assert.NotNil(t, Cmd.Flags().Lookup("format"))
	assert.NotNil(t, Cmd.Flags().Lookup("monthly"))
}

func TestCommand_Run(t *testing.T) {
	out := setup(t, common.CalculationFlags{Amount: "8000", Monthly: true})

	require.NoError(t, run(Cmd, nil))
	assert.Equal(t, "Total tax amount deducted: R2240.00\nAmount remaining after tax: R5760.00\n", out.String())
}

func TestCommand_InvalidAmount(t *testing.T) {
	out := setup(t, common.CalculationFlags{Amount: "-10"})

	err := run(Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be negative")
	assert.Empty(t, out.String())
}

func TestCommand_RequiresContainer(t *testing.T) {
	root.SetContainer(nil)
	assert.EqualError(t, run(Cmd, nil), "container not initialized")
}
