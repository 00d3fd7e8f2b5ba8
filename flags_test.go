package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/heatlegend/internal/config"
)

func TestOverridesOnlyApplySetFlags(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o := newOverrides(fs)
	require.NoError(t, fs.Parse([]string{"-width", "640", "-adjust", "12", "-scale", "viridis", "-o", "out.svg", "-dev"}))

	base := config.Default()
	base.Chart.Height = 999 // from a config file, not overridden
	got := o.apply(fs, base)

	assert.Equal(t, 640.0, got.Chart.Width)
	assert.Equal(t, 999.0, got.Chart.Height)
	assert.Equal(t, 12.0, got.Chart.Adjust)
	assert.Equal(t, "viridis", got.Scale)
	assert.Equal(t, "out.svg", got.Output.Path)
	assert.True(t, got.Server.DevMode)
	assert.Equal(t, base.Legend, got.Legend)
}

func TestRunRejectsBadConfig(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-format", "gif"}))
	assert.Equal(t, 2, run([]string{"-min", "50", "-max", "10"}))
}
