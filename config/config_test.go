package config_test

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/plus3/pongsim/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// isolate points the env file at a path that does not exist and clears every
// variable Load reads.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvFile, filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{
		config.EnvTickRate, config.EnvGravity, config.EnvBallVX, config.EnvBallVY,
		config.EnvWalls, config.EnvDebug, config.EnvWindowScale,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, -1.0, cfg.Gravity)
	assert.True(t, cfg.Walls)
	assert.False(t, cfg.Debug)
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvTickRate, "120")
	t.Setenv(config.EnvGravity, "-9.8")
	t.Setenv(config.EnvWalls, "false")
	t.Setenv(config.EnvDebug, "true")

	cfg, err := config.Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.TickRate)
	assert.Equal(t, -9.8, cfg.Gravity)
	assert.False(t, cfg.Walls)
	assert.True(t, cfg.Debug)
}

func TestLoadEnvFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pong.env")
	require.NoError(t, os.WriteFile(path, []byte("PONG_BALL_VX=10\nPONG_WINDOW_SCALE=3\n"), 0o644))
	t.Setenv(config.EnvFile, path)
	// godotenv only sets unset variables.
	require.NoError(t, os.Unsetenv(config.EnvBallVX))
	require.NoError(t, os.Unsetenv(config.EnvWindowScale))
	t.Cleanup(func() {
		os.Unsetenv(config.EnvBallVX)
		os.Unsetenv(config.EnvWindowScale)
	})

	cfg, err := config.Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.BallVelocityX)
	assert.Equal(t, 3, cfg.WindowScale)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvTickRate, "120")

	cfg, err := config.Load(newFlagSet(), []string{"-tps", "30", "-ball-vy", "-5", "-walls=false"})
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TickRate)
	assert.Equal(t, -5.0, cfg.BallVelocityY)
	assert.False(t, cfg.Walls)
}

func TestLoadKeepsCallerFlags(t *testing.T) {
	isolate(t)
	fs := newFlagSet()
	ticks := fs.Int("ticks", 10, "")

	_, err := config.Load(fs, []string{"-ticks", "500", "-debug"})
	require.NoError(t, err)
	assert.Equal(t, 500, *ticks)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	for _, rate := range []int{0, -1, config.MaxTickRate + 1} {
		t.Run(strconv.Itoa(rate), func(t *testing.T) {
			isolate(t)
			_, err := config.Load(newFlagSet(), []string{"-tps", strconv.Itoa(rate)})
			assert.ErrorIs(t, err, config.ErrInvalidTickRate)
		})
	}

	t.Run("scale", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(newFlagSet(), []string{"-scale", "0"})
		assert.ErrorIs(t, err, config.ErrInvalidWindowScale)
	})

	t.Run("ball too fast", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(newFlagSet(), []string{"-tps", "1", "-ball-vx", "300"})
		assert.ErrorIs(t, err, config.ErrBallTooFast)

		_, err = config.Load(newFlagSet(), []string{"-ball-vx", "NaN"})
		assert.ErrorIs(t, err, config.ErrBallTooFast)
	})

	t.Run("fast ball within limit", func(t *testing.T) {
		isolate(t)
		cfg, err := config.Load(newFlagSet(), []string{"-ball-vx", "1000", "-ball-vy", "700"})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, cfg.BallVelocityX)
	})

	t.Run("malformed env", func(t *testing.T) {
		isolate(t)
		t.Setenv(config.EnvGravity, "down")
		_, err := config.Load(newFlagSet(), nil)
		var numErr *strconv.NumError
		assert.ErrorAs(t, err, &numErr)
	})

	t.Run("unknown flag", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(newFlagSet(), []string{"-nope"})
		assert.Error(t, err)
	})
}

func TestMatchOptions(t *testing.T) {
	cfg := config.Default()
	cfg.BallVelocityX = 3
	cfg.BallVelocityY = -4

	opts := cfg.MatchOptions()
	assert.Equal(t, cfg.TickRate, opts.TickRate)
	assert.Equal(t, [2]float32{3, -4}, opts.BallVelocity)
	assert.Equal(t, cfg.Walls, opts.Walls)
}
