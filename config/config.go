// Package config loads runtime settings for the executables from a .env file,
// the environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/plus3/pongsim/pong"
)

// Environment variables read by Load.
const (
	EnvFile        = "PONG_ENV_FILE"
	EnvTickRate    = "PONG_TICK_RATE"
	EnvGravity     = "PONG_GRAVITY"
	EnvBallVX      = "PONG_BALL_VX"
	EnvBallVY      = "PONG_BALL_VY"
	EnvWalls       = "PONG_WALLS"
	EnvDebug       = "PONG_DEBUG"
	EnvWindowScale = "PONG_WINDOW_SCALE"
)

const MaxTickRate = pong.MaxTickRate

var (
	ErrInvalidTickRate    = errors.New("tick rate must be between 1 and 1000")
	ErrInvalidWindowScale = errors.New("window scale must be at least 1")
	ErrBallTooFast        = errors.New("ball speed exceeds what the arena walls can contain")
)

type Config struct {
	TickRate      int
	Gravity       float64
	BallVelocityX float64
	BallVelocityY float64
	Walls         bool
	Debug         bool
	WindowScale   int
}

// Default mirrors pong.DefaultOptions with the debug overlay off.
func Default() Config {
	opts := pong.DefaultOptions()
	return Config{
		TickRate:      opts.TickRate,
		Gravity:       opts.Gravity,
		BallVelocityX: float64(opts.BallVelocity[0]),
		BallVelocityY: float64(opts.BallVelocity[1]),
		Walls:         opts.Walls,
		WindowScale:   6,
	}
}

// Load builds a Config from defaults, the env file named by PONG_ENV_FILE (or
// .env), the process environment and finally args parsed with fs. Callers may
// define their own flags on fs before calling Load. A missing env file is not
// an error; variables already set in the environment win over the file.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()

	if err := loadEnvFile(); err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}

	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("config: parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadEnvFile() error {
	path := os.Getenv(EnvFile)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if err := envInt(EnvTickRate, &c.TickRate); err != nil {
		return err
	}
	if err := envFloat(EnvGravity, &c.Gravity); err != nil {
		return err
	}
	if err := envFloat(EnvBallVX, &c.BallVelocityX); err != nil {
		return err
	}
	if err := envFloat(EnvBallVY, &c.BallVelocityY); err != nil {
		return err
	}
	if err := envBool(EnvWalls, &c.Walls); err != nil {
		return err
	}
	if err := envBool(EnvDebug, &c.Debug); err != nil {
		return err
	}
	return envInt(EnvWindowScale, &c.WindowScale)
}

// RegisterFlags defines the shared flags on fs, defaulting to the current values of c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.TickRate, "tps", c.TickRate, "simulation ticks per second")
	fs.Float64Var(&c.Gravity, "gravity", c.Gravity, "vertical gravity in units/s²")
	fs.Float64Var(&c.BallVelocityX, "ball-vx", c.BallVelocityX, "initial ball velocity, x")
	fs.Float64Var(&c.BallVelocityY, "ball-vy", c.BallVelocityY, "initial ball velocity, y")
	fs.BoolVar(&c.Walls, "walls", c.Walls, "enclose the arena with static walls")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show the debug overlay")
	fs.IntVar(&c.WindowScale, "scale", c.WindowScale, "window pixels per arena unit")
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.TickRate < 1 || c.TickRate > MaxTickRate {
		return fmt.Errorf("config: %d: %w", c.TickRate, ErrInvalidTickRate)
	}
	if c.WindowScale < 1 {
		return fmt.Errorf("config: %d: %w", c.WindowScale, ErrInvalidWindowScale)
	}
	speed := math.Hypot(c.BallVelocityX, c.BallVelocityY)
	if limit := pong.MaxBallSpeed(c.TickRate); !(speed <= limit) {
		return fmt.Errorf("config: ball speed %.1f at %d TPS, limit %.1f: %w", speed, c.TickRate, limit, ErrBallTooFast)
	}
	return nil
}

// MatchOptions converts the configuration into match options.
func (c Config) MatchOptions() pong.Options {
	return pong.Options{
		TickRate:     c.TickRate,
		Gravity:      c.Gravity,
		BallVelocity: [2]float32{float32(c.BallVelocityX), float32(c.BallVelocityY)},
		Walls:        c.Walls,
	}
}

func envInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}

func envFloat(key string, dst *float64) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}

func envBool(key string, dst *bool) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("config: %s: %w", key, err)
	}
	*dst = v
	return nil
}
