// Package config holds the tunables of a simulation world and builds its logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidSubsteps    = errors.New("substeps must be at least 1")
	ErrInvalidGravity     = errors.New("gravity constant and softening must be finite and non-negative")
	ErrInvalidRestitution = errors.New("restitution must be within [0, 1]")
	ErrInvalidFriction    = errors.New("friction must be finite and non-negative")
	ErrInvalidEncoding    = errors.New("log encoding must be console or json")
)

type Config struct {
	Substeps int           `yaml:"substeps"`
	Gravity  GravityConfig `yaml:"gravity"`
	Contact  ContactConfig `yaml:"contact"`
	Log      LogConfig     `yaml:"log"`
}

type GravityConfig struct {
	Constant  float64 `yaml:"constant"`
	Softening float64 `yaml:"softening"`
}

// ContactConfig is the material given to planes added without one
type ContactConfig struct {
	Restitution float64 `yaml:"restitution"`
	Friction    float64 `yaml:"friction"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Substeps: 1,
		Gravity: GravityConfig{
			Constant:  6.6743e-11,
			Softening: 0.01,
		},
		Contact: ContactConfig{
			Restitution: 0.5,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads a YAML document from r. Keys missing from the document keep
// their default value; an empty document yields Default().
func Load(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// LoadFile opens path and loads it with Load
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func (c Config) Validate() error {
	if c.Substeps < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSubsteps, c.Substeps)
	}
	if !nonNegative(c.Gravity.Constant) || !nonNegative(c.Gravity.Softening) {
		return fmt.Errorf("%w: got %+v", ErrInvalidGravity, c.Gravity)
	}
	if !(c.Contact.Restitution >= 0 && c.Contact.Restitution <= 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidRestitution, c.Contact.Restitution)
	}
	if !nonNegative(c.Contact.Friction) {
		return fmt.Errorf("%w: got %v", ErrInvalidFriction, c.Contact.Friction)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("%w: got %q", ErrInvalidEncoding, c.Log.Encoding)
	}

	return nil
}

// nonNegative rejects negatives, NaN and infinities
func nonNegative(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0)
}

// NewLogger builds a zap logger writing to stderr at the configured level
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Log.Encoding == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         c.Log.Encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}

	return zc.Build()
}
