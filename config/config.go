// Package config loads polypath settings from YAML. Every field has a default,
// so an empty file (or no file) is a valid configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/osuushi/polypath/advanced"
	"github.com/osuushi/polypath/session"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Session SessionConfig `yaml:"session"`
	Render  RenderConfig  `yaml:"render"`
	Server  ServerConfig  `yaml:"server"`
	Draw    DrawConfig    `yaml:"draw"`
}

type SessionConfig struct {
	CloseThreshold float64 `yaml:"close_threshold"`
	// auto, earclip, or monotone
	Triangulator string `yaml:"triangulator"`
}

type RenderConfig struct {
	// Pixels per local unit
	Scale float64 `yaml:"scale"`
	// Margin around the polygon, in pixels
	Padding           float64 `yaml:"padding"`
	LineWidth         float64 `yaml:"line_width"`
	ShowDual          bool    `yaml:"show_dual"`
	ShowTriangulation bool    `yaml:"show_triangulation"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	MessagesPerSecond float64       `yaml:"messages_per_second"`
	Burst             int           `yaml:"burst"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
}

type DrawConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

func Default() Config {
	return Config{
		Session: SessionConfig{
			CloseThreshold: session.DefaultCloseThreshold,
			Triangulator:   "auto",
		},
		Render: RenderConfig{
			Scale:     20,
			Padding:   20,
			LineWidth: 2,
			ShowDual:  true,
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:9000",
			MessagesPerSecond: 20,
			Burst:             40,
			ReadTimeout:       10 * time.Minute,
			WriteTimeout:      5 * time.Second,
		},
		Draw: DrawConfig{
			Width:  800,
			Height: 600,
			Title:  "polydraw",
		},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are an error, so typos
// don't silently fall back to a default.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the file at path. An empty path gives the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.Session.CloseThreshold <= 0 {
		return errors.Errorf("session.close_threshold must be positive, got %v", c.Session.CloseThreshold)
	}
	if _, err := c.Session.TriangulatorFunc(); err != nil {
		return err
	}
	if c.Render.Scale <= 0 {
		return errors.Errorf("render.scale must be positive, got %v", c.Render.Scale)
	}
	if c.Server.MessagesPerSecond <= 0 || c.Server.Burst < 1 {
		return errors.New("server.messages_per_second and server.burst must be positive")
	}
	if c.Draw.Width <= 0 || c.Draw.Height <= 0 {
		return errors.Errorf("draw size must be positive, got %dx%d", c.Draw.Width, c.Draw.Height)
	}
	return nil
}

func (c SessionConfig) TriangulatorFunc() (advanced.Triangulator, error) {
	switch c.Triangulator {
	case "", "auto":
		return advanced.Triangulate, nil
	case "earclip":
		return advanced.EarClip, nil
	case "monotone":
		return advanced.TriangulateMonotone, nil
	}
	return nil, errors.Errorf("unknown triangulator %q", c.Triangulator)
}

// Options for a session built from this config. The triangulator must already
// be valid.
func (c SessionConfig) Options() []session.Option {
	triangulate, _ := c.TriangulatorFunc()
	return []session.Option{
		session.WithCloseThreshold(c.CloseThreshold),
		session.WithTriangulator(triangulate),
	}
}
