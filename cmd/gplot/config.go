package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

var (
	ErrNoJobs         = errors.New("config has no jobs")
	ErrMissingFormula = errors.New("job has no formula")
	ErrMissingOutput  = errors.New("job has no output")
)

// Config is a YAML job file.
//
//	defaults:
//	  resolution: 128
//	  width: 600
//	  height: 600
//	jobs:
//	  - name: circle
//	    formula: x^2 + y^2 = 1
//	    viewport: [-2, -2, 2, 2]
//	    output: circle.png
type Config struct {
	Defaults JobDefaults `yaml:"defaults"`
	Jobs     []Job       `yaml:"jobs"`
}

// JobDefaults fill in fields a job leaves unset.
type JobDefaults struct {
	Viewport   []float64 `yaml:"viewport"`
	Resolution int       `yaml:"resolution"`
	MaxCells   int       `yaml:"max_cells"`
	Workers    int       `yaml:"workers"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Axes       *bool     `yaml:"axes"`
}

// Job is one plot to render.
type Job struct {
	Name       string    `yaml:"name"`
	Formula    string    `yaml:"formula"`
	Viewport   []float64 `yaml:"viewport"`
	Resolution int       `yaml:"resolution"`
	MaxCells   int       `yaml:"max_cells,omitempty"`
	Workers    int       `yaml:"workers,omitempty"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Axes       *bool     `yaml:"axes,omitempty"`
	Output     string    `yaml:"output"`
}

// LoadConfig reads and validates a job file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a job file, applies defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	d := c.Defaults
	if d.Viewport == nil {
		d.Viewport = []float64{-2, -2, 2, 2}
	}
	if d.Resolution == 0 {
		d.Resolution = 64
	}
	if d.Width == 0 {
		d.Width = 800
	}
	if d.Height == 0 {
		d.Height = 800
	}
	if d.Axes == nil {
		axes := true
		d.Axes = &axes
	}

	for i := range c.Jobs {
		j := &c.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job%d", i+1)
		}
		if j.Viewport == nil {
			j.Viewport = d.Viewport
		}
		if j.Resolution == 0 {
			j.Resolution = d.Resolution
		}
		if j.MaxCells == 0 {
			j.MaxCells = d.MaxCells
		}
		if j.Workers == 0 {
			j.Workers = d.Workers
		}
		if j.Width == 0 {
			j.Width = d.Width
		}
		if j.Height == 0 {
			j.Height = d.Height
		}
		if j.Axes == nil {
			j.Axes = d.Axes
		}
	}
}

// Validate checks every job. Formulas are compiled later, when the job runs.
func (c *Config) Validate() error {
	if len(c.Jobs) == 0 {
		return ErrNoJobs
	}
	for _, j := range c.Jobs {
		if j.Formula == "" {
			return fmt.Errorf("%s: %w", j.Name, ErrMissingFormula)
		}
		if j.Output == "" {
			return fmt.Errorf("%s: %w", j.Name, ErrMissingOutput)
		}
		if _, err := viewportFromSlice(j.Viewport); err != nil {
			return fmt.Errorf("%s: %w", j.Name, err)
		}
		if j.Resolution <= 0 {
			return fmt.Errorf("%s: %w", j.Name, ErrInvalidResolution)
		}
		if j.Width <= 0 || j.Height <= 0 {
			return fmt.Errorf("%s: image size must be positive, got %dx%d", j.Name, j.Width, j.Height)
		}
	}
	return nil
}
