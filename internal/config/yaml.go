// SPDX-License-Identifier: MIT
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"nausea/pkg/bitint"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no path is
// given.
const DefaultConfigFile = "nausea.yaml"

// LoadConfig loads configuration from the YAML file at path. If path is
// empty it tries DefaultConfigFile and falls back to built-in defaults when
// that does not exist. Environment overrides are applied after the file and
// the result is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the ranges the renderers and the transform rely on. Mode
// and FFT window names are checked by the packages that own them.
func (c *Config) Validate() error {
	switch c.Audio.Source {
	case SourceFIFO:
		if c.Audio.FIFO == "" {
			return errors.New("audio.fifo must be set for the fifo source")
		}
	case SourceDevice:
		if c.Audio.InputDevice < MinDeviceID {
			return fmt.Errorf("audio.input_device %d is invalid", c.Audio.InputDevice)
		}
	default:
		return fmt.Errorf("audio.source %q is not one of %q, %q", c.Audio.Source, SourceFIFO, SourceDevice)
	}
	if c.Audio.Channels < MinChannels || c.Audio.Channels > MaxChannels {
		return fmt.Errorf("audio.channels must be %d or %d, got %d", MinChannels, MaxChannels, c.Audio.Channels)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sample_rate must be positive, got %g", c.Audio.SampleRate)
	}
	if w := c.Audio.Window; w < MinWindow || w > MaxWindow || !bitint.IsPowerOfTwo(w) {
		return fmt.Errorf("audio.window must be a power of two in [%d, %d], got %d (try %d or %d)",
			MinWindow, MaxWindow, w, bitint.PrevPowerOfTwo(w), bitint.NextPowerOfTwo(w))
	}
	if c.Audio.GateThreshold < 0 || c.Audio.GateThreshold > 1 {
		return fmt.Errorf("audio.gate_threshold must be within [0, 1], got %g", c.Audio.GateThreshold)
	}

	if c.Display.FPS < MinFPS || c.Display.FPS > MaxFPS {
		return fmt.Errorf("display.fps must be within [%d, %d], got %d", MinFPS, MaxFPS, c.Display.FPS)
	}
	if c.Display.Direction != DirectionLeft && c.Display.Direction != DirectionRight {
		return fmt.Errorf("display.direction %q is not %q or %q", c.Display.Direction, DirectionLeft, DirectionRight)
	}
	if c.Display.PeakDrop < 1 || c.Display.PeakEvery < 1 {
		return errors.New("display.peak_drop and display.peak_every must be at least 1")
	}
	for name, glyph := range map[string]string{
		"bar_glyph":   c.Display.BarGlyph,
		"peak_glyph":  c.Display.PeakGlyph,
		"point_glyph": c.Display.PointGlyph,
	} {
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("display.%s must be a single character, got %q", name, glyph)
		}
	}
	if len(c.Display.Bands) == 0 {
		return errors.New("display.bands must not be empty")
	}
	for i, b := range c.Display.Bands {
		if b.Min < 0 || b.Max > 100 || b.Min >= b.Max {
			return fmt.Errorf("display.bands[%d] range [%d, %d) must satisfy 0 <= min < max <= 100", i, b.Min, b.Max)
		}
		if b.Color == "" {
			return fmt.Errorf("display.bands[%d] has no color", i)
		}
	}

	if c.Analysis.BandCut <= 0 || c.Analysis.BandCut > 1 {
		return fmt.Errorf("analysis.band_cut must be within (0, 1], got %g", c.Analysis.BandCut)
	}
	if c.Analysis.BarScale <= 0 || c.Analysis.FountainScale <= 0 || c.Analysis.WaveScale <= 0 {
		return errors.New("analysis scales must be positive")
	}
	if c.Analysis.Divisor < 0 {
		return fmt.Errorf("analysis.divisor must not be negative, got %g", c.Analysis.Divisor)
	}

	if c.Recording.Enabled && c.Recording.OutputFile == "" {
		return errors.New("recording.output_file must be set when recording is enabled")
	}
	if c.Transport.WebSocketEnabled && c.Transport.WebSocketAddr == "" {
		return errors.New("transport.websocket_addr must be set when the websocket transport is enabled")
	}
	if c.Transport.UDPEnabled && c.Transport.UDPTargetAddress == "" {
		return errors.New("transport.udp_target_address must be set when UDP is enabled")
	}

	return nil
}

// applyEnvOverrides applies NAUSEA_* variables on top of file values.
// Malformed values are ignored.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("NAUSEA_FIFO"); ok && val != "" {
		c.Audio.FIFO = val
	}
	if val, ok := os.LookupEnv("NAUSEA_FPS"); ok {
		if n, err := strconv.Atoi(val); err == nil {
			c.Display.FPS = n
		}
	}
	if val, ok := os.LookupEnv("NAUSEA_COLORS"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Display.Colors = b
		}
	}
	if val, ok := os.LookupEnv("NAUSEA_LOG_LEVEL"); ok && val != "" {
		c.LogLevel = val
	}
}
