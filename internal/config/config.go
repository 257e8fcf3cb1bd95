// SPDX-License-Identifier: MIT
package config

import "time"

// Defaults for every startup parameter. The scale constants have no derivation
// beyond looking right on an 80x24 terminal; they are kept here so they can be
// tuned from the config file rather than baked into the renderers.
const (
	DefaultSource     = SourceFIFO
	DefaultFIFO       = "/tmp/audio.fifo"
	DefaultDeviceID   = MinDeviceID // System default capture device
	DefaultSampleRate = 44100       // Only used for device capture and recordings
	DefaultChannels   = 2           // Interleaved stereo
	DefaultWindow     = 2048        // Mono frames per tick fed to the transform
	DefaultFPS        = 25
	DefaultMode       = "bars"

	DefaultFFTWindow     = "rectangular"
	DefaultBandCut       = 0.5 // Leading fraction of bins spread across the columns
	DefaultBarScale      = 0.2
	DefaultFountainScale = 0.3
	DefaultWaveScale     = 0.8
	DefaultDivisor       = 0 // 0 selects window/2; 100000 reproduces the legacy viewer

	DefaultPeakDrop  = 1 // Rows a peak falls per step
	DefaultPeakEvery = 1 // Ticks between steps

	DefaultBarGlyph   = "|"
	DefaultPeakGlyph  = "."
	DefaultPointGlyph = "="

	DefaultDirection = DirectionRight
	DefaultLogLevel  = "info"

	DefaultWebSocketAddr    = "127.0.0.1:8080"
	DefaultUDPTargetAddress = "127.0.0.1:9090"

	MinDeviceID = -1 // -1 represents the system default device
	MinChannels = 1
	MaxChannels = 2
	MinFPS      = 1
	MaxFPS      = 240
	MinWindow   = 64
	MaxWindow   = 1 << 17
)

// Audio sources.
const (
	SourceFIFO   = "fifo"
	SourceDevice = "device"
)

// Fountain scroll directions.
const (
	DirectionRight = "right"
	DirectionLeft  = "left"
)

// Config holds every runtime option. It is assembled from built-in defaults,
// an optional YAML file, environment overrides and finally command line flags.
type Config struct {
	LogLevel string `yaml:"log_level"`          // debug, info, warn, error
	LogFile  string `yaml:"log_file,omitempty"` // Log destination while the visualizer owns the terminal.
	Verbose  bool   `yaml:"verbose"`            // Shorthand for log_level=debug.

	Command string `yaml:"-"` // One-off command (e.g. "list") instead of the visualizer.
	TUIMode bool   `yaml:"-"` // Run the visualizer.

	Audio     AudioConfig     `yaml:"audio"`
	Display   DisplayConfig   `yaml:"display"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Recording RecordingConfig `yaml:"recording"`
	Transport TransportConfig `yaml:"transport"`
}

// AudioConfig describes where PCM comes from and how it is framed.
type AudioConfig struct {
	Source        string  `yaml:"source"`         // "fifo" or "device".
	FIFO          string  `yaml:"fifo"`           // Path of the named pipe.
	InputDevice   int     `yaml:"input_device"`   // PortAudio device index (-1 for default).
	SampleRate    float64 `yaml:"sample_rate"`    // Capture and recording rate in Hz.
	Channels      int     `yaml:"channels"`       // 1 (mono) or 2 (interleaved stereo).
	Window        int     `yaml:"window"`         // Mono frames per tick, power of two.
	GateThreshold float64 `yaml:"gate_threshold"` // 0-1 of full scale; 0 disables the gate.
}

// DisplayConfig holds the initial values of the live toggles and the glyphs.
type DisplayConfig struct {
	FPS        int          `yaml:"fps"`
	Mode       string       `yaml:"mode"` // bars, wave or fountain.
	Colors     bool         `yaml:"colors"`
	Peaks      bool         `yaml:"peaks"`
	Keep       bool         `yaml:"keep"`      // Fountain columns hold their height.
	Bounce     bool         `yaml:"bounce"`    // Fountain cursor reverses at the edges.
	Direction  string       `yaml:"direction"` // Fountain cursor direction.
	PeakDrop   int          `yaml:"peak_drop"`
	PeakEvery  int          `yaml:"peak_every"`
	BarGlyph   string       `yaml:"bar_glyph"`
	PeakGlyph  string       `yaml:"peak_glyph"`
	PointGlyph string       `yaml:"point_glyph"`
	Bands      []BandConfig `yaml:"bands"`
}

// BandConfig colors the rows between Min and Max percent of the screen
// height, measured from the top.
type BandConfig struct {
	Min   int    `yaml:"min"`
	Max   int    `yaml:"max"`
	Color string `yaml:"color"`
}

// AnalysisConfig holds the transform and scaling constants.
type AnalysisConfig struct {
	FFTWindow     string  `yaml:"fft_window"` // rectangular, hann, hamming, ...
	BandCut       float64 `yaml:"band_cut"`
	BarScale      float64 `yaml:"bar_scale"`
	FountainScale float64 `yaml:"fountain_scale"`
	WaveScale     float64 `yaml:"wave_scale"`
	Divisor       float64 `yaml:"divisor"`
}

// RecordingConfig controls the WAV tap of the raw input.
type RecordingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	OutputFile string `yaml:"output_file"`
}

// TransportConfig controls the per-tick broadcast of column values.
type TransportConfig struct {
	WebSocketEnabled bool          `yaml:"websocket_enabled"`
	WebSocketAddr    string        `yaml:"websocket_addr"`
	UDPEnabled       bool          `yaml:"udp_enabled"`
	UDPTargetAddress string        `yaml:"udp_target_address"`
	MinSendInterval  time.Duration `yaml:"min_send_interval"`
}

// DefaultBands returns the classic red/yellow/green split.
func DefaultBands() []BandConfig {
	return []BandConfig{
		{Min: 0, Max: 20, Color: "red"},
		{Min: 20, Max: 60, Color: "yellow"},
		{Min: 60, Max: 100, Color: "green"},
	}
}

// NewConfig creates a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Audio: AudioConfig{
			Source:      DefaultSource,
			FIFO:        DefaultFIFO,
			InputDevice: DefaultDeviceID,
			SampleRate:  DefaultSampleRate,
			Channels:    DefaultChannels,
			Window:      DefaultWindow,
		},
		Display: DisplayConfig{
			FPS:        DefaultFPS,
			Mode:       DefaultMode,
			Direction:  DefaultDirection,
			PeakDrop:   DefaultPeakDrop,
			PeakEvery:  DefaultPeakEvery,
			BarGlyph:   DefaultBarGlyph,
			PeakGlyph:  DefaultPeakGlyph,
			PointGlyph: DefaultPointGlyph,
			Bands:      DefaultBands(),
		},
		Analysis: AnalysisConfig{
			FFTWindow:     DefaultFFTWindow,
			BandCut:       DefaultBandCut,
			BarScale:      DefaultBarScale,
			FountainScale: DefaultFountainScale,
			WaveScale:     DefaultWaveScale,
			Divisor:       DefaultDivisor,
		},
		Transport: TransportConfig{
			WebSocketAddr:    DefaultWebSocketAddr,
			UDPTargetAddress: DefaultUDPTargetAddress,
			MinSendInterval:  40 * time.Millisecond,
		},
	}
}

// FramePeriod is the tick length, which is also the key poll timeout.
func (c *Config) FramePeriod() time.Duration {
	return time.Second / time.Duration(c.Display.FPS)
}
