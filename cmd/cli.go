// SPDX-License-Identifier: MIT
//
// Package cmd turns the command line into a validated configuration.
package cmd

import (
	"fmt"
	"time"

	"nausea/internal/config"
	"nausea/pkg/build"

	"github.com/spf13/cobra"
)

// CommandList is the one-off command that lists capture devices.
const CommandList = "list"

// flags holds the raw flag values. Only the flags the user actually set
// are copied over the loaded configuration.
type flags struct {
	configPath string

	fps        int
	window     int
	channels   int
	sampleRate float64
	colors     bool
	peaks      bool
	mode       string
	source     string
	device     int

	record bool
	output string

	logLevel string
	logFile  string
	verbose  bool

	plain bool
}

// Options is the result of parsing: the configuration plus the flags that
// only matter to main.
type Options struct {
	*config.Config

	// Plain prints the device list as text instead of the picker.
	Plain bool
}

// ParseArgs parses args (without the program name). A nil Options with a
// nil error means cobra already handled the invocation, as with --help or
// --version.
func ParseArgs(args []string) (*Options, error) {
	buildInfo := build.GetBuildFlags()
	var f flags
	var options *Options

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name + " [fifo]",
		Short:         buildInfo.Description,
		Version:       buildInfo.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		Long: `Draws raw signed 16-bit little-endian PCM as a spectrum, an oscilloscope
or a scrolling fountain.

Keys while running:
  1 2 3  bars, wave, fountain
  c      toggle colors
  p      toggle peaks
  k      toggle fountain keep
  b      toggle fountain bounce
  d      reverse fountain direction
  q      quit`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, &f, args)
			if err != nil {
				return err
			}
			cfg.TUIMode = true
			options = &Options{Config: cfg}
			return nil
		},
	}

	// Display help message
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	listCmd := &cobra.Command{
		Use:   CommandList,
		Short: "List available capture devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, &f, nil)
			if err != nil {
				return err
			}
			cfg.Command = CommandList
			cfg.TUIMode = false
			options = &Options{Config: cfg, Plain: f.plain}
			return nil
		},
	}
	listCmd.Flags().BoolVar(&f.plain, "plain", false, "Print the devices as text instead of the interactive picker")
	rootCmd.AddCommand(listCmd)

	pf := rootCmd.PersistentFlags()

	pf.StringVar(&f.configPath, "config", "",
		"YAML configuration file (default ./"+config.DefaultConfigFile+" when present)")

	// Display
	pf.IntVar(&f.fps, "fps", config.DefaultFPS, "Frames drawn per second")
	pf.BoolVarP(&f.colors, "colors", "c", false, "Start with height-banded colors")
	pf.BoolVarP(&f.peaks, "peaks", "p", false, "Start with peak markers")
	pf.StringVarP(&f.mode, "mode", "m", config.DefaultMode, "Initial mode: bars, wave or fountain")

	// Audio input
	pf.StringVar(&f.source, "source", config.DefaultSource, "Audio source: fifo or device")
	pf.IntVarP(&f.device, "device", "d", config.DefaultDeviceID,
		"Input device ID for the device source. Use the 'list' command to see available devices.")
	pf.IntVar(&f.window, "window", config.DefaultWindow, "Mono frames per tick (power of two)")
	pf.IntVar(&f.channels, "channels", config.DefaultChannels, "Interleaved channels in the stream (1=mono, 2=stereo)")
	pf.Float64VarP(&f.sampleRate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate, measured in Hertz (Hz)")

	// Recording
	pf.BoolVarP(&f.record, "record", "r", false, "Record the raw input to a WAV file")
	pf.StringVarP(&f.output, "output", "o", "", "Output file name. Default is recording-DD-MM-YYYY-HHMMSS.wav")

	// Logging
	pf.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to this file while the visualizer runs")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return options, nil
}

// resolve loads the configuration file and lays the explicitly set flags on
// top of it.
func resolve(cmd *cobra.Command, f *flags, args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed

	if len(args) == 1 {
		cfg.Audio.FIFO = args[0]
		if !changed("source") {
			cfg.Audio.Source = config.SourceFIFO
		}
	}
	if changed("fps") {
		cfg.Display.FPS = f.fps
	}
	if changed("colors") {
		cfg.Display.Colors = f.colors
	}
	if changed("peaks") {
		cfg.Display.Peaks = f.peaks
	}
	if changed("mode") {
		cfg.Display.Mode = f.mode
	}
	if changed("source") {
		cfg.Audio.Source = f.source
	}
	if changed("device") {
		cfg.Audio.InputDevice = f.device
		if !changed("source") && len(args) == 0 {
			cfg.Audio.Source = config.SourceDevice
		}
	}
	if changed("window") {
		cfg.Audio.Window = f.window
	}
	if changed("channels") {
		cfg.Audio.Channels = f.channels
	}
	if changed("sample-rate") {
		cfg.Audio.SampleRate = f.sampleRate
	}
	if changed("record") {
		cfg.Recording.Enabled = f.record
	}
	if changed("output") {
		cfg.Recording.OutputFile = f.output
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}

	// Defaults
	if cfg.Recording.Enabled && cfg.Recording.OutputFile == "" {
		cfg.Recording.OutputFile = "recording-" +
			time.Now().UTC().Format("02-01-2006-150405") + ".wav"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return cfg, nil
}
