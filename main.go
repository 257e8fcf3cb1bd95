// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"nausea/cmd"
	"nausea/internal/audio"
	"nausea/internal/config"
	"nausea/internal/engine"
	"nausea/internal/log"
	"nausea/internal/render"
	"nausea/internal/transport"
	"nausea/internal/tui"
	"nausea/pkg/build"
)

// main is the entry point for the visualizer.
// The program flow is divided into three distinct phases:
//
// 1. Startup Phase (Cold Path):
//   - Initialize build information
//   - Parse command line arguments and the config file
//   - Execute one-off commands if requested
//   - Open the audio source, the terminal and the optional outputs
//
// 2. Hot Path:
//   - One tick per frame period: key, read, analyze, draw, broadcast
//
// 3. Shutdown Phase (Cold Path):
//   - Handle termination signals or the quit key
//   - Restore the terminal
//   - Finalize the recording and close the transports
func main() {
	// ==================== STARTUP PHASE (Cold Path) ====================

	// Development builds have no ldflags; the defaults are good enough.
	if err := build.Initialize(); err != nil {
		log.Debugf("Build info: %v", err)
	}

	opts, err := cmd.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", build.GetBuildFlags().Name, err)
		os.Exit(2)
	}
	// --help or --version
	if opts == nil {
		return
	}

	configureLogLevel(opts.Config)

	if opts.Command != "" {
		if err := executeCommand(opts); err != nil {
			log.Fatalf("%v", err)
		}
		return
	}

	if !opts.TUIMode {
		return
	}

	if err := run(opts.Config); err != nil {
		log.Fatalf("%v", err)
	}
}

// run owns the terminal for the lifetime of the visualizer. Errors are
// returned only after the terminal has been restored.
func run(cfg *config.Config) error {
	closeLog, err := configureLogOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	source, err := audio.Open(cfg.Audio)
	if err != nil {
		return err
	}
	defer source.Close()

	var (
		engineOpts []engine.Option
		recorder   *audio.Recorder
	)

	if cfg.Recording.Enabled {
		recorder, err = audio.StartRecording(cfg.Recording.OutputFile,
			int(cfg.Audio.SampleRate), cfg.Audio.Channels, cfg.Audio.Window*cfg.Audio.Channels)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, engine.WithRecorder(recorder))
	}

	transports, err := openTransports(cfg)
	if err != nil {
		recorder.Close()
		return err
	}
	if len(transports) > 0 {
		engineOpts = append(engineOpts, engine.WithTransport(transports))
	}

	surface, err := render.NewTcellSurface()
	if err != nil {
		recorder.Close()
		transports.Close()
		return err
	}

	eng, err := engine.New(cfg, source, surface, engineOpts...)
	if err != nil {
		surface.Close()
		recorder.Close()
		transports.Close()
		if errors.Is(err, render.ErrNoColors) {
			return errors.New("your terminal does not support color")
		}
		return err
	}

	// ==================== HOT PATH ====================

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := eng.Run(ctx)

	// ==================== SHUTDOWN PHASE (Cold Path) ====================

	surface.Close()

	if err := eng.Close(); err != nil {
		log.Errorf("Error closing engine: %v", err)
	}
	if cfg.Recording.Enabled {
		fmt.Printf("Recording saved to: %s\n", cfg.Recording.OutputFile)
	}

	return runErr
}

func configureLogLevel(cfg *config.Config) {
	level, ok := log.ParseLevel(cfg.LogLevel)
	if !ok {
		log.Warnf("Unknown log level %q, using %s", cfg.LogLevel, level)
	}
	if cfg.Verbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)
}

// configureLogOutput keeps log lines off the grid: they go to the log file
// when one is set and are dropped otherwise. The returned func restores
// stderr so shutdown diagnostics are visible.
func configureLogOutput(cfg *config.Config) (func(), error) {
	restore := log.Writer()

	if cfg.LogFile == "" {
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(restore) }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(restore)
		f.Close()
	}, nil
}

// openTransports creates the enabled broadcast outputs. Verbose runs also
// log every tick's loudest column.
func openTransports(cfg *config.Config) (transport.Multi, error) {
	var ts transport.Multi

	if cfg.Transport.WebSocketEnabled {
		ws, err := transport.NewWebSocketTransport(cfg.Transport.WebSocketAddr, cfg.Transport.MinSendInterval)
		if err != nil {
			return nil, err
		}
		log.Infof("Broadcasting on ws://%s/ws", ws.Addr())
		ts = append(ts, ws)
	}

	if cfg.Transport.UDPEnabled {
		udp, err := transport.NewUDPTransport(cfg.Transport.UDPTargetAddress)
		if err != nil {
			ts.Close()
			return nil, err
		}
		ts = append(ts, udp)
	}

	if cfg.Verbose {
		ts = append(ts, transport.NewLoggingTransport())
	}

	return ts, nil
}

// executeCommand handles one-off commands that don't need the terminal
// grid, such as listing capture devices.
func executeCommand(opts *cmd.Options) error {
	switch opts.Command {
	case cmd.CommandList:
		if opts.Plain {
			devices, err := audio.GetDevices()
			if err != nil {
				return err
			}
			audio.ListDevices(os.Stdout, devices)
			return nil
		}

		selection, err := tui.StartDeviceListUI(audio.GetDevices)
		if err != nil {
			return err
		}
		if selection != nil {
			fmt.Printf("%s %s\n", build.GetBuildFlags().Name, selection.Flags())
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", opts.Command)
	}
}
