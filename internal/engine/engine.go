// SPDX-License-Identifier: MIT
/*
Package engine runs the visualizer: a single-threaded loop that, once per
frame period, polls for a key, reads one audio window, renders the active
mode and flushes the surface.

Everything mutable is owned by the loop. The only goroutines are the ones
confined to the render surface and the transports.
*/
package engine

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"nausea/internal/analysis"
	"nausea/internal/audio"
	"nausea/internal/config"
	"nausea/internal/fft"
	"nausea/internal/log"
	"nausea/internal/render"
	"nausea/internal/transport"
	"nausea/internal/visual"
)

type Engine struct {
	config *config.Config

	// Input.
	source   audio.Source
	frame    *audio.Frame
	gate     *audio.Gate
	recorder *audio.Recorder

	// Analysis and drawing.
	transform *fft.Transform
	modes     *visual.Registry
	session   *visual.Session
	view      visual.Frame

	// Output.
	surface   render.Surface
	transport transport.Transport

	ticks uint64
}

// Option configures optional collaborators.
type Option func(*Engine)

// WithTransport broadcasts the column values of every tick. The engine
// closes the transport.
func WithTransport(t transport.Transport) Option {
	return func(e *Engine) { e.transport = t }
}

// WithRecorder copies the raw input of every tick to r. The engine closes
// the recorder.
func WithRecorder(r *audio.Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// New wires an engine reading from source and drawing on surface. It fails
// with render.ErrNoColors when colors are requested on a surface without
// them.
func New(cfg *config.Config, source audio.Source, surface render.Surface, opts ...Option) (*Engine, error) {
	frame, err := audio.NewFrame(cfg.Audio.Window, cfg.Audio.Channels)
	if err != nil {
		return nil, err
	}

	windowType, err := fft.ParseWindowFunc(cfg.Analysis.FFTWindow)
	if err != nil {
		return nil, err
	}
	transform, err := fft.NewTransform(cfg.Audio.Window, windowType)
	if err != nil {
		return nil, err
	}

	scaler, err := analysis.NewScaler(cfg.Audio.Window, transform.Bins(), cfg.Analysis.BandCut, cfg.Analysis.Divisor)
	if err != nil {
		return nil, err
	}

	kind, err := visual.ParseKind(cfg.Display.Mode)
	if err != nil {
		return nil, err
	}

	glyphs := visual.Glyphs{
		Bar:   firstRune(cfg.Display.BarGlyph, '|'),
		Peak:  firstRune(cfg.Display.PeakGlyph, '.'),
		Point: firstRune(cfg.Display.PointGlyph, '='),
	}

	e := &Engine{
		config:    cfg,
		source:    source,
		frame:     frame,
		gate:      audio.NewGate(cfg.Audio.GateThreshold),
		transform: transform,
		modes: visual.NewRegistry(
			visual.NewBars(scaler, cfg.Analysis.BarScale, glyphs),
			visual.NewWave(cfg.Analysis.WaveScale, glyphs),
			visual.NewFountain(scaler, cfg.Analysis.FountainScale, glyphs),
		),
		session: newSession(cfg, kind),
		surface: surface,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.initColors(); err != nil {
		return nil, err
	}

	log.Infof("Engine: window %d (%d bins, %d shown), %s window, mode %s, %d fps",
		cfg.Audio.Window, transform.Bins(), scaler.UsableBins(), windowType, kind, cfg.Display.FPS)
	return e, nil
}

func newSession(cfg *config.Config, kind visual.Kind) *visual.Session {
	s := visual.NewSession(kind)
	s.Colors = cfg.Display.Colors
	s.Peaks = cfg.Display.Peaks
	s.Keep = cfg.Display.Keep
	s.Bounce = cfg.Display.Bounce
	s.PeakState = visual.NewPeakTracker(cfg.Display.PeakDrop, cfg.Display.PeakEvery)

	if cfg.Display.Direction == config.DirectionLeft {
		s.Fountain = visual.NewFountainState(visual.Left)
	}

	if len(cfg.Display.Bands) > 0 {
		bands := make([]visual.Band, len(cfg.Display.Bands))
		for i, b := range cfg.Display.Bands {
			bands[i] = visual.Band{Min: b.Min, Max: b.Max, Color: b.Color}
		}
		s.Bands = visual.NewColorBands(bands...)
	}
	return s
}

// initColors registers the band palette once so the color toggle works at
// any time.
func (e *Engine) initColors() error {
	if !e.surface.HasColors() {
		e.session.ColorCapable = false
		if e.session.Colors {
			return render.ErrNoColors
		}
		return nil
	}

	if err := e.surface.InitColors(e.session.Bands.Palette()); err != nil {
		if e.session.Colors {
			return fmt.Errorf("failed to register colors: %w", err)
		}
		log.Warnf("Engine: colors disabled: %v", err)
		e.session.ColorCapable = false
	}
	return nil
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}

// Session exposes the live state, mainly for tests.
func (e *Engine) Session() *visual.Session {
	return e.session
}

// Ticks returns the number of frames rendered.
func (e *Engine) Ticks() uint64 {
	return e.ticks
}

// HandleKey applies one live control.
func (e *Engine) HandleKey(key rune) {
	e.session.HandleKey(key)
}

// Tick reads one window and draws it.
func (e *Engine) Tick() {
	cols, rows := e.surface.Size()

	e.frame.Acquire(e.source)
	e.recorder.Write(e.frame.Raw())
	e.gate.Apply(e.frame.Samples)

	mode, ok := e.modes.Lookup(e.session.Mode)
	if !ok {
		mode, _ = e.modes.Lookup(visual.Bars)
	}

	e.view.Samples = e.frame.Samples
	e.view.Got = e.frame.Got
	if mode.Spectral() {
		e.view.Bins = e.transform.Compute(e.frame.Samples)
	}

	values := mode.Render(&e.view, visual.Geometry{Columns: cols, Rows: rows}, e.session, e.surface)
	e.surface.Show()
	e.ticks++

	if values != nil && e.transport != nil {
		if err := e.transport.Send(values); err != nil {
			log.Debugf("Engine: broadcast failed: %v", err)
		}
	}
}

// Run ticks until the quit key is pressed or ctx is cancelled. Each tick
// waits at most one frame period for a key.
func (e *Engine) Run(ctx context.Context) error {
	period := e.config.FramePeriod()
	log.Debugf("Engine: running at %s per frame", period)

	for !e.session.Quit {
		if ctx.Err() != nil {
			log.Debugf("Engine: stopping: %v", context.Cause(ctx))
			return nil
		}

		if key, ok := e.surface.PollKey(period); ok {
			e.session.HandleKey(key)
			if e.session.Quit {
				break
			}
		}

		e.Tick()
	}

	log.Debugf("Engine: quit after %d ticks", e.ticks)
	return nil
}

// Close releases the recorder and the transport. The source and surface
// belong to the caller.
func (e *Engine) Close() error {
	var errs []error
	if err := e.recorder.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to finalize recording: %w", err))
	}
	if e.transport != nil {
		if err := e.transport.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
