// SPDX-License-Identifier: MIT
package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TcellSurface is a Surface backed by a tcell screen. A goroutine pumps
// screen events into a channel so PollKey can wait with a timeout.
type TcellSurface struct {
	screen tcell.Screen
	styles []tcell.Style // ...index 0 is the uncolored style
	events chan tcell.Event
	quit   chan struct{}
	once   sync.Once
}

var _ Surface = (*TcellSurface)(nil)

// NewTcellSurface takes over the controlling terminal.
func NewTcellSurface() (*TcellSurface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return newSurface(screen)
}

// NewSimulation returns a surface drawing into an in-memory screen of the
// given size, along with the screen for inspection.
func NewSimulation(cols, rows int) (*TcellSurface, tcell.SimulationScreen, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	s, err := newSurface(screen)
	if err != nil {
		return nil, nil, err
	}
	screen.SetSize(cols, rows)
	return s, screen, nil
}

func newSurface(screen tcell.Screen) (*TcellSurface, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	screen.Clear()

	s := &TcellSurface{
		screen: screen,
		styles: []tcell.Style{tcell.StyleDefault.Bold(true)},
		events: make(chan tcell.Event, 32),
		quit:   make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

func (s *TcellSurface) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.quit:
			return
		}
	}
}

// Size implements Surface.
func (s *TcellSurface) Size() (int, int) {
	return s.screen.Size()
}

// SetCell implements Canvas. Cells outside the screen are ignored by tcell;
// an unregistered pair falls back to the uncolored style.
func (s *TcellSurface) SetCell(x, y int, glyph rune, pair ColorPair) {
	style := s.styles[0]
	if int(pair) > 0 && int(pair) < len(s.styles) {
		style = s.styles[pair]
	}
	s.screen.SetContent(x, y, glyph, nil, style)
}

// Clear implements Canvas.
func (s *TcellSurface) Clear() {
	s.screen.Clear()
}

// Show implements Surface.
func (s *TcellSurface) Show() {
	s.screen.Show()
}

// PollKey implements Surface. Resize events are consumed here and trigger
// a full redraw.
func (s *TcellSurface) PollKey(timeout time.Duration) (rune, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case ev := <-s.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if r, ok := keyRune(ev); ok {
					return r, true
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		case <-timer.C:
			return 0, false
		}
	}
}

func keyRune(ev *tcell.EventKey) (rune, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyQuit, true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
			return KeyQuit, true
		}
		return ev.Rune(), true
	}
	return 0, false
}

// HasColors implements Surface.
func (s *TcellSurface) HasColors() bool {
	return s.screen.Colors() >= 8
}

// InitColors implements Surface.
func (s *TcellSurface) InitColors(palette []string) error {
	if !s.HasColors() {
		return ErrNoColors
	}

	styles := s.styles[:1]
	for _, name := range palette {
		c := tcell.GetColor(name)
		if c == tcell.ColorDefault {
			return fmt.Errorf("unknown color %q", name)
		}
		styles = append(styles, s.styles[0].Foreground(c))
	}
	s.styles = styles
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (s *TcellSurface) Close() error {
	s.once.Do(func() {
		close(s.quit)
		s.screen.Fini()
	})
	return nil
}
