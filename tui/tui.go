// Package tui is the terminal front end: it turns key presses into game
// inputs and draws snapshots and the scoreboard with tcell.
package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

// two columns per cell keep cells roughly square
const cellWidth = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorDarkOliveGreen)
	styleHead   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x2d, 0x50, 0x16)).Background(tcell.NewRGBColor(0x6b, 0x9d, 0x3a))
	styleBody   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x4a, 0x7c, 0x2c))
	styleFood   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0x8c, 0x42))
	styleTree   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStone  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

const (
	runeHead  = '█'
	runeBody  = '▓'
	runeFood  = '●'
	runeTree  = '♣'
	runeStone = '◆'
)

// Screen draws the game into a tcell screen. Render and Present are called
// from the game loop; the key pump runs on its own goroutine.
type Screen struct {
	screen   tcell.Screen
	done     chan struct{}
	finiOnce sync.Once

	mu    sync.Mutex
	snap  structs.Snapshot
	board structs.Scoreboard
	drawn bool
}

// New wraps an initialised tcell screen.
func New(screen tcell.Screen) *Screen {
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	return &Screen{screen: screen, done: make(chan struct{})}
}

// Open creates and initialises the terminal screen.
func Open() (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return New(screen), nil
}

// Fini restores the terminal and stops the key pump. Safe to call twice.
func (s *Screen) Fini() {
	s.finiOnce.Do(func() {
		close(s.done)
		s.screen.Fini()
	})
}

// Render draws the board. The snapshot is copied so a later resize can
// redraw it.
func (s *Screen) Render(snap structs.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = structs.Snapshot{
		Width:     snap.Width,
		Height:    snap.Height,
		Snake:     append([]structs.Position(nil), snap.Snake...),
		Direction: snap.Direction,
		Food:      snap.Food,
		Obstacles: append([]structs.Obstacle(nil), snap.Obstacles...),
		Score:     snap.Score,
		Level:     snap.Level,
		LevelName: snap.LevelName,
		Running:   snap.Running,
	}
	s.drawn = true
	s.redraw()
}

// Present updates the status lines.
func (s *Screen) Present(board structs.Scoreboard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board = board
	s.redraw()
}

func (s *Screen) redraw() {
	s.screen.Clear()
	if s.drawn {
		s.drawBoard()
	}
	s.drawStatus()
	s.screen.Show()
}

func (s *Screen) drawBoard() {
	snap := s.snap
	w := snap.Width*cellWidth + 2
	h := snap.Height + 2

	for x := 0; x < w; x++ {
		s.screen.SetContent(x, 0, tcell.RuneHLine, nil, styleBorder)
		s.screen.SetContent(x, h-1, tcell.RuneHLine, nil, styleBorder)
	}
	for y := 0; y < h; y++ {
		s.screen.SetContent(0, y, tcell.RuneVLine, nil, styleBorder)
		s.screen.SetContent(w-1, y, tcell.RuneVLine, nil, styleBorder)
	}
	s.screen.SetContent(0, 0, tcell.RuneULCorner, nil, styleBorder)
	s.screen.SetContent(w-1, 0, tcell.RuneURCorner, nil, styleBorder)
	s.screen.SetContent(0, h-1, tcell.RuneLLCorner, nil, styleBorder)
	s.screen.SetContent(w-1, h-1, tcell.RuneLRCorner, nil, styleBorder)

	for _, obs := range snap.Obstacles {
		if obs.Kind == structs.Stone {
			s.setCell(obs.Position, runeStone, styleStone)
		} else {
			s.setCell(obs.Position, runeTree, styleTree)
		}
	}
	s.setCell(snap.Food, runeFood, styleFood)
	for i := len(snap.Snake) - 1; i >= 1; i-- {
		s.setCell(snap.Snake[i], runeBody, styleBody)
	}
	if len(snap.Snake) > 0 {
		s.setCell(snap.Snake[0], runeHead, styleHead)
	}
}

// setCell draws both columns of a grid cell, offset by the border.
func (s *Screen) setCell(p structs.Position, r rune, style tcell.Style) {
	x, y := CellOrigin(p)
	for i := 0; i < cellWidth; i++ {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// CellOrigin is the terminal column and row of the left half of p.
func CellOrigin(p structs.Position) (int, int) {
	return 1 + p.X*cellWidth, 1 + p.Y
}

func (s *Screen) drawStatus() {
	row := 0
	if s.drawn {
		row = s.snap.Height + 2
	}
	b := s.board
	s.drawText(0, row, styleStatus, fmt.Sprintf("Score: %d   Level: %d %s   High Score: %d", b.Score, b.Level, b.LevelName, b.HighScore))

	switch {
	case b.GameOver:
		s.drawText(0, row+1, styleAlert, fmt.Sprintf("GAME OVER  final score %d, level %d", b.FinalScore, b.FinalLevel))
		s.drawText(0, row+2, styleStatus, "Space: play again   Esc: quit")
	case !s.drawn:
		s.drawText(0, row+1, styleStatus, "Jungle Snake   Space: start   arrows: steer   Esc: quit")
	}
}

func (s *Screen) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// TranslateKey maps a key press to a game input. Unknown keys map to
// InputNone.
func TranslateKey(key tcell.Key, r rune) structs.Input {
	switch key {
	case tcell.KeyUp:
		return structs.InputUp
	case tcell.KeyDown:
		return structs.InputDown
	case tcell.KeyLeft:
		return structs.InputLeft
	case tcell.KeyRight:
		return structs.InputRight
	case tcell.KeyEnter:
		return structs.InputConfirm
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return structs.InputQuit
	case tcell.KeyRune:
		switch r {
		case ' ':
			return structs.InputConfirm
		case 'w', 'W':
			return structs.InputUp
		case 's', 'S':
			return structs.InputDown
		case 'a', 'A':
			return structs.InputLeft
		case 'd', 'D':
			return structs.InputRight
		case 'q', 'Q':
			return structs.InputQuit
		}
	}
	return structs.InputNone
}

// Keys pumps terminal events into a channel of game inputs. The channel is
// closed once the screen is finalised, even if nobody reads it any more.
func (s *Screen) Keys() <-chan structs.Input {
	inputs := make(chan structs.Input, 16)
	go func() {
		defer close(inputs)
		for {
			ev := s.screen.PollEvent()
			switch ev := ev.(type) {
			case nil:
				return
			case *tcell.EventKey:
				in := TranslateKey(ev.Key(), ev.Rune())
				if in == structs.InputNone {
					continue
				}
				select {
				case inputs <- in:
				case <-s.done:
					return
				}
			case *tcell.EventResize:
				s.screen.Sync()
				s.mu.Lock()
				s.redraw()
				s.mu.Unlock()
			}
		}
	}()
	return inputs
}
