package session

import (
	"context"
	"log"

	"github.com/hoshinonyaruko/jungle-snake/snake"
	"github.com/hoshinonyaruko/jungle-snake/structs"
)

// HighScoreStore is the key/value collaborator holding the high score.
// A missing key reads as absent; write failures are reported but never
// interrupt the game.
type HighScoreStore interface {
	Get(key string) (int, bool)
	Set(key string, value int) error
}

// Renderer consumes a snapshot after every tick. It must not keep or mutate
// the slices beyond the call.
type Renderer interface {
	Render(snap structs.Snapshot)
}

// Presenter shows score, level and high score.
type Presenter interface {
	Present(board structs.Scoreboard)
}

// Listener receives tick events in emission order.
type Listener interface {
	OnEvent(ev structs.Event)
}

// GameOverHook runs once per finished game with the final frame.
type GameOverHook func(snap structs.Snapshot, board structs.Scoreboard)

// Controller starts, restarts and ends games and drives ticks at the
// current level interval.
type Controller struct {
	engine    *snake.Engine
	store     HighScoreStore
	key       string
	scheduler Scheduler

	renderers []Renderer
	presenter Presenter
	listeners []Listener
	hooks     []GameOverHook

	highScore int
	board     structs.Scoreboard
	resize    chan snake.Grid
}

// New creates a controller and reads the stored high score.
func New(engine *snake.Engine, store HighScoreStore, key string) *Controller {
	c := &Controller{
		engine:    engine,
		store:     store,
		key:       key,
		scheduler: NewTimerScheduler(),
		resize:    make(chan snake.Grid, 1),
	}
	if v, ok := store.Get(key); ok {
		c.highScore = v
	}
	first := engine.Levels()[0]
	c.board = structs.Scoreboard{
		Level:     1,
		LevelName: first.Name,
		HighScore: c.highScore,
	}
	return c
}

func (c *Controller) SetScheduler(s Scheduler) {
	c.scheduler = s
}

func (c *Controller) AddRenderer(r Renderer) {
	c.renderers = append(c.renderers, r)
}

func (c *Controller) SetPresenter(p Presenter) {
	c.presenter = p
	c.present()
}

func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Controller) OnGameOver(h GameOverHook) {
	c.hooks = append(c.hooks, h)
}

// Resize queues a grid change for the next Start. Safe to call from any
// goroutine; only the latest pending grid is kept.
func (c *Controller) Resize(grid snake.Grid) {
	for {
		select {
		case c.resize <- grid:
			return
		default:
		}
		select {
		case <-c.resize:
		default:
		}
	}
}

func (c *Controller) Running() bool {
	return c.engine.Running()
}

func (c *Controller) HighScore() int {
	return c.highScore
}

func (c *Controller) Scoreboard() structs.Scoreboard {
	return c.board
}

// Start begins a fresh game and arms the first tick.
func (c *Controller) Start() {
	c.applyResize()
	c.engine.Reset()

	rule := c.engine.Level()
	c.board = structs.Scoreboard{
		Score:     0,
		Level:     1,
		LevelName: rule.Name,
		HighScore: c.highScore,
	}
	c.present()
	c.render()
	c.scheduler.Arm(rule.TickInterval)
}

// Restart is Start after a finished game.
func (c *Controller) Restart() {
	c.Start()
}

// HandleInput routes one input. It reports true when the player asked to
// quit. While no game runs only the confirm input matters.
func (c *Controller) HandleInput(in structs.Input) bool {
	if in == structs.InputQuit {
		return true
	}
	if !c.Running() {
		if in == structs.InputConfirm {
			c.Start()
		}
		return false
	}
	c.engine.HandleInput(in)
	return false
}

// Step runs one tick: update, notify, render, then re-arm with the current
// level interval.
func (c *Controller) Step() {
	if !c.Running() {
		return
	}

	res := c.engine.Tick()
	for _, ev := range res.Events {
		for _, l := range c.listeners {
			l.OnEvent(ev)
		}
	}
	c.render()

	switch res.Outcome {
	case snake.OutcomeCollided:
		c.gameOver()
		return
	case snake.OutcomeGrew:
		snap := c.engine.Snapshot()
		c.board.Score = snap.Score
		c.board.Level = snap.Level
		c.board.LevelName = snap.LevelName
		c.present()
	}
	c.scheduler.Arm(c.engine.Level().TickInterval)
}

// gameOver stops the timer and saves the high score. The session stays
// readable for the final display.
func (c *Controller) gameOver() {
	c.scheduler.Stop()
	snap := c.engine.Snapshot()

	if snap.Score > c.highScore {
		c.highScore = snap.Score
		if err := c.store.Set(c.key, c.highScore); err != nil {
			log.Printf("saving high score %d: %v", c.highScore, err)
		}
	}

	c.board.Score = snap.Score
	c.board.Level = snap.Level
	c.board.LevelName = snap.LevelName
	c.board.HighScore = c.highScore
	c.board.GameOver = true
	c.board.FinalScore = snap.Score
	c.board.FinalLevel = snap.Level
	c.present()

	for _, h := range c.hooks {
		h(snap, c.board)
	}
}

// Run drives the game from one goroutine: timer fires, inputs and grid
// changes are handled in turn, so a tick never overlaps input handling.
// It returns nil on a quit input or a closed input channel and ctx.Err()
// when the context ends.
func (c *Controller) Run(ctx context.Context, inputs <-chan structs.Input) error {
	defer c.scheduler.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.scheduler.C():
			c.Step()
		case in, ok := <-inputs:
			if !ok {
				return nil
			}
			if c.HandleInput(in) {
				return nil
			}
		}
	}
}

func (c *Controller) applyResize() {
	select {
	case grid := <-c.resize:
		c.engine.Resize(grid)
	default:
	}
}

func (c *Controller) render() {
	if len(c.renderers) == 0 {
		return
	}
	snap := c.engine.Snapshot()
	for _, r := range c.renderers {
		r.Render(snap)
	}
}

func (c *Controller) present() {
	if c.presenter != nil {
		c.presenter.Present(c.board)
	}
}
