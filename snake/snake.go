// 关于蛇的更新
package snake

import (
	"math/rand"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

// FoodScore 每个食物的分数
const FoodScore = 10

// Outcome 一次刷新的结果
type Outcome int

const (
	// OutcomeIdle 没有进行中的游戏
	OutcomeIdle Outcome = iota
	OutcomeMoved
	OutcomeGrew
	OutcomeCollided
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeGrew:
		return "grew"
	case OutcomeCollided:
		return "collided"
	}
	return "idle"
}

// TickResult 一次刷新的结果和按顺序产生的事件
type TickResult struct {
	Outcome Outcome
	Events  []structs.Event
}

// Engine 持有一局游戏的状态，状态只通过 Tick 和 Steer 修改
type Engine struct {
	grid    Grid
	levels  []structs.LevelRule
	rng     *rand.Rand
	placer  *Placer
	session *structs.GameSession
}

// NewEngine 创建引擎，levels 为空时使用默认等级表
func NewEngine(grid Grid, levels []structs.LevelRule, rng *rand.Rand) *Engine {
	if len(levels) == 0 {
		levels = Levels
	}
	return &Engine{
		grid:   grid,
		levels: levels,
		rng:    rng,
		placer: NewPlacer(grid, rng),
	}
}

// Resize 修改地图尺寸，下一次 Reset 时生效
func (e *Engine) Resize(grid Grid) {
	e.grid = grid
}

// Reset 开始新的一局：蛇在中心向右，分数和等级清零，清空障碍物，放一个食物
func (e *Engine) Reset() {
	e.placer = NewPlacer(e.grid, e.rng)
	center := e.grid.Center()

	s := &structs.GameSession{
		Width:  e.grid.Width,
		Height: e.grid.Height,
		Snake: []structs.Position{
			center,
			{X: center.X - 1, Y: center.Y},
			{X: center.X - 2, Y: center.Y},
		},
		Direction: structs.Right,
		Pending:   structs.Right,
		Obstacles: []structs.Obstacle{},
		Score:     0,
		Level:     1,
		Running:   true,
	}
	s.Food = e.placer.PlaceFood(s)
	e.session = s
}

// Tick 执行一次刷新，每次只会发生撞击、变长、移动三者之一
func (e *Engine) Tick() TickResult {
	s := e.session
	if s == nil || !s.Running {
		return TickResult{Outcome: OutcomeIdle}
	}

	// 刷新时直接采用缓存的方向，反向检查只在输入时进行
	s.Direction = s.Pending
	newHead := s.Head().Add(s.Direction)

	if cause := e.collision(newHead); cause != structs.CauseNone {
		s.Running = false
		return TickResult{
			Outcome: OutcomeCollided,
			Events: []structs.Event{{
				Type:  structs.EventGameOver,
				At:    newHead,
				Score: s.Score,
				Level: s.Level,
				Cause: cause,
			}},
		}
	}

	ate := newHead == s.Food
	body := s.Snake
	if !ate {
		// 没吃到食物时去掉尾巴
		body = body[:len(body)-1]
	}
	snake := make([]structs.Position, 0, len(body)+1)
	snake = append(snake, newHead)
	snake = append(snake, body...)
	s.Snake = snake

	if !ate {
		return TickResult{Outcome: OutcomeMoved}
	}

	s.Score += FoodScore
	events := []structs.Event{{
		Type:  structs.EventFoodEaten,
		At:    newHead,
		Score: s.Score,
		Level: s.Level,
	}}
	s.Food = e.placer.PlaceFood(s)
	if up, ok := e.checkLevelUp(); ok {
		events = append(events, up)
	}
	return TickResult{Outcome: OutcomeGrew, Events: events}
}

// collision 按墙、自身、障碍物的顺序检查新蛇头
func (e *Engine) collision(newHead structs.Position) structs.CollisionCause {
	s := e.session
	if !e.grid.Contains(newHead) {
		return structs.CauseWall
	}
	// 和移动前的整条蛇比较，包括蛇头和尾巴
	for _, seg := range s.Snake {
		if seg == newHead {
			return structs.CauseSelf
		}
	}
	if obstacleAt(s.Obstacles, newHead) {
		return structs.CauseObstacle
	}
	return structs.CauseNone
}

// checkLevelUp 等级只升不降，升级时整体重新生成障碍物
func (e *Engine) checkLevelUp() (structs.Event, bool) {
	s := e.session
	level := LevelNumber(e.levels, s.Score)
	if level <= s.Level {
		return structs.Event{}, false
	}

	s.Level = level
	rule := e.levels[level-1]
	s.Obstacles = e.placer.PlaceObstacles(s, rule.Obstacles)
	return structs.Event{
		Type:  structs.EventLevelUp,
		At:    s.Head(),
		Score: s.Score,
		Level: s.Level,
	}, true
}

// Level 返回当前分数对应的等级规则，决定下一次刷新的间隔
func (e *Engine) Level() structs.LevelRule {
	if e.session == nil {
		return e.levels[0]
	}
	return CurrentLevel(e.levels, e.session.Score)
}

// Levels 返回引擎使用的等级表
func (e *Engine) Levels() []structs.LevelRule {
	return e.levels
}

// Running 是否有进行中的游戏
func (e *Engine) Running() bool {
	return e.session != nil && e.session.Running
}

// Session 返回当前状态的拷贝，没有开始过游戏时 ok 为 false
func (e *Engine) Session() (structs.GameSession, bool) {
	if e.session == nil {
		return structs.GameSession{}, false
	}
	s := *e.session
	s.Snake = append([]structs.Position(nil), e.session.Snake...)
	s.Obstacles = append([]structs.Obstacle(nil), e.session.Obstacles...)
	return s, true
}

// Snapshot 返回给绘图使用的只读拷贝
func (e *Engine) Snapshot() structs.Snapshot {
	s, ok := e.Session()
	if !ok {
		return structs.Snapshot{Width: e.grid.Width, Height: e.grid.Height}
	}
	return structs.Snapshot{
		Width:     s.Width,
		Height:    s.Height,
		Snake:     s.Snake,
		Direction: s.Direction,
		Food:      s.Food,
		Obstacles: s.Obstacles,
		Score:     s.Score,
		Level:     s.Level,
		LevelName: e.levels[s.Level-1].Name,
		Running:   s.Running,
	}
}
