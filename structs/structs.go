package structs

import "time"

// Position 描述游戏地图上的一个格子坐标。
type Position struct {
	X int `json:"x"` // X坐标
	Y int `json:"y"` // Y坐标
}

// Add 返回沿方向移动一格后的位置
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction 单位方向向量，永远不是零向量。
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	Up    = Direction{X: 0, Y: -1}
	Down  = Direction{X: 0, Y: 1}
	Left  = Direction{X: -1, Y: 0}
	Right = Direction{X: 1, Y: 0}
)

// Reverse 返回相反方向
func (d Direction) Reverse() Direction {
	return Direction{X: -d.X, Y: -d.Y}
}

func (d Direction) IsZero() bool {
	return d.X == 0 && d.Y == 0
}

// ObstacleKind 障碍物种类，只影响绘图
type ObstacleKind int

const (
	Tree ObstacleKind = iota
	Stone
)

func (k ObstacleKind) String() string {
	if k == Stone {
		return "stone"
	}
	return "tree"
}

// Obstacle 描述一个障碍物
type Obstacle struct {
	Position
	Kind ObstacleKind `json:"kind"`
}

// LevelRule 描述一个等级：最低分数、刷新间隔、障碍物数量、名称
type LevelRule struct {
	MinScore     int           `json:"min_score"`
	TickInterval time.Duration `json:"tick_interval"`
	Obstacles    int           `json:"obstacles"`
	Name         string        `json:"name"`
}

// GameSession 描述一局游戏的全部状态。
type GameSession struct {
	Width     int        `json:"width"`     // 地图宽度（格子数）
	Height    int        `json:"height"`    // 地图高度（格子数）
	Snake     []Position `json:"snake"`     // 蛇身，蛇头在前
	Direction Direction  `json:"direction"` // 当前生效的方向
	Pending   Direction  `json:"pending"`   // 下一次刷新时生效的方向
	Food      Position   `json:"food"`      // 食物位置
	Obstacles []Obstacle `json:"obstacles"` // 障碍物，升级时整体替换
	Score     int        `json:"score"`     // 每个食物加10分
	Level     int        `json:"level"`     // 从1开始，只增不减
	Running   bool       `json:"running"`
	Paused    bool       `json:"paused"` // 保留字段，没有任何规则使用
}

// Head 返回蛇头位置
func (s *GameSession) Head() Position {
	return s.Snake[0]
}

// Snapshot 交给绘图的只读拷贝
type Snapshot struct {
	Width     int
	Height    int
	Snake     []Position
	Direction Direction
	Food      Position
	Obstacles []Obstacle
	Score     int
	Level     int
	LevelName string
	Running   bool
}

// Scoreboard 显示用的分数、等级和最高分，得分和游戏结束后更新
type Scoreboard struct {
	Score      int
	Level      int
	LevelName  string
	HighScore  int
	GameOver   bool
	FinalScore int
	FinalLevel int
}

// EventType 刷新过程中产生的事件种类
type EventType int

const (
	EventFoodEaten EventType = iota
	EventLevelUp
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventFoodEaten:
		return "food_eaten"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// CollisionCause 游戏结束的原因
type CollisionCause int

const (
	CauseNone CollisionCause = iota
	CauseWall
	CauseSelf
	CauseObstacle
)

func (c CollisionCause) String() string {
	switch c {
	case CauseWall:
		return "wall"
	case CauseSelf:
		return "self"
	case CauseObstacle:
		return "obstacle"
	}
	return "none"
}

// Event 描述一次刷新中发生的事情
type Event struct {
	Type  EventType      `json:"type"`
	At    Position       `json:"at"`    // 事件发生的格子
	Score int            `json:"score"` // 事件发生后的分数
	Level int            `json:"level"` // 事件发生后的等级
	Cause CollisionCause `json:"cause"` // 仅 EventGameOver 使用
}

// Input 玩家输入，来自键盘或其他输入源
type Input int

const (
	InputNone Input = iota
	InputUp
	InputDown
	InputLeft
	InputRight
	InputConfirm
	InputQuit
)

// Direction 把方向输入转换成方向向量，非方向输入时 ok 为 false
func (in Input) Direction() (Direction, bool) {
	switch in {
	case InputUp:
		return Up, true
	case InputDown:
		return Down, true
	case InputLeft:
		return Left, true
	case InputRight:
		return Right, true
	}
	return Direction{}, false
}
