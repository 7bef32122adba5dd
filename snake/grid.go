package snake

import (
	"fmt"
	"math/rand"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

// MinGridSize 地图最小边长，保证初始的三格蛇和安全区能放下
const MinGridSize = 5

// Grid 地图尺寸（格子数）
type Grid struct {
	Width  int
	Height int
}

// NewGrid 检查尺寸并返回地图
func NewGrid(width, height int) (Grid, error) {
	if width < MinGridSize || height < MinGridSize {
		return Grid{}, fmt.Errorf("grid %dx%d is smaller than %dx%d", width, height, MinGridSize, MinGridSize)
	}
	return Grid{Width: width, Height: height}, nil
}

// Contains 判断位置是否在地图内
func (g Grid) Contains(p structs.Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Center 地图中心
func (g Grid) Center() structs.Position {
	return structs.Position{X: g.Width / 2, Y: g.Height / 2}
}

// RandomPosition 在地图内均匀随机取一个格子
func (g Grid) RandomPosition(rng *rand.Rand) structs.Position {
	return structs.Position{
		X: rng.Intn(g.Width),
		Y: rng.Intn(g.Height),
	}
}

// Near 判断两个格子在两个轴上的距离是否都小于 radius
func Near(a, b structs.Position, radius int) bool {
	return abs(a.X-b.X) < radius && abs(a.Y-b.Y) < radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// positionOverlap 检查位置是否和蛇身或障碍物重叠
func positionOverlap(s *structs.GameSession, pos structs.Position) bool {
	for _, seg := range s.Snake {
		if seg == pos {
			return true
		}
	}
	return obstacleAt(s.Obstacles, pos)
}

func obstacleAt(obstacles []structs.Obstacle, pos structs.Position) bool {
	for _, obs := range obstacles {
		if obs.Position == pos {
			return true
		}
	}
	return false
}
