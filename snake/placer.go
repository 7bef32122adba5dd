package snake

import (
	"log"
	"math/rand"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

const (
	// maxObstacleAttempts 每个障碍物最多尝试的随机次数
	maxObstacleAttempts = 100
	// spawnBuffer 蛇头周围不放障碍物的范围
	spawnBuffer = 5
)

// Placer 用拒绝采样放置食物和障碍物
type Placer struct {
	grid Grid
	rng  *rand.Rand
}

func NewPlacer(grid Grid, rng *rand.Rand) *Placer {
	return &Placer{grid: grid, rng: rng}
}

// PlaceFood 找一个不在蛇身和障碍物上的格子。
// 没有重试上限，地图几乎被占满时会一直循环。
func (p *Placer) PlaceFood(s *structs.GameSession) structs.Position {
	for {
		pos := p.grid.RandomPosition(p.rng)
		if !positionOverlap(s, pos) {
			return pos
		}
	}
}

// PlaceObstacles 生成一组全新的障碍物，不修改 s。
// 某个障碍物尝试 maxObstacleAttempts 次都失败时直接跳过，返回的数量可能少于 count。
func (p *Placer) PlaceObstacles(s *structs.GameSession, count int) []structs.Obstacle {
	obstacles := make([]structs.Obstacle, 0, count)
	head := s.Head()

	for i := 0; i < count; i++ {
		placed := false
		for attempts := 0; attempts < maxObstacleAttempts && !placed; attempts++ {
			pos := p.grid.RandomPosition(p.rng)

			onSnake := false
			for _, seg := range s.Snake {
				if seg == pos {
					onSnake = true
					break
				}
			}
			if onSnake || pos == s.Food || obstacleAt(obstacles, pos) || Near(pos, head, spawnBuffer) {
				continue
			}

			obstacles = append(obstacles, structs.Obstacle{
				Position: pos,
				Kind:     p.randomKind(),
			})
			placed = true
		}
	}

	if len(obstacles) < count {
		log.Printf("placed %d of %d obstacles, remaining slots exhausted %d attempts", len(obstacles), count, maxObstacleAttempts)
	}
	return obstacles
}

func (p *Placer) randomKind() structs.ObstacleKind {
	if p.rng.Float64() > 0.5 {
		return structs.Tree
	}
	return structs.Stone
}
