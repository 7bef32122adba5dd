package snake

import (
	"math/rand"
	"testing"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

func TestPlaceFoodAvoidsSnakeAndObstacles(t *testing.T) {
	grid, _ := NewGrid(6, 6)
	p := NewPlacer(grid, rand.New(rand.NewSource(11)))

	s := &structs.GameSession{
		Width:  6,
		Height: 6,
		Snake:  []structs.Position{{X: 3, Y: 3}, {X: 2, Y: 3}, {X: 1, Y: 3}},
	}
	// 只留下一行空位
	for x := 0; x < 6; x++ {
		for y := 0; y < 5; y++ {
			pos := structs.Position{X: x, Y: y}
			if y == 3 && x >= 1 && x <= 3 {
				continue
			}
			s.Obstacles = append(s.Obstacles, structs.Obstacle{Position: pos})
		}
	}

	for i := 0; i < 200; i++ {
		food := p.PlaceFood(s)
		if food.Y != 5 {
			t.Fatalf("food %v outside the free row", food)
		}
		if positionOverlap(s, food) {
			t.Fatalf("food %v overlaps snake or obstacle", food)
		}
	}
}

func TestPlaceObstaclesConstraints(t *testing.T) {
	grid, _ := NewGrid(20, 20)
	p := NewPlacer(grid, rand.New(rand.NewSource(12)))

	s := &structs.GameSession{
		Width:  20,
		Height: 20,
		Snake:  []structs.Position{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}},
		Food:   structs.Position{X: 2, Y: 2},
	}

	obstacles := p.PlaceObstacles(s, 15)
	if len(obstacles) != 15 {
		t.Fatalf("placed %d obstacles, want 15", len(obstacles))
	}

	seen := make(map[structs.Position]bool)
	for _, obs := range obstacles {
		if !grid.Contains(obs.Position) {
			t.Errorf("obstacle %v off the grid", obs.Position)
		}
		if seen[obs.Position] {
			t.Errorf("duplicate obstacle at %v", obs.Position)
		}
		seen[obs.Position] = true
		if obs.Position == s.Food {
			t.Errorf("obstacle on food at %v", obs.Position)
		}
		if Near(obs.Position, s.Head(), spawnBuffer) {
			t.Errorf("obstacle %v within the spawn buffer", obs.Position)
		}
		if obs.Kind != structs.Tree && obs.Kind != structs.Stone {
			t.Errorf("unknown kind %v", obs.Kind)
		}
	}
	if len(s.Obstacles) != 0 {
		t.Error("PlaceObstacles mutated the session")
	}
}

func TestPlaceObstaclesExhaustion(t *testing.T) {
	// 5x5 地图全部在蛇头的安全区内，一个都放不下
	grid, _ := NewGrid(5, 5)
	p := NewPlacer(grid, rand.New(rand.NewSource(13)))

	s := &structs.GameSession{
		Width:  5,
		Height: 5,
		Snake:  []structs.Position{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 0, Y: 2}},
		Food:   structs.Position{X: 4, Y: 4},
	}

	obstacles := p.PlaceObstacles(s, 6)
	if len(obstacles) != 0 {
		t.Errorf("placed %d obstacles, want 0", len(obstacles))
	}
}

func TestPlaceObstaclesKindsVary(t *testing.T) {
	grid, _ := NewGrid(40, 40)
	p := NewPlacer(grid, rand.New(rand.NewSource(14)))
	s := &structs.GameSession{
		Width:  40,
		Height: 40,
		Snake:  []structs.Position{{X: 20, Y: 20}, {X: 19, Y: 20}, {X: 18, Y: 20}},
	}

	kinds := make(map[structs.ObstacleKind]int)
	for _, obs := range p.PlaceObstacles(s, 60) {
		kinds[obs.Kind]++
	}
	if kinds[structs.Tree] == 0 || kinds[structs.Stone] == 0 {
		t.Errorf("kinds = %v, want both trees and stones", kinds)
	}
}
