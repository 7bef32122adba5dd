package snake

import (
	"testing"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

func TestSteerReversalGuard(t *testing.T) {
	tests := []struct {
		name    string
		current structs.Direction
		press   structs.Direction
		latched bool
	}{
		{"right then left", structs.Right, structs.Left, false},
		{"right then right", structs.Right, structs.Right, false},
		{"right then up", structs.Right, structs.Up, true},
		{"right then down", structs.Right, structs.Down, true},
		{"up then down", structs.Up, structs.Down, false},
		{"up then left", structs.Up, structs.Left, true},
		{"left then right", structs.Left, structs.Right, false},
		{"down then right", structs.Down, structs.Right, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 20, 20, 21)
			e.session.Direction = tt.current
			e.session.Pending = tt.current

			got := e.Steer(tt.press)
			if got != tt.latched {
				t.Errorf("Steer = %v, want %v", got, tt.latched)
			}
			want := tt.current
			if tt.latched {
				want = tt.press
			}
			if e.session.Pending != want {
				t.Errorf("pending = %v, want %v", e.session.Pending, want)
			}
		})
	}
}

func TestSteerLastWriteWins(t *testing.T) {
	e := newTestEngine(t, 20, 20, 22)
	e.Steer(structs.Up)
	e.Steer(structs.Down)

	if e.session.Pending != structs.Down {
		t.Errorf("pending = %v, want down", e.session.Pending)
	}
	// 反向检查看的是生效方向，缓存的方向不会影响
	if e.Steer(structs.Left) {
		t.Error("left accepted while moving right")
	}

	e.session.Food = structs.Position{X: 0, Y: 0}
	e.Tick()
	s, _ := e.Session()
	if s.Direction != structs.Down || s.Head() != (structs.Position{X: 10, Y: 11}) {
		t.Errorf("direction %v head %v, want down to (10,11)", s.Direction, s.Head())
	}
}

func TestTickDoesNotRevalidatePending(t *testing.T) {
	e := newTestEngine(t, 20, 20, 23)
	e.session.Pending = structs.Left

	res := e.Tick()
	if res.Outcome != OutcomeCollided || res.Events[0].Cause != structs.CauseSelf {
		t.Errorf("result = %+v, want a self collision into the neck", res)
	}
}

func TestHandleInput(t *testing.T) {
	e := newTestEngine(t, 20, 20, 24)
	if e.HandleInput(structs.InputConfirm) {
		t.Error("confirm treated as a direction")
	}
	if !e.HandleInput(structs.InputUp) {
		t.Error("up rejected while moving right")
	}
	if e.session.Pending != structs.Up {
		t.Errorf("pending = %v, want up", e.session.Pending)
	}
}

func TestSteerIgnoredWhenStopped(t *testing.T) {
	e := newTestEngine(t, 20, 20, 25)
	e.session.Running = false
	if e.Steer(structs.Up) {
		t.Error("input latched on a stopped session")
	}
}
