package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/pack"
)

func TestPress(t *testing.T) {
	cases := []struct {
		name       string
		key        ebiten.Key
		state      int
		facing     int
		wantState  int
		wantFacing int
	}{
		{"right_turns_clockwise", ebiten.KeyArrowRight, 0, 2, 0, 3},
		{"right_wraps", ebiten.KeyArrowRight, 0, 7, 0, 0},
		{"left_turns_back", ebiten.KeyArrowLeft, 0, 2, 0, 1},
		{"left_wraps", ebiten.KeyArrowLeft, 0, 0, 0, 7},
		{"up_next_state", ebiten.KeyArrowUp, 1, 2, 2, 2},
		{"up_wraps", ebiten.KeyArrowUp, 2, 2, 0, 2},
		{"down_wraps", ebiten.KeyArrowDown, 0, 2, 2, 2},
		{"other_key", ebiten.KeySpace, 1, 4, 1, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			state, facing := press(c.key, c.state, c.facing, 3)
			if state != c.wantState || facing != c.wantFacing {
				t.Fatalf("expected state %d facing %d, got state %d facing %d", c.wantState, c.wantFacing, state, facing)
			}
		})
	}
}

func TestCycleWithoutStates(t *testing.T) {
	if got := cycle(3, 1, 0); got != 0 {
		t.Fatalf("expected 0 with nothing to cycle, got %d", got)
	}
}

func TestRowFor(t *testing.T) {
	st := &pack.State{Rows: pack.RowTable{component.Front: 0, component.Right: 1, component.Back: 2}}

	cases := []struct {
		name         string
		flipX        bool
		facing       component.Direction
		wantRow      int
		wantMirrored bool
	}{
		{"authored", false, component.Right, 1, false},
		{"diagonal_falls_back", false, component.BackRight, 2, false},
		{"left_without_flip", false, component.Left, 0, false},
		{"left_mirrors_right", true, component.Left, 1, true},
		{"authored_with_flip", true, component.Right, 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			row, mirrored := rowFor(&pack.Pack{FlipX: c.flipX}, st, c.facing)
			if row != c.wantRow || mirrored != c.wantMirrored {
				t.Fatalf("expected row %d mirrored %v, got row %d mirrored %v", c.wantRow, c.wantMirrored, row, mirrored)
			}
		})
	}
}
