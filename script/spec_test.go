package script

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physics2d/ecs/component"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestNormalizeBody(t *testing.T) {
	cases := []struct {
		name      string
		spec      BodySpec
		wantNotes int
		check     func(t *testing.T, b Body)
	}{
		{
			name: "empty_uses_defaults",
			spec: BodySpec{},
			check: func(t *testing.T, b Body) {
				if b.Size != (cp.Vector{X: DefaultWidth, Y: DefaultHeight}) {
					t.Fatalf("size = %v", b.Size)
				}
				if b.Type != component.BodyRigid {
					t.Fatalf("type = %v", b.Type)
				}
				if b.Health != DefaultTotalHealth {
					t.Fatalf("health = %d", b.Health)
				}
				if b.Box || b.Mask != 0 || b.Layer != 0 {
					t.Fatalf("unexpected collider: %+v", b)
				}
			},
		},
		{
			name:      "invalid_width_falls_back",
			spec:      BodySpec{Width: floatPtr(-3), Height: floatPtr(2)},
			wantNotes: 1,
			check: func(t *testing.T, b Body) {
				if b.Size != (cp.Vector{X: 1, Y: 2}) {
					t.Fatalf("size = %v", b.Size)
				}
			},
		},
		{
			name: "explicit_static_and_zero_health",
			spec: BodySpec{Type: intPtr(0), TotalHealth: intPtr(0), Velocity: [2]float64{3, 4}},
			check: func(t *testing.T, b Body) {
				if b.Type != component.BodyStatic {
					t.Fatalf("type = %v", b.Type)
				}
				if b.Health != 0 {
					t.Fatalf("health = %d", b.Health)
				}
				if b.Velocity != (cp.Vector{}) {
					t.Fatalf("static body kept velocity %v", b.Velocity)
				}
			},
		},
		{
			name:      "unknown_type_is_rigid",
			spec:      BodySpec{Type: intPtr(9)},
			wantNotes: 1,
			check: func(t *testing.T, b Body) {
				if b.Type != component.BodyRigid {
					t.Fatalf("type = %v", b.Type)
				}
			},
		},
		{
			name: "collision_box_modifiers",
			spec: BodySpec{
				Width:        floatPtr(2),
				Height:       floatPtr(4),
				CollisionBox: CollisionBoxSpec{Enabled: true, OffsetY: 0.5, SizeModifierX: 0.5},
				Masks:        []bool{true, false, true},
				Layers:       []bool{false, true},
			},
			check: func(t *testing.T, b Body) {
				if !b.Box {
					t.Fatalf("box not enabled")
				}
				if b.BoxSize != (cp.Vector{X: 1, Y: 4}) {
					t.Fatalf("box size = %v", b.BoxSize)
				}
				if b.BoxOffset != (cp.Vector{Y: 0.5}) {
					t.Fatalf("box offset = %v", b.BoxOffset)
				}
				if b.Mask != 0b101 || b.Layer != 0b010 {
					t.Fatalf("mask=%08b layer=%08b", b.Mask, b.Layer)
				}
			},
		},
		{
			name:      "long_mask_table_truncated",
			spec:      BodySpec{Masks: []bool{true, true, true, true, true, true, true, true, true, true}},
			wantNotes: 1,
			check: func(t *testing.T, b Body) {
				if b.Mask != 0xff {
					t.Fatalf("mask=%08b", b.Mask)
				}
			},
		},
		{
			name:      "out_of_range_state_and_health",
			spec:      BodySpec{State: 300, TotalHealth: intPtr(70000)},
			wantNotes: 2,
			check: func(t *testing.T, b Body) {
				if b.State != 0 || b.Health != 65535 {
					t.Fatalf("state=%d health=%d", b.State, b.Health)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, notes := NormalizeBody(tc.spec)
			if len(notes) != tc.wantNotes {
				t.Fatalf("notes = %v, want %d", notes, tc.wantNotes)
			}
			tc.check(t, b)
		})
	}
}
