package config

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name:  "empty_uses_defaults",
			input: "",
			check: func(t *testing.T, c Config) {
				if math.Abs(c.Physics.FixedStep-1.0/60.0) > 1e-12 {
					t.Fatalf("fixed step = %v", c.Physics.FixedStep)
				}
				if c.Physics.Slop != 0.1 {
					t.Fatalf("slop = %v", c.Physics.Slop)
				}
				if c.Physics.Mode != ModePredict {
					t.Fatalf("mode = %q", c.Physics.Mode)
				}
			},
		},
		{
			name: "overrides",
			input: `
physics:
  fixed_step: 0.01
  mode: lockstep
  gravity: {x: 0, y: 9.8}
log:
  debug: true
`,
			check: func(t *testing.T, c Config) {
				if c.Physics.FixedStep != 0.01 || c.Physics.Mode != ModeLockstep {
					t.Fatalf("physics = %+v", c.Physics)
				}
				if c.Physics.Gravity.Y != 9.8 {
					t.Fatalf("gravity = %+v", c.Physics.Gravity)
				}
				if c.Physics.Slop != 0.1 {
					t.Fatalf("slop should keep default, got %v", c.Physics.Slop)
				}
				if !c.Log.Debug {
					t.Fatalf("debug not set")
				}
			},
		},
		{name: "bad_mode", input: "physics: {mode: sideways}", wantErr: true},
		{name: "negative_step", input: "physics: {fixed_step: -1}", wantErr: true},
		{name: "malformed", input: "physics: [", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Parse([]byte(tc.input))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			tc.check(t, c)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	c := Default()
	c.Physics.MaxSubsteps = -2
	if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
