package main

import (
	"bytes"
	"testing"

	"github.com/milk9111/physics2d/config"
	"github.com/milk9111/physics2d/engine"
	"gopkg.in/yaml.v3"
)

func TestWriteReport(t *testing.T) {
	e := engine.New(config.Default())
	if err := e.Boot("scenes/demo.yaml", ""); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	for i := 0; i < 10; i++ {
		e.Update(config.DefaultFixedStep)
	}

	var buf bytes.Buffer
	if err := write(&buf, e); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got struct {
		Frames uint64           `yaml:"frames"`
		Steps  uint64           `yaml:"steps"`
		Bodies []map[string]any `yaml:"bodies"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if got.Frames != 10 || got.Steps != 10 {
		t.Fatalf("frames=%d steps=%d", got.Frames, got.Steps)
	}
	if len(got.Bodies) != len(e.Snapshot()) {
		t.Fatalf("bodies = %d, want %d", len(got.Bodies), len(e.Snapshot()))
	}
	if got.Bodies[0]["type"] != "static" {
		t.Fatalf("first body = %v", got.Bodies[0])
	}
}
