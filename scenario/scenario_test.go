package scenario

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	motion "github.com/novavovikov/chained-motion"
	"github.com/novavovikov/chained-motion/headless"
)

const testDoc = `
version: "1"
elements:
  - name: card
    left: 10
    top: 20
    width: 100
    height: 40
timelines:
  - name: main
    entries:
      - motion:
          target: card
          duration: 200
          easing: ease-in-out
          repeat: 2
          steps:
            - { x: 10, y: 20 }
            - { x: 110, y: 20, at: 80, style: { opacity: "0" } }
      - timeline:
          entries:
            - motion:
                target: card
                duration: 100
                steps:
                  - { x: 0, y: 0, relative: true }
                  - { x: 50, y: 0, relative: true }
`

func TestParseDocument(t *testing.T) {
	doc, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(doc.Elements) != 1 || doc.Elements[0].Name != "card" {
		t.Fatalf("Expected one element named card, got %+v", doc.Elements)
	}
	if len(doc.Timelines) != 1 {
		t.Fatalf("Expected 1 timeline, got %d", len(doc.Timelines))
	}

	entries := doc.Timelines[0].Entries
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Motion == nil || entries[1].Timeline == nil {
		t.Fatal("Expected a motion entry followed by a nested timeline")
	}

	m := entries[0].Motion
	if m.Repeat != 2 {
		t.Errorf("Expected repeat 2, got %d", m.Repeat)
	}
	if m.Steps[1].At == nil || *m.Steps[1].At != 80 {
		t.Errorf("Expected second step at 80, got %v", m.Steps[1].At)
	}
	if m.Steps[1].Style["opacity"] != "0" {
		t.Errorf("Expected opacity override, got %v", m.Steps[1].Style)
	}

	nested := entries[1].Timeline
	if len(nested.Entries) != 1 || nested.Entries[0].Motion == nil {
		t.Fatal("Expected one motion inside the nested timeline")
	}
	if !nested.Entries[0].Motion.Steps[0].Relative {
		t.Error("Expected relative steps in the nested motion")
	}
}

func TestRepeatCountInfinite(t *testing.T) {
	var m Motion
	if err := yaml.Unmarshal([]byte("target: x\nrepeat: infinite\n"), &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if int(m.Repeat) != motion.Infinite {
		t.Errorf("Expected the Infinite sentinel, got %d", m.Repeat)
	}

	out, err := yaml.Marshal(RepeatCount(motion.Infinite))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(out) != "infinite\n" {
		t.Errorf("Expected \"infinite\", got %q", string(out))
	}
}

func TestRepeatCountRejectsGarbage(t *testing.T) {
	var m Motion
	if err := yaml.Unmarshal([]byte("repeat: sometimes\n"), &m); err == nil {
		t.Error("Expected a parse error for a non-count repeat")
	}
}

func TestBuildAndPlay(t *testing.T) {
	doc, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	env := headless.NewEnv()
	nodes := map[string]*headless.Node{}
	for _, el := range doc.Elements {
		nodes[el.Name] = env.AddNode(el.Name, motion.Rect{
			Width: el.Width, Height: el.Height, Left: el.Left, Top: el.Top,
		})
	}
	resolve := func(name string) (motion.Element, error) {
		return nodes[name], nil
	}

	timelines, err := Build(doc, env, resolve)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(timelines) != 1 {
		t.Fatalf("Expected 1 timeline, got %d", len(timelines))
	}

	if err := timelines[0].Play(context.Background()); err != nil {
		t.Fatalf("Play failed: %v", err)
	}

	waits := env.Waits()
	want := []time.Duration{400 * time.Millisecond, 100 * time.Millisecond}
	if len(waits) != len(want) {
		t.Fatalf("Expected waits %v, got %v", want, waits)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("Wait %d: expected %v, got %v", i, want[i], waits[i])
		}
	}

	if rules := env.Rules(); len(rules) != 2 {
		t.Errorf("Expected 2 registered rules, got %d", len(rules))
	}
	if active := env.ActiveRules(); len(active) != 0 {
		t.Errorf("Expected all rules torn down, got %v", active)
	}
}

func TestBuildUnknownEntry(t *testing.T) {
	doc := &Document{Timelines: []Timeline{{Entries: []Entry{{}}}}}
	env := headless.NewEnv()
	if _, err := Build(doc, env, func(string) (motion.Element, error) { return nil, nil }); err == nil {
		t.Error("Expected an empty entry to fail the build")
	}
}

func TestBuildMissingTarget(t *testing.T) {
	doc := &Document{Timelines: []Timeline{{Entries: []Entry{
		{Motion: &Motion{}},
	}}}}
	env := headless.NewEnv()
	if _, err := Build(doc, env, func(string) (motion.Element, error) { return nil, nil }); err == nil {
		t.Error("Expected a motion without a target to fail the build")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(testDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := Save(doc, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Timelines) != len(doc.Timelines) {
		t.Errorf("Timeline count mismatch: expected %d, got %d",
			len(doc.Timelines), len(loaded.Timelines))
	}
	if loaded.Elements[0] != doc.Elements[0] {
		t.Errorf("Element mismatch: expected %+v, got %+v", doc.Elements[0], loaded.Elements[0])
	}
}
