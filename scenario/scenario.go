// Package scenario loads, saves and compiles declarative motion documents.
//
// A document names the elements it animates and declares timelines of
// motions; Build turns it into playable motion.Timelines against any
// motion.Environment.
package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"

	motion "github.com/novavovikov/chained-motion"
)

// Document is a complete declarative animation description.
type Document struct {
	Version   string     `yaml:"version"`
	Elements  []Element  `yaml:"elements,omitempty"`
	Timelines []Timeline `yaml:"timelines"`
}

// Element declares a named animation target and its initial box.
type Element struct {
	Name   string  `yaml:"name"`
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Timeline is an ordered list of entries played strictly in sequence.
type Timeline struct {
	Name    string  `yaml:"name,omitempty"`
	Entries []Entry `yaml:"entries"`
}

// Entry is either a motion or a nested timeline; exactly one field is set.
type Entry struct {
	Motion   *Motion   `yaml:"motion,omitempty"`
	Timeline *Timeline `yaml:"timeline,omitempty"`
}

// Motion declares one animation on one element. Duration and delay are in
// milliseconds; zero values fall back to the engine defaults.
type Motion struct {
	Target    string      `yaml:"target"`
	Duration  float64     `yaml:"duration,omitempty"`
	Easing    string      `yaml:"easing,omitempty"`
	Delay     float64     `yaml:"delay,omitempty"`
	Repeat    RepeatCount `yaml:"repeat,omitempty"`
	Direction string      `yaml:"direction,omitempty"`
	Steps     []Step      `yaml:"steps"`
}

// Step is one stop on the motion path. With relative set, x and y are
// offsets from the element's measured position instead of viewport
// coordinates.
type Step struct {
	X        float64           `yaml:"x"`
	Y        float64           `yaml:"y"`
	Relative bool              `yaml:"relative,omitempty"`
	At       *float64          `yaml:"at,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
}

// RepeatCount is an iteration count: a positive integer or "infinite".
type RepeatCount int

// UnmarshalYAML accepts either an integer or the string "infinite".
func (r *RepeatCount) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "infinite" {
		*r = RepeatCount(motion.Infinite)
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("repeat: want a count or \"infinite\": %w", err)
	}
	*r = RepeatCount(n)
	return nil
}

// MarshalYAML writes "infinite" for the sentinel value.
func (r RepeatCount) MarshalYAML() (interface{}, error) {
	if int(r) == motion.Infinite {
		return "infinite", nil
	}
	return int(r), nil
}
