package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	motion "github.com/novavovikov/chained-motion"
	"github.com/novavovikov/chained-motion/headless"
	"github.com/novavovikov/chained-motion/scenario"
)

// builtinScenario plays when no -scenario file is given.
const builtinScenario = `
version: "1"
elements:
  - name: card
    left: 10
    top: 20
    width: 120
    height: 60
  - name: badge
    left: 200
    top: 200
    width: 24
    height: 24
timelines:
  - name: intro
    entries:
      - motion:
          target: card
          duration: 600
          easing: ease-in-out
          steps:
            - { x: 10, y: 20, style: { opacity: "0" } }
            - { x: 160, y: 120, style: { opacity: "1" } }
            - { x: 320, y: 20 }
      - motion:
          target: card
          duration: 400
          easing: ease-out
          direction: reverse
          steps:
            - { x: 320, y: 20 }
            - { x: 320, y: 220 }
  - name: pulse
    entries:
      - motion:
          target: badge
          duration: 300
          repeat: 2
          steps:
            - { x: 0, y: 0, relative: true, style: { background-color: "#ff0000" } }
            - { x: 0, y: -30, relative: true, style: { background-color: "#0000ff" } }
`

func main() {
	scenarioPtr := flag.String("scenario", "", "Path to a scenario YAML (empty: built-in demo)")
	samplesPtr := flag.Int("samples", 5, "Positions to sample per finished animation")
	timeScalePtr := flag.Float64("time-scale", 0, "Wall-clock fraction of animation time (0: no sleeping)")
	verbosePtr := flag.Bool("v", false, "Verbose engine logging")

	flag.Parse()

	samples := *samplesPtr
	if samples < 1 {
		samples = 1
	}

	if *verbosePtr {
		motion.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var doc *scenario.Document
	var err error
	if *scenarioPtr != "" {
		doc, err = scenario.Load(*scenarioPtr)
	} else {
		doc, err = scenario.Parse([]byte(builtinScenario))
	}
	if err != nil {
		log.Fatalf("[-] Scenario error: %v", err)
	}

	env := headless.NewEnv()
	env.TimeScale = *timeScalePtr

	nodes := make(map[string]*headless.Node, len(doc.Elements))
	for _, el := range doc.Elements {
		nodes[el.Name] = env.AddNode(el.Name, motion.Rect{
			Width:  el.Width,
			Height: el.Height,
			Left:   el.Left,
			Top:    el.Top,
		})
	}

	timelines, err := scenario.Build(doc, env, func(name string) (motion.Element, error) {
		n, ok := nodes[name]
		if !ok {
			return nil, fmt.Errorf("unknown element %q", name)
		}
		return n, nil
	})
	if err != nil {
		log.Fatalf("[-] Build error: %v", err)
	}

	fmt.Printf("[*] Playing %d timeline(s)\n", len(timelines))
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	for _, tl := range timelines {
		tl := tl
		g.Go(func() error { return tl.Play(ctx) })
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[-] Playback error: %v", err)
	}
	fmt.Printf("[*] Done in %v\n", time.Since(start).Round(time.Millisecond))

	fmt.Println("\nGenerated keyframes:")
	for _, r := range env.Rules() {
		fmt.Println(r.CSS)
	}

	fmt.Println("Sampled clone positions:")
	for _, clone := range env.Clones() {
		pb, err := env.PlaybackFor(clone)
		if err != nil {
			log.Fatalf("[-] Playback error for %s: %v", clone.ID, err)
		}
		span := pb.Delay() + pb.Duration()
		fmt.Printf("  %s (%v):\n", clone.ID, span)
		for i := 0; i <= samples; i++ {
			elapsed := time.Duration(float64(span) * float64(i) / float64(samples))
			pos, style := pb.At(elapsed)
			fmt.Printf("    t=%-8v (%.1f, %.1f) %v\n", elapsed.Round(time.Millisecond), pos.X, pos.Y, style)
		}
	}

	fmt.Println("[+] Success")
}
