package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/config"
	"github.com/dougsko/lumenshow/pkg/engine"
	"github.com/dougsko/lumenshow/pkg/timeline"
)

// sceneTrack is one track of a debug scene file: a single effect JSON
// payload (the same shape ADD_EFFECT takes over the wire) plus its blend
// configuration.
type sceneTrack struct {
	Blend   string          `json:"blend"`
	Opacity float32         `json:"opacity"`
	Effect  json.RawMessage `json:"effect"`
}

// scene is a standalone sequence description for inspecting the evaluator
// without a running daemon.
type scene struct {
	Length float64      `json:"length"`
	Tracks []sceneTrack `json:"tracks"`
}

func parseBlendMode(s string) (blend.Mode, error) {
	switch s {
	case "", "mix":
		return blend.Mix, nil
	case "add":
		return blend.Add, nil
	case "subtract":
		return blend.Subtract, nil
	case "multiply":
		return blend.Multiply, nil
	default:
		return 0, fmt.Errorf("unknown blend mode %q", s)
	}
}

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Configuration file path")
		scenePath  = flag.String("scene", "", "Scene file path (JSON)")
		localTime  = flag.Float64("time", 0, "Local time in seconds to evaluate at")
	)
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -scene scene.json [-time 1.5] [-config config.yaml]\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	sceneData, err := os.ReadFile(*scenePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read scene: %v\n", err)
		os.Exit(1)
	}

	var sc scene
	if err := json.Unmarshal(sceneData, &sc); err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse scene: %v\n", err)
		os.Exit(1)
	}

	e := engine.NewEngine(cfg, "")

	seq := timeline.Sequence{Name: "render", Length: sc.Length}
	for i, st := range sc.Tracks {
		mode, err := parseBlendMode(st.Blend)
		if err != nil {
			fmt.Fprintf(os.Stderr, "track %d: %v\n", i, err)
			os.Exit(1)
		}

		effHandle, err := e.AddEffectJSON(st.Effect)
		if err != nil {
			fmt.Fprintf(os.Stderr, "track %d: %v\n", i, err)
			os.Exit(1)
		}

		opacity := st.Opacity
		if opacity == 0 {
			opacity = 1
		}

		seq.Tracks = append(seq.Tracks, timeline.Track{
			Info:     timeline.TrackInfo{BlendMode: mode, Opacity: opacity},
			Contents: timeline.TrackContents{Kind: timeline.KindEffectTrack, Effect: effHandle},
		})
	}

	seqHandle := e.AddSequence(seq)

	out, err := e.EvalAt(seqHandle, *localTime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "evaluation failed: %v\n", err)
		os.Exit(1)
	}

	fixtures := e.Fixtures()
	fmt.Printf("Evaluated %.3fs scene at t=%.3fs\n", sc.Length, *localTime)
	fmt.Println("===========================================")
	for i, in := range out {
		name := fmt.Sprintf("fixture[%d]", i)
		if i < len(fixtures) {
			name = fixtures[i].Name
		}
		switch {
		case in.HasColor && in.HasVec3:
			fmt.Printf("%-20s color=%v vec3=%v\n", name, in.Color, in.Vec3)
		case in.HasColor:
			fmt.Printf("%-20s color=%v\n", name, in.Color)
		case in.HasVec3:
			fmt.Printf("%-20s vec3=%v\n", name, in.Vec3)
		default:
			fmt.Printf("%-20s (no output)\n", name)
		}
	}
}
