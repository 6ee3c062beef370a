// Command simulate runs the level without a window and prints the state
// report, for tuning prefab values.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/assets"
	"github.com/milk9111/mutantfps/input"
	"github.com/milk9111/mutantfps/scene"
)

func main() {
	seconds := flag.Float64("t", 10, "seconds to simulate")
	tps := flag.Int("tps", 60, "ticks per second")
	difficulty := flag.Int("difficulty", 0, "level script difficulty")
	seed := flag.Int64("seed", 1, "random seed")
	fire := flag.Bool("fire", false, "hold the trigger the whole time")
	every := flag.Float64("every", 0, "print the report every n seconds (0 prints only at the end)")
	verbose := flag.Bool("v", false, "log component state changes")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatal(err)
		}
	}

	inv, err := assets.Load()
	if err != nil {
		log.Fatalf("load assets: %v", err)
	}
	specs, err := scene.LoadSpecs()
	if err != nil {
		log.Fatalf("load prefabs: %v", err)
	}

	in := input.NewState()
	s, err := scene.New(specs, inv, scene.Options{Logger: logger, Input: in, Difficulty: *difficulty, Seed: *seed})
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	dt := 1.0 / float64(max(*tps, 1))
	next := *every
	for s.Elapsed() < *seconds && !s.GameOver() {
		in.BeginFrame()
		in.SetMouseButton(*fire)
		s.Step(dt)
		if *every > 0 && s.Elapsed() >= next {
			fmt.Fprintln(os.Stdout, s.Report())
			next += *every
		}
	}
	fmt.Fprint(os.Stdout, s.Report())
	if s.GameOver() {
		fmt.Fprintln(os.Stdout, "player died")
	}
}
