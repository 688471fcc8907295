// Command levelcheck validates levels and the ball prefab, then builds each
// level headlessly and drops the ball for a few seconds to catch spawns that
// fall straight out of the world.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/rollball/common"
	"github.com/milk9111/rollball/ecs"
	"github.com/milk9111/rollball/ecs/component"
	"github.com/milk9111/rollball/ecs/entity"
	"github.com/milk9111/rollball/ecs/system"
	"github.com/milk9111/rollball/levels"
	"github.com/milk9111/rollball/prefabs"
	"go.uber.org/zap"
)

func main() {
	ballFile := flag.String("ball", "ball.yaml", "ball prefab to validate")
	seconds := flag.Float64("settle", 3, "seconds of simulation per level")
	verbose := flag.Bool("v", false, "log every system event")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := common.NewLogger(true, level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	spec, err := prefabs.LoadBallSpec(*ballFile)
	if err != nil {
		logger.Fatal("ball prefab rejected", zap.String("file", *ballFile), zap.Error(err))
	}

	names := flag.Args()
	if len(names) == 0 {
		names = levels.Names()
	}

	failed := 0
	for _, name := range names {
		if err := check(name, spec, *seconds, logger); err != nil {
			logger.Error("level failed", zap.String("level", name), zap.Error(err))
			failed++
			continue
		}
		fmt.Printf("ok   %s\n", name)
	}
	if failed > 0 {
		_ = logger.Sync()
		os.Exit(1)
	}
}

func check(name string, spec *prefabs.BallSpec, seconds float64, logger *zap.Logger) error {
	lvl, err := levels.Load(name)
	if err != nil {
		return err
	}
	w, ball, err := entity.NewGameWorld(lvl, spec, nil, logger)
	if err != nil {
		return err
	}

	fixed := ecs.NewScheduler(system.NewMotionSystem(logger), system.NewPhysicsSystem(logger))
	for t := 0.0; t < seconds; t += common.FixedStep {
		fixed.Update(w, common.FixedStep)
	}

	b, ok := ecs.Get(w, ball, component.BallComponent.Kind())
	if !ok {
		return fmt.Errorf("ball missing after settle")
	}
	if b.Life.Dead() {
		return fmt.Errorf("ball died within %.1fs of spawning", seconds)
	}
	if !b.Zones.Grounded {
		pos := b.Body.Position()
		return fmt.Errorf("ball did not come to rest on ground, at (%.2f, %.2f)", pos[0], pos[1])
	}
	return nil
}
