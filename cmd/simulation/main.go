package main

import (
	"log"

	"lidar-sim/internal/config"
	"lidar-sim/internal/logging"
	"lidar-sim/internal/simulation"
	"lidar-sim/internal/visualization"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	scene, err := config.Default()
	if err != nil {
		log.Fatalf("Error loading scene: %v", err)
	}

	logger, err := logging.New(scene.LogLevel)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	sim, err := simulation.NewFromScene(scene, logger)
	if err != nil {
		logger.Fatal("failed to create simulation", zap.Error(err))
	}
	sim.PrintState()

	renderer := visualization.NewRenderer(sim, scene, logger)
	ebiten.SetWindowSize(renderer.Size())
	ebiten.SetWindowTitle(scene.Window.Title)
	ebiten.SetTPS(scene.Window.TPS)

	logger.Info("starting", zap.String("title", scene.Window.Title), zap.Int("rays", sim.Sensor().Rays()))
	if err := ebiten.RunGame(renderer); err != nil {
		logger.Fatal("game loop failed", zap.Error(err))
	}
	logger.Info("application finished")
}
