package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/nnaakkaaii/ntuple2048/internal/usecase"
)

func main() {
	episodes := flag.Int("episodes", 100000, "total number of episodes to train for")
	saveInterval := flag.Int("save-interval", 5000, "save weights every N episodes")
	alpha := flag.Float64("alpha", 0.01, "learning rate for the TD learner")
	gamma := flag.Float64("gamma", 0.95, "discount factor for the TD update")
	weightsDir := flag.String("weights-dir", "weights", "directory to save/load weight files")
	resume := flag.Bool("resume", false, "resume training from the latest checkpoint")
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	flag.Parse()

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))

	config := usecase.DefaultTrainConfig()
	config.Episodes = *episodes
	config.SaveInterval = *saveInterval
	config.Alpha = *alpha
	config.Gamma = *gamma
	config.WeightsDir = *weightsDir
	config.Resume = *resume

	if err := usecase.RunTraining(os.Stdout, rng, config); err != nil {
		fmt.Fprintf(os.Stderr, "training failed: %v\n", err)
		os.Exit(1)
	}
}
