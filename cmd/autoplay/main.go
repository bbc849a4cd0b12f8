package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/nnaakkaaii/ntuple2048/internal/usecase"
)

func main() {
	weights := flag.String("weights", "", "path to a weights checkpoint (optional)")
	delay := flag.Int("delay", 100, "delay between moves (ms)")
	quiet := flag.Bool("quiet", false, "suppress output")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	config := usecase.DefaultAutoPlayConfig()
	config.WeightsPath = *weights
	config.Delay = time.Duration(*delay) * time.Millisecond
	config.Verbose = !*quiet

	usecase.AutoPlay(os.Stdout, rng, config)
}
