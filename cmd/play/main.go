package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/nnaakkaaii/ntuple2048/internal/usecase"
)

func main() {
	weights := flag.String("weights", "", "path to a weights checkpoint for the AI assist (optional)")
	flag.Parse()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	usecase.PlayGame(os.Stdin, os.Stdout, rng, *weights)
}
