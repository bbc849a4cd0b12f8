package usecase

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
	"github.com/nnaakkaaii/ntuple2048/internal/training"
)

// TrainConfig は学習の設定
type TrainConfig struct {
	Episodes     int
	SaveInterval int
	Alpha        float64
	Gamma        float64
	WeightsDir   string
	Resume       bool
}

// DefaultTrainConfig はデフォルトの設定を返す
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Episodes:     100000,
		SaveInterval: 5000,
		Alpha:        0.01,
		Gamma:        0.95,
		WeightsDir:   "weights",
		Resume:       false,
	}
}

// RunTraining は学習セッションを実行する
// Resume指定時は最新の定期チェックポイントから重みを読み込み、
// 残りのエピソード数（Episodes - 再開エピソード）だけ学習する
func RunTraining(w io.Writer, rng *rand.Rand, config TrainConfig) error {
	network := domain.NewNetwork()
	startEpisode := 0

	if config.Resume {
		path, episode := training.FindLatestCheckpoint(config.WeightsDir)
		if path == "" {
			fmt.Fprintln(w, "No checkpoints found. Starting new training session.")
		} else {
			_, tables, err := training.LoadCheckpoint(path)
			if err != nil {
				fmt.Fprintf(w, "Warning: could not load checkpoint %s: %v. Starting new training session.\n", path, err)
			} else if err := network.SetWeights(tables); err != nil {
				fmt.Fprintf(w, "Warning: invalid checkpoint %s: %v. Starting new training session.\n", path, err)
			} else {
				fmt.Fprintf(w, "Resuming training from checkpoint: %s\n", path)
				startEpisode = episode
			}
		}
	} else {
		fmt.Fprintln(w, "Starting new training session.")
	}

	remaining := config.Episodes - startEpisode
	if remaining <= 0 {
		fmt.Fprintln(w, "Training already completed for the specified number of episodes.")
		return nil
	}

	learner := training.NewLearner(network, config.Alpha, config.Gamma, rng)
	return learner.Train(w, remaining, config.SaveInterval, config.WeightsDir, startEpisode)
}
