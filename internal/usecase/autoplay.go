package usecase

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
)

// AutoPlayConfig は自動プレイの設定
type AutoPlayConfig struct {
	WeightsPath string
	Delay       time.Duration
	Verbose     bool
}

// DefaultAutoPlayConfig はデフォルトの設定を返す
func DefaultAutoPlayConfig() AutoPlayConfig {
	return AutoPlayConfig{
		WeightsPath: "",
		Delay:       100 * time.Millisecond,
		Verbose:     true,
	}
}

// AutoPlay はN-tupleソルバーで自動的に1ゲームをプレイする
// 最終スコアと手数を返す
func AutoPlay(w io.Writer, rng *rand.Rand, config AutoPlayConfig) (int, int) {
	game := domain.NewGame(rng)
	solver := domain.NewNTupleSolver(loadNetwork(w, config.WeightsPath))

	moves := 0

	if config.Verbose {
		fmt.Fprintln(w, "=== 2048 AutoPlay ===")
		fmt.Fprintln(w)
	}

	for !game.IsGameOver() {
		if config.Verbose {
			fmt.Fprint(w, game.Board())
			fmt.Fprintf(w, "Score: %d, Moves: %d\n", game.Score(), moves)
		}

		dir := solver.BestMove(game.Board())
		if dir == domain.Direction(-1) {
			break
		}

		if config.Verbose {
			fmt.Fprintf(w, "Move: %s\n\n", dir)
		}

		game.Move(dir)
		moves++

		if config.Delay > 0 {
			time.Sleep(config.Delay)
		}
	}

	// 最終結果は常に表示
	fmt.Fprint(w, game.Board())
	fmt.Fprintln(w, "=== Game Over ===")
	fmt.Fprintf(w, "Final Score: %d\n", game.Score())
	fmt.Fprintf(w, "Total Moves: %d\n", moves)
	fmt.Fprintf(w, "Max Tile: %d\n", game.MaxTile())

	return game.Score(), moves
}
