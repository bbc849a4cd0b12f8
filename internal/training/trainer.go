package training

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
)

// 1遷移あたりの報酬の係数
const emptyCellReward = 10.0

// Learner はTD(0)学習でNetworkの重みを訓練する
// 自己対戦でエピソードを繰り返し、各遷移の報酬とTD誤差から
// 直前のafterstateのパターン重みを更新する
type Learner struct {
	game     *domain.Game
	network  *domain.Network
	solver   *domain.NTupleSolver
	alpha    float64
	gamma    float64
	bestTile int

	// エピソード内で持ち越す直前のafterstateとその評価値
	prevAfterstate domain.Board
	prevValue      float64
	hasPrev        bool
}

// NewLearner は新しいLearnerを生成する
func NewLearner(network *domain.Network, alpha, gamma float64, rng *rand.Rand) *Learner {
	return &Learner{
		game:    domain.NewGame(rng),
		network: network,
		solver:  domain.NewNTupleSolver(network),
		alpha:   alpha,
		gamma:   gamma,
	}
}

// BestTile は全エピソードを通して観測された最大タイルを返す
func (l *Learner) BestTile() int {
	return l.bestTile
}

// Train は指定エピソード数の学習を実行する
// saveInterval毎にチェックポイントを保存し、終了時にfinalを保存する
// startEpisodeはresume時のオフセットで、ログとチェックポイントの
// エピソード番号は通算（startEpisode + ローカル番号）になる
// チェックポイントの書き込み失敗は学習全体のエラーとして返す
func (l *Learner) Train(w io.Writer, episodes, saveInterval int, weightsDir string, startEpisode int) error {
	fmt.Fprintf(w, "Training for %d episodes...\n", episodes)
	startTime := time.Now()

	for episode := 1; episode <= episodes; episode++ {
		l.game.Reset()
		l.runEpisode()

		globalEpisode := startEpisode + episode
		maxTile := l.game.MaxTile()
		if maxTile > l.bestTile {
			l.bestTile = maxTile
			fmt.Fprintf(w, "  New best tile: %d at episode %d\n", l.bestTile, globalEpisode)
		}

		if saveInterval > 0 && episode%saveInterval == 0 {
			path := CheckpointPath(weightsDir, globalEpisode)
			if err := SaveCheckpoint(path, globalEpisode, l.network.Weights()); err != nil {
				return err
			}
			elapsed := time.Since(startTime).Seconds()
			fmt.Fprintf(w, "Episode %d/%d | Time: %.1fs | Score: %d | Highest Tile: %d\n",
				globalEpisode, startEpisode+episodes, elapsed, l.game.Score(), maxTile)
		}
	}

	// 全エピソード終了後のスナップショット
	if err := SaveCheckpoint(FinalCheckpointPath(weightsDir), startEpisode+episodes, l.network.Weights()); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nTraining complete in %.1f seconds.\n", time.Since(startTime).Seconds())
	fmt.Fprintf(w, "Best tile achieved during training: %d\n", l.bestTile)
	return nil
}

// runEpisode はゲームオーバーまで1エピソードを実行する
func (l *Learner) runEpisode() {
	l.prevAfterstate = domain.Board{}
	l.prevValue = 0
	l.hasPrev = false

	for !l.game.IsGameOver() {
		if !l.step() {
			break
		}
	}
}

// step は1イテレーション（SELECT→UPDATE→COMMIT）を実行する
// 最良の手を選び、直前のafterstateの重みをTD誤差で更新してから
// 実際に手を適用する。有効な手がない場合はfalseを返す
func (l *Learner) step() bool {
	dir, afterstate, value := l.solver.BestMoveWithValue(l.game.Board())
	if dir == domain.Direction(-1) {
		return false
	}

	// 初手以外は直前のafterstateに対してTD(0)更新を行う
	// 最後のafterstateは次のイテレーションの「直前」として更新済みのまま終わる
	if l.hasPrev {
		reward := l.reward(l.prevAfterstate, afterstate)
		tdError := reward + l.gamma*value - l.prevValue
		l.network.Update(l.prevAfterstate, l.alpha*tdError)
	}

	// 実際に手を適用する（ここでspawnが発生する）
	l.game.Move(dir)
	l.prevAfterstate = afterstate
	l.prevValue = value
	l.hasPrev = true
	return true
}

// reward は直前のafterstateから現在のafterstateへの遷移の報酬を返す
// 新しい最大タイルの達成ボーナスと空きマスの維持ボーナスからなる
func (l *Learner) reward(prev, current domain.Board) float64 {
	reward := 0.0

	// 最大タイルを更新したときのボーナス
	if currentMax := current.MaxTile(); currentMax > prev.MaxTile() {
		reward += float64(currentMax)
	}

	// 空きマスを多く保つほど小さなボーナス
	reward += float64(len(current.EmptyCells())) * emptyCellReward

	return reward
}
