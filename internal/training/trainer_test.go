package training

import (
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
)

func TestReward(t *testing.T) {
	learner := NewLearner(domain.NewNetwork(), 0.01, 0.95, rand.New(rand.NewSource(1)))

	prev := domain.NewBoardFromCells([4][4]int{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	tests := []struct {
		name    string
		current [4][4]int
		want    float64
	}{
		{
			name: "new max tile plus empty cells",
			current: [4][4]int{
				{8, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			// 最大タイル更新8 + 空きマス15*10
			want: 158,
		},
		{
			name: "no new max tile",
			current: [4][4]int{
				{2, 4, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: 140,
		},
		{
			name: "equal max tile earns no bonus",
			current: [4][4]int{
				{4, 2, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			want: 140,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := learner.reward(prev, domain.NewBoardFromCells(tt.current))
			if got != tt.want {
				t.Errorf("reward = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRunEpisodeUpdatesWeights(t *testing.T) {
	network := domain.NewNetwork()
	learner := NewLearner(network, 0.01, 0.95, rand.New(rand.NewSource(42)))

	learner.game.Reset()
	learner.runEpisode()

	if !learner.game.IsGameOver() {
		t.Error("expected the episode to end in a terminal state")
	}

	updated := 0
	for _, table := range network.Weights() {
		updated += len(table)
	}
	if updated == 0 {
		t.Error("expected TD updates to touch some weights")
	}
}

func TestStepUpdatesOnlyPreviousAfterstate(t *testing.T) {
	network := domain.NewNetwork()
	solver := domain.NewNTupleSolver(network)

	board := domain.NewBoardFromCells([4][4]int{
		{4, 4, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	// 左スワイプのafterstateに大きな重みを与え、1手目の選択と
	// その評価値を他の候補から確実に引き離しておく
	seeded, _ := board.SwipeWithoutSpawn(domain.Left)
	const seedWeight = 10000.0
	network.Update(seeded, seedWeight)

	learner := &Learner{
		game:    domain.NewGameFromBoard(board, rand.New(rand.NewSource(11))),
		network: network,
		solver:  solver,
		alpha:   0.01,
		gamma:   0.95,
	}

	dir1, after1, value1 := solver.BestMoveWithValue(board)
	if dir1 != domain.Left || !after1.Equal(seeded) {
		t.Fatalf("first move = %v, want Left with the seeded afterstate", dir1)
	}

	// 1手目は直前のafterstateが存在しないので更新は起きない
	if !learner.step() {
		t.Fatal("expected the first step to move")
	}
	tuples := network.Tuples()
	for i, table := range network.Weights() {
		if len(table) != 1 {
			t.Fatalf("table %d has %d entries after the first step, want only the seeded entry", i, len(table))
		}
		if got := table[domain.PatternIndex(seeded, tuples[i])]; got != seedWeight {
			t.Fatalf("table %d seeded weight = %f after the first step, want %f", i, got, seedWeight)
		}
	}

	// 2手目の選択結果から期待される更新量を組み立てる
	_, after2, value2 := solver.BestMoveWithValue(learner.game.Board())
	if after2.Equal(after1) {
		t.Fatal("expected distinct consecutive afterstates")
	}
	if value2 >= value1 {
		t.Fatalf("value of the second afterstate = %f, expected below the seeded %f", value2, value1)
	}
	reward := learner.reward(after1, after2)
	want := seedWeight + learner.alpha*(reward+learner.gamma*value2-value1)

	if !learner.step() {
		t.Fatal("expected the second step to move")
	}

	// 更新は直前のafterstateのインデックスだけに入り、
	// それ以外のエントリは一切増えない
	for i, table := range network.Weights() {
		if len(table) != 1 {
			t.Errorf("table %d has %d entries, want the update confined to the previous afterstate's index", i, len(table))
			continue
		}
		if got := table[domain.PatternIndex(after1, tuples[i])]; got != want {
			t.Errorf("table %d weight at the previous afterstate = %f, want %f", i, got, want)
		}
	}
}

func TestTrainSavesCheckpoints(t *testing.T) {
	dir := t.TempDir()
	learner := NewLearner(domain.NewNetwork(), 0.01, 0.95, rand.New(rand.NewSource(7)))

	if err := learner.Train(io.Discard, 3, 2, dir, 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if _, err := os.Stat(CheckpointPath(dir, 2)); err != nil {
		t.Errorf("expected checkpoint for episode 2: %v", err)
	}
	if _, err := os.Stat(CheckpointPath(dir, 3)); !os.IsNotExist(err) {
		t.Error("did not expect a checkpoint for episode 3")
	}

	episode, _, err := LoadCheckpoint(FinalCheckpointPath(dir))
	if err != nil {
		t.Fatalf("expected a final checkpoint: %v", err)
	}
	if episode != 3 {
		t.Errorf("final checkpoint episode = %d, want 3", episode)
	}
}

func TestTrainUsesStartEpisodeOffset(t *testing.T) {
	dir := t.TempDir()
	learner := NewLearner(domain.NewNetwork(), 0.01, 0.95, rand.New(rand.NewSource(7)))

	if err := learner.Train(io.Discard, 2, 1, dir, 10000); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// チェックポイント番号は通算エピソードになる
	for _, episode := range []int{10001, 10002} {
		if _, err := os.Stat(CheckpointPath(dir, episode)); err != nil {
			t.Errorf("expected checkpoint for episode %d: %v", episode, err)
		}
	}

	path, episode := FindLatestCheckpoint(dir)
	if episode != 10002 {
		t.Errorf("latest episode = %d (%s), want 10002", episode, path)
	}
}

func TestTrainCheckpointFailureIsFatal(t *testing.T) {
	// 書き込めない場所を渡すとエラーが返る
	file := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	learner := NewLearner(domain.NewNetwork(), 0.01, 0.95, rand.New(rand.NewSource(7)))
	dir := filepath.Join(file, "weights") // 親が通常ファイルなのでMkdirAllが失敗する
	if err := learner.Train(io.Discard, 1, 1, dir, 0); err == nil {
		t.Error("expected an error when the checkpoint cannot be written")
	}
}

func TestTrainTracksBestTile(t *testing.T) {
	learner := NewLearner(domain.NewNetwork(), 0.01, 0.95, rand.New(rand.NewSource(3)))

	if err := learner.Train(io.Discard, 2, 0, t.TempDir(), 0); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if learner.BestTile() < 4 {
		t.Errorf("best tile = %d, expected at least 4", learner.BestTile())
	}
}
