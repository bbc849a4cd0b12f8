package domain

import "math/rand"

// スポーン確率（2が90%、4が10%）
const spawn2Prob = 0.9

// Game は2048ゲームの状態を管理する
type Game struct {
	board    Board
	score    int
	gameOver bool
	rng      *rand.Rand
}

// NewGame は新しいゲームを開始する
func NewGame(rng *rand.Rand) *Game {
	g := &Game{rng: rng}
	g.Reset()
	return g
}

// NewGameFromBoard は指定した盤面・スコア0からゲームを開始する
// terminalフラグは盤面から導出される
func NewGameFromBoard(board Board, rng *rand.Rand) *Game {
	return &Game{
		board:    board,
		gameOver: !board.HasValidMoves(),
		rng:      rng,
	}
}

// Board は現在の盤面を返す
func (g *Game) Board() Board {
	return g.board
}

// Score は現在のスコアを返す
func (g *Game) Score() int {
	return g.score
}

// MaxTile は盤面上の最大タイルの値を返す
func (g *Game) MaxTile() int {
	return g.board.MaxTile()
}

// IsGameOver はゲームオーバーかどうかを返す
func (g *Game) IsGameOver() bool {
	return g.gameOver
}

// Move は指定した方向にスワイプを実行する
// 盤面が変化した場合はスコアを加算して1枚spawnし、trueを返す
// ゲームオーバー時や盤面が変化しない場合は何も変更せずfalseを返す
func (g *Game) Move(dir Direction) bool {
	if g.gameOver {
		return false
	}

	newBoard, score := g.board.SwipeWithoutSpawn(dir)
	if newBoard.Equal(g.board) {
		return false
	}

	g.score += score
	g.board = newBoard
	g.spawnTile()
	g.gameOver = !g.board.HasValidMoves()
	return true
}

// Reset はゲームを初期状態に戻す
func (g *Game) Reset() {
	g.board = NewBoard()
	g.score = 0
	g.gameOver = false
	g.spawnTile()
	g.spawnTile()
}

// spawnTile は空きマスにランダムにタイルを配置する
// 90%で2、10%で4が出現する
func (g *Game) spawnTile() {
	empty := g.board.EmptyCells()
	if len(empty) == 0 {
		return
	}

	pos := empty[g.rng.Intn(len(empty))]
	val := 2
	if g.rng.Float64() >= spawn2Prob {
		val = 4
	}
	g.board = g.board.Set(pos[0], pos[1], val)
}
