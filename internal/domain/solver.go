package domain

// NTupleSolver はEvaluatorで各手のafterstateを評価して最良の手を選ぶ
// 探索は1手のみ（spawn前の盤面を評価する）
type NTupleSolver struct {
	evaluator Evaluator
}

// NewNTupleSolver は新しいNTupleSolverを生成する
func NewNTupleSolver(evaluator Evaluator) *NTupleSolver {
	return &NTupleSolver{evaluator: evaluator}
}

// BestMove は現在の盤面から最良の手を返す
// 有効な手がない場合は-1を返す
func (s *NTupleSolver) BestMove(board Board) Direction {
	dir, _, _ := s.BestMoveWithValue(board)
	return dir
}

// BestMoveWithValue は最良の手とそのafterstate（spawn前の盤面）と評価値を返す
// 評価値が同じ場合は固定順（Up, Down, Left, Right）で先の方向を採用する
func (s *NTupleSolver) BestMoveWithValue(board Board) (Direction, Board, float64) {
	bestDir := Direction(-1)
	bestValue := float64(-1e18)
	var bestAfterstate Board

	for _, dir := range Directions {
		afterstate, _ := board.SwipeWithoutSpawn(dir)
		if afterstate.Equal(board) {
			continue
		}

		value := s.evaluator.Evaluate(afterstate)
		if value > bestValue {
			bestValue = value
			bestDir = dir
			bestAfterstate = afterstate
		}
	}

	return bestDir, bestAfterstate, bestValue
}
