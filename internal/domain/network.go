package domain

import "fmt"

// 固定ヒューリスティック項の係数
const (
	emptyCellBonus    = 50.0
	monotonicityBonus = 50.0
	cornerBonusMinVal = 64
)

// corners はコーナーボーナスの走査順（左上、右上、左下、右下）
var corners = [4]Coord{{0, 0}, {0, 3}, {3, 0}, {3, 3}}

// WeightTable はPatternIndexから重みへの疎なマップ
// 未登録のインデックスは重み0.0として扱う
type WeightTable map[int]float64

// Network はN-tupleパターンごとの重みテーブルで盤面を評価する
// 重みの更新は学習器のみが行い、評価は読み取り専用
type Network struct {
	tuples  []Tuple
	weights []WeightTable
}

// NewNetwork は全重み0の新しいNetworkを生成する
func NewNetwork() *Network {
	tuples := NewTuples()
	weights := make([]WeightTable, len(tuples))
	for i := range weights {
		weights[i] = WeightTable{}
	}
	return &Network{tuples: tuples, weights: weights}
}

// Tuples はパターンの固定集合を返す
func (n *Network) Tuples() []Tuple {
	return n.tuples
}

// Weights は重みテーブルの一覧をパターン順で返す
func (n *Network) Weights() []WeightTable {
	return n.weights
}

// SetWeights はチェックポイントから読み込んだ重みテーブルを設定する
// テーブル数がパターン数と一致しない場合はエラー
func (n *Network) SetWeights(weights []WeightTable) error {
	if len(weights) != len(n.tuples) {
		return fmt.Errorf("domain: weight table count mismatch: got %d, want %d", len(weights), len(n.tuples))
	}
	for i, w := range weights {
		if w == nil {
			weights[i] = WeightTable{}
		}
	}
	n.weights = weights
	return nil
}

// Update は盤面の各パターンのインデックスにdeltaを加算する
func (n *Network) Update(b Board, delta float64) {
	for i, t := range n.tuples {
		index := PatternIndex(b, t)
		n.weights[i][index] += delta
	}
}

// Evaluate はN-tupleの重みと固定ヒューリスティックの和で盤面を評価する
func (n *Network) Evaluate(b Board) float64 {
	total := 0.0

	// 1. 学習済みのN-tuple重み
	for i, t := range n.tuples {
		total += n.weights[i][PatternIndex(b, t)]
	}

	// 2. 空きマスは価値が高い
	total += float64(len(b.EmptyCells())) * emptyCellBonus

	// 3. 単調性（行・列が整列しているほど良い）
	for i := 0; i < 4; i++ {
		if isMonotonicLine(b.getRow(i)) {
			total += monotonicityBonus
		}
		if isMonotonicLine(b.getCol(i)) {
			total += monotonicityBonus
		}
	}

	// 4. 最大タイルがコーナーにあると良い
	// 同値のコーナーが複数あっても最初の1つだけを加算する
	if maxTile := b.MaxTile(); maxTile >= cornerBonusMinVal {
		for _, c := range corners {
			if b.Get(c.Row, c.Col) == maxTile {
				total += float64(maxTile)
				break
			}
		}
	}

	return total
}

// isMonotonicLine は非ゼロタイルの並びが単調非減少または単調非増加かを返す
// 非ゼロタイルが1枚以下の行は単調とみなさない
func isMonotonicLine(line [4]int) bool {
	var tiles []int
	for _, v := range line {
		if v > 0 {
			tiles = append(tiles, v)
		}
	}
	if len(tiles) <= 1 {
		return false
	}

	increasing, decreasing := true, true
	for i := 0; i < len(tiles)-1; i++ {
		if tiles[i] > tiles[i+1] {
			increasing = false
		}
		if tiles[i] < tiles[i+1] {
			decreasing = false
		}
	}
	return increasing || decreasing
}
