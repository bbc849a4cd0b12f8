package domain

import (
	"fmt"
	"math/bits"
)

// MaxPower はタイル指数の基数（radix）
// 盤面上のタイル指数はこの値未満でなければインデックスが衝突する
const MaxPower = 16

// Coord は盤面上の座標を表す
type Coord struct {
	Row, Col int
}

// Tuple は1つの特徴パターンを構成する座標列（固定長・順序付き）
type Tuple []Coord

// NewTuples は特徴として使うN-tupleの固定集合を生成する
// 横4行、縦4列、重なり合う2x2の正方形9個の順
func NewTuples() []Tuple {
	var tuples []Tuple

	// 横の行
	for r := 0; r < 4; r++ {
		t := make(Tuple, 0, 4)
		for c := 0; c < 4; c++ {
			t = append(t, Coord{r, c})
		}
		tuples = append(tuples, t)
	}

	// 縦の列
	for c := 0; c < 4; c++ {
		t := make(Tuple, 0, 4)
		for r := 0; r < 4; r++ {
			t = append(t, Coord{r, c})
		}
		tuples = append(tuples, t)
	}

	// 2x2の正方形
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			tuples = append(tuples, Tuple{
				{r, c}, {r, c + 1}, {r + 1, c}, {r + 1, c + 1},
			})
		}
	}

	return tuples
}

// PatternIndex はtupleの座標列上のタイル指数を混合基数の整数に符号化する
// 先頭の座標が最上位桁になる
// 指数がMaxPower以上のタイルは契約違反でありpanicする
func PatternIndex(b Board, t Tuple) int {
	index := 0
	for _, coord := range t {
		power := 0
		if v := b.Get(coord.Row, coord.Col); v > 0 {
			power = bits.TrailingZeros(uint(v))
		}
		if power >= MaxPower {
			panic(fmt.Sprintf("domain: tile exponent %d at (%d,%d) exceeds radix %d", power, coord.Row, coord.Col, MaxPower))
		}
		index = index*MaxPower + power
	}
	return index
}
