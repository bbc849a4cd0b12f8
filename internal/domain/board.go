package domain

import "fmt"

// Direction はスワイプの方向を表す
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions は候補手を列挙する際の固定順
var Directions = []Direction{Up, Down, Left, Right}

// String は方向名を返す
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Board は4x4の2048ゲーム盤面を表す（immutable）
type Board struct {
	cells [4][4]int
}

// NewBoard は空のBoardを生成する
func NewBoard() Board {
	return Board{}
}

// NewBoardFromCells はセルの値を指定してBoardを生成する
func NewBoardFromCells(cells [4][4]int) Board {
	return Board{cells: cells}
}

// Get は指定した位置のセル値を取得する
func (b Board) Get(row, col int) int {
	return b.cells[row][col]
}

// Set は指定した位置に値を設定した新しいBoardを返す
func (b Board) Set(row, col, value int) Board {
	newBoard := b
	newBoard.cells[row][col] = value
	return newBoard
}

// EmptyCells は空のセルの座標一覧を返す
func (b Board) EmptyCells() [][2]int {
	var empty [][2]int
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if b.cells[r][c] == 0 {
				empty = append(empty, [2]int{r, c})
			}
		}
	}
	return empty
}

// MaxTile は盤面上の最大タイルの値を返す
func (b Board) MaxTile() int {
	max := 0
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if b.cells[r][c] > max {
				max = b.cells[r][c]
			}
		}
	}
	return max
}

// SwipeWithoutSpawn は指定した方向にスワイプした結果の盤面とスコアを返す（spawnなし）
// 列挙外の方向を渡すのは契約違反でありpanicする
func (b Board) SwipeWithoutSpawn(dir Direction) (Board, int) {
	newCells := [4][4]int{}
	totalScore := 0

	switch dir {
	case Left:
		for r := 0; r < 4; r++ {
			row := b.getRow(r)
			merged, score := mergeLine(row)
			totalScore += score
			for c := 0; c < 4; c++ {
				newCells[r][c] = merged[c]
			}
		}
	case Right:
		for r := 0; r < 4; r++ {
			row := b.getRow(r)
			reversed := reverseLine(row)
			merged, score := mergeLine(reversed)
			totalScore += score
			result := reverseLine(merged)
			for c := 0; c < 4; c++ {
				newCells[r][c] = result[c]
			}
		}
	case Up:
		for c := 0; c < 4; c++ {
			col := b.getCol(c)
			merged, score := mergeLine(col)
			totalScore += score
			for r := 0; r < 4; r++ {
				newCells[r][c] = merged[r]
			}
		}
	case Down:
		for c := 0; c < 4; c++ {
			col := b.getCol(c)
			reversed := reverseLine(col)
			merged, score := mergeLine(reversed)
			totalScore += score
			result := reverseLine(merged)
			for r := 0; r < 4; r++ {
				newCells[r][c] = result[r]
			}
		}
	default:
		panic(fmt.Sprintf("domain: invalid direction %d", int(dir)))
	}

	return Board{cells: newCells}, totalScore
}

// getRow は指定した行を配列として返す
func (b Board) getRow(row int) [4]int {
	return b.cells[row]
}

// getCol は指定した列を配列として返す
func (b Board) getCol(col int) [4]int {
	var result [4]int
	for r := 0; r < 4; r++ {
		result[r] = b.cells[r][col]
	}
	return result
}

// mergeLine は1行/1列を左方向にマージし、結果とスコアを返す
// 各タイルは1回の手で最大1回しかマージされない
func mergeLine(line [4]int) ([4]int, int) {
	score := 0

	// 0を除去して詰める
	var nonZero []int
	for _, v := range line {
		if v != 0 {
			nonZero = append(nonZero, v)
		}
	}

	// 同じ値が隣接していたらマージ
	var merged []int
	for i := 0; i < len(nonZero); i++ {
		if i+1 < len(nonZero) && nonZero[i] == nonZero[i+1] {
			newVal := nonZero[i] * 2
			merged = append(merged, newVal)
			score += newVal
			i++ // 次の要素をスキップ
		} else {
			merged = append(merged, nonZero[i])
		}
	}

	// 4要素の配列に戻す
	var result [4]int
	for i, v := range merged {
		if i < 4 {
			result[i] = v
		}
	}
	return result, score
}

// reverseLine は配列を反転する
func reverseLine(line [4]int) [4]int {
	return [4]int{line[3], line[2], line[1], line[0]}
}

// HasValidMoves はいずれかの方向に有効な手があるかどうかを返す
// 空きマスがあるか、縦横に隣接する同じ値の非ゼロペアがあれば真
func (b Board) HasValidMoves() bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if b.cells[r][c] == 0 {
				return true
			}
			if c < 3 && b.cells[r][c] == b.cells[r][c+1] {
				return true
			}
			if r < 3 && b.cells[r][c] == b.cells[r+1][c] {
				return true
			}
		}
	}
	return false
}

// Equal は2つのBoardが等しいかどうかを返す
func (b Board) Equal(other Board) bool {
	return b.cells == other.cells
}

// String はBoardをASCIIアートとして表示する
func (b Board) String() string {
	line := "+------+------+------+------+"
	result := line + "\n"
	for r := 0; r < 4; r++ {
		result += "|"
		for c := 0; c < 4; c++ {
			if b.cells[r][c] == 0 {
				result += "      |"
			} else {
				result += fmt.Sprintf("%5d |", b.cells[r][c])
			}
		}
		result += "\n" + line + "\n"
	}
	return result
}
