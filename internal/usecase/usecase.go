package usecase

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
)

// PlayGame はCLIで2048ゲームを実行する
// weightsPathに学習済みの重みを指定するとAIアシストが賢くなる
// （空や読み込み失敗時は未学習のネットワークで動作する）
func PlayGame(r io.Reader, w io.Writer, rng *rand.Rand, weightsPath string) {
	game := domain.NewGame(rng)
	solver := domain.NewNTupleSolver(loadNetwork(w, weightsPath))
	reader := bufio.NewReader(r)

	fmt.Fprintln(w, "=== 2048 ===")
	fmt.Fprintln(w, "Controls: w=Up, s=Down, a=Left, d=Right, h=Hint, m=AI Move, q=Quit")
	fmt.Fprintln(w)

	for {
		fmt.Fprint(w, game.Board())
		fmt.Fprintf(w, "Score: %d\n", game.Score())

		if game.IsGameOver() {
			fmt.Fprintln(w, "Game Over!")
			break
		}

		fmt.Fprint(w, "Move: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			break
		}

		input = strings.TrimSpace(strings.ToLower(input))
		switch input {
		case "q":
			fmt.Fprintln(w, "Quit.")
			return
		case "h":
			// AIアシスト: 現在の盤面に対する推奨手を表示する
			if dir := solver.BestMove(game.Board()); dir != domain.Direction(-1) {
				fmt.Fprintf(w, "Hint: %s\n", dir)
			} else {
				fmt.Fprintln(w, "No valid moves.")
			}
			fmt.Fprintln(w)
			continue
		case "m":
			// AIに1手打たせる
			if dir := solver.BestMove(game.Board()); dir != domain.Direction(-1) {
				game.Move(dir)
				fmt.Fprintf(w, "AI moved: %s\n", dir)
			}
			fmt.Fprintln(w)
			continue
		}

		dir, ok := parseDirection(input)
		if !ok {
			fmt.Fprintln(w, "Invalid input. Use w/a/s/d, h for a hint, or q to quit.")
			continue
		}

		if !game.Move(dir) {
			fmt.Fprintln(w, "Cannot move in that direction.")
		}
		fmt.Fprintln(w)
	}
}

func parseDirection(input string) (domain.Direction, bool) {
	switch input {
	case "w":
		return domain.Up, true
	case "s":
		return domain.Down, true
	case "a":
		return domain.Left, true
	case "d":
		return domain.Right, true
	default:
		return 0, false
	}
}
