package usecase

import (
	"fmt"
	"io"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
	"github.com/nnaakkaaii/ntuple2048/internal/training"
)

// loadNetwork はチェックポイントから重みを読み込んだNetworkを返す
// パスが空、またはファイルが読めない/壊れている場合は警告を出して
// 未学習（全重み0）のNetworkを返す。読み込み失敗は致命的ではない
func loadNetwork(w io.Writer, weightsPath string) *domain.Network {
	network := domain.NewNetwork()
	if weightsPath == "" {
		return network
	}

	_, tables, err := training.LoadCheckpoint(weightsPath)
	if err != nil {
		fmt.Fprintf(w, "Warning: could not load weights from %s: %v. Using untrained network.\n", weightsPath, err)
		return network
	}
	if err := network.SetWeights(tables); err != nil {
		// SetWeightsは失敗時にレシーバを変更しないので、そのまま未学習のまま返せる
		fmt.Fprintf(w, "Warning: invalid weights in %s: %v. Using untrained network.\n", weightsPath, err)
		return network
	}

	fmt.Fprintf(w, "Loaded weights from: %s\n", weightsPath)
	return network
}
