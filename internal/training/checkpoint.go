package training

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nnaakkaaii/ntuple2048/internal/domain"
)

// チェックポイントのファイル名規約: ntuple_weights_<episode>.json
// 最終スナップショットのみ ntuple_weights_final.json
const (
	checkpointLayout = "ntuple_v1"
	checkpointPrefix = "ntuple_weights_"
	checkpointExt    = ".json"
	finalLabel       = "final"
)

// checkpointFile はチェックポイントのシリアライズ形式
// layoutタグとepisode番号を明示的に持つ
type checkpointFile struct {
	Layout  string               `json:"layout"`
	Episode int                  `json:"episode"`
	Tables  []domain.WeightTable `json:"tables"`
}

// CheckpointPath は指定エピソードの定期チェックポイントのパスを返す
func CheckpointPath(dir string, episode int) string {
	return filepath.Join(dir, fmt.Sprintf("%s%d%s", checkpointPrefix, episode, checkpointExt))
}

// FinalCheckpointPath は学習終了時のスナップショットのパスを返す
func FinalCheckpointPath(dir string) string {
	return filepath.Join(dir, checkpointPrefix+finalLabel+checkpointExt)
}

// SaveCheckpoint は重みテーブル一式をエピソード番号付きで保存する
// tmpファイルに書いてからrenameするため、書き込み途中のクラッシュで
// 既存の有効なチェックポイントが壊れることはない
func SaveCheckpoint(path string, episode int, tables []domain.WeightTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("training: create checkpoint dir: %w", err)
	}

	payload := checkpointFile{
		Layout:  checkpointLayout,
		Episode: episode,
		Tables:  tables,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("training: encode checkpoint: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("training: write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("training: finalize checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint はチェックポイントを読み込み、エピソード番号と重みテーブルを返す
func LoadCheckpoint(path string) (int, []domain.WeightTable, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("training: read checkpoint: %w", err)
	}

	var payload checkpointFile
	if err := json.Unmarshal(b, &payload); err != nil {
		return 0, nil, fmt.Errorf("training: decode checkpoint: %w", err)
	}
	if payload.Layout != checkpointLayout {
		return 0, nil, fmt.Errorf("training: unknown checkpoint layout %q", payload.Layout)
	}
	return payload.Episode, payload.Tables, nil
}

// FindLatestCheckpoint はディレクトリ内の最新の定期チェックポイントを探す
// finalファイルとエピソード番号を解析できないファイルはスキップする
// 見つからない場合は("", 0)を返す
func FindLatestCheckpoint(dir string) (string, int) {
	matches, err := filepath.Glob(filepath.Join(dir, checkpointPrefix+"*"+checkpointExt))
	if err != nil {
		return "", 0
	}

	latestEpisode := -1
	latestPath := ""
	for _, path := range matches {
		label := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), checkpointPrefix), checkpointExt)
		if label == finalLabel {
			continue
		}
		episode, err := strconv.Atoi(label)
		if err != nil || episode < 0 {
			continue
		}
		if episode > latestEpisode {
			latestEpisode = episode
			latestPath = path
		}
	}

	if latestPath == "" {
		return "", 0
	}
	return latestPath, latestEpisode
}
