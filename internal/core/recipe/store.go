package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recipe-assistant/internal/pkg/common"

	"gopkg.in/yaml.v3"
)

// LoadEntries 讀取靜態食譜庫檔案，依副檔名選擇 JSON 或 YAML
func LoadEntries(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe store: %w", err)
	}
	return DecodeEntries(data, filepath.Ext(path))
}

// DecodeEntries 解析食譜庫內容；ext 為 ".yaml"/".yml" 時以 YAML 解析，其餘皆視為 JSON
func DecodeEntries(data []byte, ext string) ([]map[string]any, error) {
	var entries []map[string]any

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse yaml recipe store: %w", err)
		}
	default:
		if err := common.ParseJSONBytes(data, &entries); err != nil {
			return nil, fmt.Errorf("failed to parse json recipe store: %w", err)
		}
	}

	return entries, nil
}

// LoadIndex 讀取檔案並建立索引
func LoadIndex(path string) (*Index, error) {
	entries, err := LoadEntries(path)
	if err != nil {
		return nil, err
	}
	return BuildIndex(entries), nil
}
