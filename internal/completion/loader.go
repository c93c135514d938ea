package completion

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported completions file format")

// poolFile is the mapping form accepted by the YAML and TOML loaders.
type poolFile struct {
	Completions []string `yaml:"completions" toml:"completions"`
}

// Load reads a candidate pool from path. The format is picked from the file
// extension: .txt or no extension is one candidate per line, .yaml/.yml is
// either a list or a mapping with a completions key, .toml needs a
// completions array. Order and duplicates are preserved.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read completions file %s: %w", path, err)
	}

	var pool []string
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt":
		pool, err = parseLines(data)
	case ".yaml", ".yml":
		pool, err = parseYAML(data)
	case ".toml":
		pool, err = parseTOML(data)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse completions file %s: %w", path, err)
	}

	return pool, nil
}

// parseLines skips blank lines and lines starting with #.
func parseLines(data []byte) ([]string, error) {
	var pool []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pool = append(pool, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pool, nil
}

func parseYAML(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var pool []string
		if err := root.Decode(&pool); err != nil {
			return nil, err
		}
		return pool, nil
	case yaml.MappingNode:
		var file poolFile
		if err := root.Decode(&file); err != nil {
			return nil, err
		}
		return file.Completions, nil
	default:
		return nil, fmt.Errorf("expected a list or a mapping at line %d", root.Line)
	}
}

func parseTOML(data []byte) ([]string, error) {
	var file poolFile
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, err
	}
	if !meta.IsDefined("completions") {
		return nil, errors.New("missing completions array")
	}
	return file.Completions, nil
}

// Merge appends the values in extra that are not already in pool.
func Merge(pool []string, extra []string) []string {
	merged := append([]string(nil), pool...)
	for _, value := range lo.Uniq(extra) {
		if !lo.Contains(pool, value) {
			merged = append(merged, value)
		}
	}
	return merged
}
