package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SaveSearchURL updates the search engine in the config file.
func SaveSearchURL(configPath, searchURL string) error {
	return saveScalar(configPath, []string{"search_url"}, searchURL)
}

// SaveHistoryLimit updates the history cap in the config file.
func SaveHistoryLimit(configPath string, limit int) error {
	return saveScalar(configPath, []string{"history_limit"}, strconv.Itoa(limit))
}

// SaveProviderModel updates the provider model in the config file.
func SaveProviderModel(configPath, model string) error {
	return saveScalar(configPath, []string{"provider", "model"}, model)
}

// SaveMarkdownStyle updates the page rendering style in the config file.
func SaveMarkdownStyle(configPath, style string) error {
	return saveScalar(configPath, []string{"ui", "markdown_style"}, style)
}

// saveScalar sets a single scalar value at the given key path, preserving
// comments and formatting everywhere else by editing the yaml.Node tree.
func saveScalar(configPath string, path []string, value string) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode}},
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("config root is not a mapping")
	}

	setPath(doc.Content[0], path, value)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

// setPath walks the mapping nodes along path, creating intermediate maps
// as needed, and sets the final key to value.
func setPath(root *yaml.Node, path []string, value string) {
	node := root
	for _, key := range path[:len(path)-1] {
		child := findValue(node, key)
		if child == nil || child.Kind != yaml.MappingNode {
			child = &yaml.Node{Kind: yaml.MappingNode}
			appendOrReplace(node, key, child)
		}
		node = child
	}

	leaf := path[len(path)-1]
	appendOrReplace(node, leaf, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

// findValue returns the value node for key in a mapping, or nil.
func findValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// appendOrReplace sets key to value in a mapping, replacing an existing
// entry or appending a new one. The key node is kept when replacing so
// its head comment survives.
func appendOrReplace(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i < len(mapping.Content)-1; i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

// writeAtomic writes content to path via a temp file and rename.
func writeAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".mirage.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(content); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
