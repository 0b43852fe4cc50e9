package tree

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Supported dump formats.
const (
	FormatAuto = "auto"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Load reads a dump file. An empty or "auto" format is resolved from the
// file extension. selector is a gjson path and only applies to JSON dumps.
func Load(path, format, selector string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	if format == "" || format == FormatAuto {
		format, err = DetectFormat(path)
		if err != nil {
			return nil, err
		}
	}

	root, err := Parse(data, format, selector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// DetectFormat picks a dump format from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("cannot detect dump format of %q: use --format yaml or json", path)
	}
}

// Parse decodes a dump held in memory.
func Parse(data []byte, format, selector string) (*Node, error) {
	switch format {
	case FormatYAML:
		if selector != "" {
			return nil, fmt.Errorf("selector %q is only supported for json dumps", selector)
		}
		return parseYAML(data)
	case FormatJSON:
		return parseJSON(data, selector)
	default:
		return nil, fmt.Errorf("unsupported dump format %q", format)
	}
}

func parseYAML(data []byte) (*Node, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse yaml dump: %w", err)
	}
	if root.TypeName == "" {
		return nil, fmt.Errorf("$: type is required")
	}
	return &root, nil
}

// UnmarshalYAML decodes a node and its children. Sizes must be plain
// decimal integers, as in json dumps.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	decoded, err := nodeFromYAML(value, "$")
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}

func nodeFromYAML(value *yaml.Node, path string) (*Node, error) {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null" {
		return nil, fmt.Errorf("%s: node is empty", path)
	}
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected an object", path)
	}

	n := &Node{}
	var children *yaml.Node
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		switch key.Value {
		case "type":
			if val.Kind == yaml.ScalarNode && val.ShortTag() == "!!str" {
				n.TypeName = val.Value
			}
		case "size":
			bytes, err := sizeFromYAML(val)
			if err != nil {
				return nil, fmt.Errorf("%s.size: %w", path, err)
			}
			n.Bytes = bytes
		case "children":
			children = val
		}
	}
	if n.TypeName == "" {
		return nil, fmt.Errorf("%s: type is required", path)
	}

	if children == nil || (children.Kind == yaml.ScalarNode && children.ShortTag() == "!!null") {
		return n, nil
	}
	if children.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%s.children: expected an array", path)
	}
	for i, child := range children.Content {
		c, err := nodeFromYAML(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Nodes = append(n.Nodes, c)
	}
	return n, nil
}

// sizeFromYAML accepts only !!int scalars written in decimal, so 1.5, 7.0,
// 1e3 and 0x10 are all rejected.
func sizeFromYAML(value *yaml.Node) (int64, error) {
	if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
		return 0, fmt.Errorf("expected an integer, got %s", value.Value)
	}
	bytes, err := strconv.ParseInt(value.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %s", value.Value)
	}
	return bytes, nil
}

func parseJSON(data []byte, selector string) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse json dump: invalid json")
	}

	result := gjson.ParseBytes(data)
	path := "$"
	if selector != "" {
		result = result.Get(selector)
		if !result.Exists() {
			return nil, fmt.Errorf("selector %q matched nothing", selector)
		}
		path = selector
	}
	return nodeFromJSON(result, path)
}

func nodeFromJSON(result gjson.Result, path string) (*Node, error) {
	if !result.IsObject() {
		return nil, fmt.Errorf("%s: expected an object", path)
	}

	typ := result.Get("type")
	if typ.Type != gjson.String || typ.Str == "" {
		return nil, fmt.Errorf("%s: type is required", path)
	}
	n := &Node{TypeName: typ.Str}

	if size := result.Get("size"); size.Exists() {
		if size.Type != gjson.Number {
			return nil, fmt.Errorf("%s.size: expected an integer, got %s", path, size.Raw)
		}
		bytes, err := strconv.ParseInt(size.Raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s.size: expected an integer, got %s", path, size.Raw)
		}
		n.Bytes = bytes
	}

	children := result.Get("children")
	if !children.Exists() || children.Type == gjson.Null {
		return n, nil
	}
	if !children.IsArray() {
		return nil, fmt.Errorf("%s.children: expected an array", path)
	}
	for i, child := range children.Array() {
		c, err := nodeFromJSON(child, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.Nodes = append(n.Nodes, c)
	}
	return n, nil
}
