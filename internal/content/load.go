package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a supported document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported content format %q", filepath.Ext(path))
	}
}

// Decode parses data in the given format and fills in section defaults.
func Decode(data []byte, format Format) (*Portfolio, error) {
	var p Portfolio
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &p)
	case FormatYAML:
		err = yaml.Unmarshal(data, &p)
	case FormatTOML:
		err = toml.Unmarshal(data, &p)
	default:
		return nil, fmt.Errorf("unsupported content format %q", format)
	}
	if err != nil {
		return nil, err
	}
	p.applyDefaults()
	return &p, nil
}

// Load reads and decodes the content document at path.
func Load(path string) (*Portfolio, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	p, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decode content %s: %w", path, err)
	}
	return p, nil
}
