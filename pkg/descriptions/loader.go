// Package descriptions loads metric description tables from files.
//
// Supported formats, chosen by file extension:
//
//	.properties    key=value lines
//	.yaml / .yml   flat or nested maps; nested keys are joined with '_'
//	.json          same as YAML
//	.toml          same as YAML
//
// Every key is normalized, so "MyApp.Logins" and "myapp_logins" address the
// same metric.
package descriptions

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"

	"github.com/songzhibin97/prommetrics/pkg/metrics"
)

// Format names accepted by Parse.
const (
	FormatProperties = "properties"
	FormatYAML       = "yaml"
	FormatJSON       = "json"
	FormatTOML       = "toml"
)

// viper splits keys on its delimiter; "::" never occurs in a metric name.
const keyDelimiter = "::"

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "properties":
		return FormatProperties, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("descriptions: unsupported file extension %q", ext)
	}
}

// Load reads the description table stored at path.
func Load(path string) (metrics.Descriptions, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("descriptions: %w", err)
	}
	defer f.Close()

	d, err := Parse(f, format)
	if err != nil {
		return nil, fmt.Errorf("descriptions: %s: %w", path, err)
	}
	return d, nil
}

// Parse reads a description table in the given format from r.
func Parse(r io.Reader, format string) (metrics.Descriptions, error) {
	var (
		raw map[string]string
		err error
	)
	switch format {
	case FormatProperties:
		raw, err = parseProperties(r)
	case FormatYAML, FormatJSON, FormatTOML:
		raw, err = parseViper(r, format)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return metrics.NewDescriptions(raw), nil
}

func parseProperties(r io.Reader) (map[string]string, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p, err := properties.Load(buf, properties.UTF8)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

func parseViper(r io.Reader, format string) (map[string]string, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType(format)

	if err := v.ReadConfig(r); err != nil {
		return nil, err
	}

	raw := make(map[string]string)
	for _, key := range v.AllKeys() {
		raw[strings.ReplaceAll(key, keyDelimiter, "_")] = v.GetString(key)
	}
	return raw, nil
}
