package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/memsim/request"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

// Format selects how simulation results are printed
type Format string

const (
	FormatTable Format = "table"
	FormatMap   Format = "map"
	FormatJSON  Format = "json"
)

var formats = map[Format]struct{}{
	FormatTable: {},
	FormatMap:   {},
	FormatJSON:  {},
}

// Field is a request field read from YAML. It accepts either a plain scalar ("250,150"), a
// sequence of sizes ([250, 150]) or, for segments, a sequence of sequences ([[100, 200], [150]]),
// and always holds the textual form the request parser expects.
type Field string

func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	text, err := fieldText(node, 0)
	if err != nil {
		return err
	}
	*f = Field(text)
	return nil
}

func fieldText(node *yaml.Node, depth int) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.SequenceNode:
		if depth > 1 {
			return "", errors.Newf("line %d: sizes may be nested at most two levels deep", node.Line)
		}

		delimiter := ","
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			delimiter = ";"
		}

		parts := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			part, err := fieldText(child, depth+1)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, delimiter), nil
	default:
		return "", errors.Newf("line %d: expected a scalar or a sequence", node.Line)
	}
}

// Config is the contents of a request file
type Config struct {
	TotalMemory  Field `yaml:"total_memory"`
	Processes    Field `yaml:"processes"`
	ProcessSizes Field `yaml:"process_sizes"`
	PageSize     Field `yaml:"page_size"`
	Segments     Field `yaml:"segments"`

	Format   Format `yaml:"format"`
	LogLevel string `yaml:"log_level"`
}

// Load reads a request file from disk
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open request file")
	}
	defer file.Close()

	cfg := &Config{}
	d := yaml.NewDecoder(file)
	d.KnownFields(true)
	if err := d.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode request file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid request file %s", path)
	}

	return cfg, nil
}

// Validate checks the output settings of the config. Request fields are checked by
// request.Parse.
func (c *Config) Validate() error {
	if c.Format != "" {
		if _, ok := formats[c.Format]; !ok {
			return errors.Newf("unknown format %q", c.Format)
		}
	}

	if c.LogLevel != "" {
		if _, err := c.Level(); err != nil {
			return err
		}
	}

	return nil
}

// Raw returns the request fields of the config, ready for request.Parse
func (c *Config) Raw() request.Raw {
	return request.Raw{
		TotalMemory:  string(c.TotalMemory),
		Processes:    string(c.Processes),
		ProcessSizes: string(c.ProcessSizes),
		PageSize:     string(c.PageSize),
		Segments:     string(c.Segments),
	}
}

// Level returns the configured log level, defaulting to slog.LevelWarn
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, errors.Wrapf(err, "unknown log level %q", c.LogLevel)
	}
	return level, nil
}

// FormatOrDefault returns the configured output format, defaulting to FormatTable
func (c *Config) FormatOrDefault() Format {
	if c.Format == "" {
		return FormatTable
	}
	return c.Format
}

// ParseFormat validates a format name supplied outside of a config file
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := formats[format]; !ok {
		return "", errors.Newf("unknown format %q, expected one of table, map, json", name)
	}
	return format, nil
}
