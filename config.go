package rtrest

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config is the file form of the connection settings of a Client.
type Config struct {
	// URL is the base URI of the RT instance, e.g. "https://rt.example.com/".
	URL string `yaml:"url"`

	// User and Password are the credentials for Login. Password may
	// reference environment variables as $VAR or ${VAR}.
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	LogLevel string        `yaml:"log_level"`
	Timeout  time.Duration `yaml:"timeout"`
	// Language is a BCP 47 tag, "en-US" when empty.
	Language string `yaml:"language"`

	// CustomFields selects the custom field notation per entity:
	// "new", "old" or empty for the default.
	CustomFields struct {
		Ticket string `yaml:"ticket"`
		Queue  string `yaml:"queue"`
		User   string `yaml:"user"`
	} `yaml:"custom_fields"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML config document.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.URL == "" {
		return nil, fmt.Errorf("config file has no url")
	}
	config.Password = os.ExpandEnv(config.Password)
	return &config, nil
}

// Options converts the config into the options of Client.Init.
func (c *Config) Options() (*Options, error) {
	opts := &Options{
		LogLevel: c.LogLevel,
		Timeout:  c.Timeout,
	}
	if c.Language != "" {
		tag, err := language.Parse(c.Language)
		if err != nil {
			return nil, fmt.Errorf("invalid language %q: %w", c.Language, err)
		}
		opts.Language = tag
	}

	notations := []struct {
		name  string
		value string
		dst   *CustomFieldNotation
	}{
		{"ticket", c.CustomFields.Ticket, &opts.Encoder.Ticket},
		{"queue", c.CustomFields.Queue, &opts.Encoder.Queue},
		{"user", c.CustomFields.User, &opts.Encoder.User},
	}
	for _, n := range notations {
		notation, err := parseNotation(n.value)
		if err != nil {
			return nil, fmt.Errorf("custom_fields.%s: %w", n.name, err)
		}
		*n.dst = notation
	}
	return opts, nil
}

func parseNotation(s string) (CustomFieldNotation, error) {
	switch s {
	case "":
		return DefaultNotation, nil
	case "new":
		return NewStyleNotation, nil
	case "old":
		return OldStyleNotation, nil
	default:
		return DefaultNotation, fmt.Errorf("unknown custom field notation %q", s)
	}
}
