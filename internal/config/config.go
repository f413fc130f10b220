package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/robert-at-pretension-io/vhdl-style/internal/validator"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "vhdl_style.yaml"

// EnvPrefix prefixes the environment variables overriding the file. A
// double underscore separates nested keys: VHDL_STYLE_STYLE__LINE_LENGTH.
const EnvPrefix = "VHDL_STYLE_"

// Config is the top-level configuration for vhdl-style
type Config struct {
	// Standard is the VHDL revision: "87", "93", "93c", "00", "02" or "08".
	Standard string `koanf:"standard" yaml:"standard"`

	// Work is the name of the library units are analyzed into.
	Work string `koanf:"work" yaml:"work"`

	// IEEE selects the flavor of the ieee library: "standard" or "synopsys".
	IEEE string `koanf:"ieee" yaml:"ieee"`

	Quiet bool `koanf:"quiet" yaml:"quiet"`

	// MaxParallelFiles limits concurrent file reads (0 = auto)
	MaxParallelFiles int `koanf:"max_parallel_files" yaml:"max_parallel_files"`

	// Rules maps rule names to "on" or "off"
	Rules map[string]string `koanf:"rules" yaml:"rules"`

	Style StyleConfig `koanf:"style" yaml:"style"`

	Lint LintConfig `koanf:"lint" yaml:"lint"`

	// Policies is a directory of .rego files run as extra rules.
	Policies string `koanf:"policies" yaml:"policies,omitempty"`
}

// StyleConfig holds the parameters of the rule set.
type StyleConfig struct {
	LineLength        int      `koanf:"line_length" yaml:"line_length"`
	IndentWidth       int      `koanf:"indent_width" yaml:"indent_width"`
	Extension         string   `koanf:"extension" yaml:"extension"`
	AllowedAttributes []string `koanf:"allowed_attributes" yaml:"allowed_attributes"`
	IeeeExtraPackages []string `koanf:"ieee_extra_packages" yaml:"ieee_extra_packages"`
}

// LintConfig contains linting configuration
type LintConfig struct {
	// ImportPatterns are globs of files analyzed but never checked, as if
	// listed after --import.
	ImportPatterns []string `koanf:"import_patterns" yaml:"import_patterns,omitempty"`
}

func defaults() map[string]any {
	return map[string]any{
		"standard":                  "93c",
		"work":                      "work",
		"ieee":                      "standard",
		"quiet":                     false,
		"max_parallel_files":        0,
		"style.line_length":         132,
		"style.indent_width":        2,
		"style.extension":           ".vhd",
		"style.allowed_attributes":  []any{"keep", "shreg_extract", "opt_mode", "resource_sharing", "altera_attribute"},
		"style.ieee_extra_packages": []any{"math_real", "std_logic_misc", "std_logic_textio"},
	}
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	cfg, err := load("", nil)
	if err != nil {
		panic(fmt.Sprintf("config: defaults do not load: %v", err))
	}
	return cfg
}

// Find returns the configuration file to use.
// Search order:
//  1. explicit (from --config)
//  2. ./vhdl_style.yaml
//  3. ./.vhdl_style.yaml
//  4. ~/.config/vhdl_style/config.yaml
//
// An empty result means no file was found.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}
	searchPaths := []string{FileName, "." + FileName}
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(home, ".config", "vhdl_style", "config.yaml"))
	}
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load finds and loads the configuration. Defaults come first, then the
// file, then the environment. Returns DefaultConfig when no file is found
// and no variable is set.
func Load(explicit string) (*Config, error) {
	return load(Find(explicit), os.Environ())
}

// LoadFile loads configuration from a specific file, ignoring the
// environment.
func LoadFile(path string) (*Config, error) {
	return load(path, nil)
}

func load(path string, environ []string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	if err := validator.ValidateConfig(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if hasEnv(environ) {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, fmt.Errorf("loading env vars: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func hasEnv(environ []string) bool {
	for _, kv := range environ {
		if strings.HasPrefix(kv, EnvPrefix) {
			return true
		}
	}
	return false
}

// envKey maps VHDL_STYLE_STYLE__LINE_LENGTH to style.line_length.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// applyDefaults fills in what the environment may have blanked
func (c *Config) applyDefaults() {
	if c.Standard == "" {
		c.Standard = "93c"
	}
	if c.Work == "" {
		c.Work = "work"
	}
	if c.IEEE == "" {
		c.IEEE = "standard"
	}
	if c.Rules == nil {
		c.Rules = make(map[string]string)
	}
	if c.Style.LineLength <= 0 {
		c.Style.LineLength = 132
	}
	if c.Style.IndentWidth <= 0 {
		c.Style.IndentWidth = 2
	}
	if c.Style.Extension == "" {
		c.Style.Extension = ".vhd"
	}
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// FrontendOptions returns the front-end flags selected by the configuration.
func (c *Config) FrontendOptions() []string {
	return []string{"--std=" + c.Standard, "--work=" + c.Work, "--ieee=" + c.IEEE}
}

// IsRuleEnabled returns true if the rule is not set to "off"
func (c *Config) IsRuleEnabled(rule string) bool {
	if state, ok := c.Rules[rule]; ok {
		return state != "off"
	}
	return true // enabled by default
}

// ImportMatcher returns a predicate telling whether a file matches one of
// the import patterns. A pattern without a separator also matches the
// base name.
func (c *Config) ImportMatcher() (func(string) bool, error) {
	if len(c.Lint.ImportPatterns) == 0 {
		return nil, nil
	}
	type pattern struct {
		g        glob.Glob
		baseOnly bool
	}
	var pats []pattern
	for _, p := range c.Lint.ImportPatterns {
		g, err := glob.Compile(filepath.ToSlash(p), '/')
		if err != nil {
			return nil, fmt.Errorf("import pattern %q: %w", p, err)
		}
		pats = append(pats, pattern{g: g, baseOnly: !strings.Contains(p, "/")})
	}
	return func(name string) bool {
		name = filepath.ToSlash(filepath.Clean(name))
		for _, p := range pats {
			if p.g.Match(name) {
				return true
			}
			if p.baseOnly && p.g.Match(filepath.Base(name)) {
				return true
			}
		}
		return false
	}, nil
}
