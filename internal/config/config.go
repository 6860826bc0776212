package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ini "github.com/go-ini/ini"

	"vietkey/internal/layout"
	"vietkey/internal/shortcut"
)

// Config is the runtime configuration hosts feed the engine with.
type Config struct {
	Scheme     string
	Enabled    bool
	ToneStyle  string
	OutputForm string
	// ShortcutFile optionally points at a TSV shortcut table.
	ShortcutFile string
	// Shortcuts holds the inline [shortcuts] section pairs.
	Shortcuts map[string]string
}

const (
	defaultScheme     = "telex"
	defaultToneStyle  = "modern"
	defaultOutputForm = "nfc"
)

// ConfigError reports a rejected configuration value.
type ConfigError struct {
	msg string
}

func (e ConfigError) Error() string { return e.msg }

func defaults() Config {
	return Config{
		Scheme:     defaultScheme,
		Enabled:    true,
		ToneStyle:  defaultToneStyle,
		OutputForm: defaultOutputForm,
		Shortcuts:  map[string]string{},
	}
}

// Load reads an ini file. A missing file (or empty path) yields the
// defaults so first runs need no setup.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config: %s is a directory", path)
	}

	file, err := ini.Load(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	input := file.Section("input")
	cfg.Scheme = strings.ToLower(input.Key("scheme").MustString(cfg.Scheme))
	cfg.Enabled = input.Key("enabled").MustBool(cfg.Enabled)
	cfg.ToneStyle = strings.ToLower(input.Key("tone_style").MustString(cfg.ToneStyle))
	cfg.OutputForm = strings.ToLower(input.Key("output_form").MustString(cfg.OutputForm))
	cfg.ShortcutFile = input.Key("shortcut_file").MustString("")

	switch cfg.Scheme {
	case "telex", "vni":
	default:
		return cfg, ConfigError{msg: fmt.Sprintf("invalid scheme '%s' in %s", cfg.Scheme, path)}
	}
	switch cfg.ToneStyle {
	case "modern", "traditional":
	default:
		return cfg, ConfigError{msg: fmt.Sprintf("invalid tone_style '%s' in %s", cfg.ToneStyle, path)}
	}
	switch cfg.OutputForm {
	case "nfc", "nfd":
	default:
		return cfg, ConfigError{msg: fmt.Sprintf("invalid output_form '%s' in %s", cfg.OutputForm, path)}
	}

	for _, key := range file.Section("shortcuts").Keys() {
		trigger := strings.TrimSpace(key.Name())
		expansion := strings.TrimSpace(key.Value())
		if trigger == "" || expansion == "" {
			continue
		}
		cfg.Shortcuts[trigger] = expansion
	}

	return cfg, nil
}

// Method converts the scheme name to its engine method.
func (c Config) Method() layout.Method {
	if c.Scheme == "vni" {
		return layout.MethodVNI
	}
	return layout.MethodTelex
}

// ModernTone reports whether the modern placement style is selected.
func (c Config) ModernTone() bool {
	return c.ToneStyle != "traditional"
}

// BuildShortcuts assembles the shortcut table from the inline section and
// the optional TSV file. Inline entries carry priority 0; file entries
// keep the priority column they declare.
func (c Config) BuildShortcuts() (*shortcut.Table, error) {
	table := shortcut.NewTable()
	for trigger, expansion := range c.Shortcuts {
		table.Add(trigger, expansion, 0)
	}
	if c.ShortcutFile != "" {
		if err := table.LoadTSV(c.ShortcutFile); err != nil {
			return table, err
		}
	}
	return table, nil
}
