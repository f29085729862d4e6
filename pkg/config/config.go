// Package config loads tree browser settings from a YAML file and maps
// the string-valued options onto engine modes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stef-k/MauiControlsExtras-sub003/pkg/treeview"
)

// Config is the on-disk configuration for the tree browser.
type Config struct {
	// Selection is one of "none", "single", "multiple".
	Selection string `yaml:"selection"`
	// Checks is one of "independent", "cascade", "tristate".
	Checks string `yaml:"checks"`
	// ShowCheckBoxes renders a check glyph per row.
	ShowCheckBoxes bool `yaml:"show_check_boxes"`
	// PageSize overrides the derived PageUp/PageDown step; 0 derives it
	// from the window height.
	PageSize int `yaml:"page_size"`
	// StateDir holds the persisted expansion/check state. Supports a
	// leading ~.
	StateDir string `yaml:"state_dir"`
	// SelectionFollowsFocus makes cursor movement select as it goes.
	SelectionFollowsFocus bool `yaml:"selection_follows_focus"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Selection: "single",
		Checks:    "independent",
		StateDir:  "~/.config/treebrowse",
	}
}

// Load reads the configuration at path. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enum-valued fields.
func (c Config) Validate() error {
	if _, err := c.SelectionMode(); err != nil {
		return err
	}
	if _, err := c.CheckMode(); err != nil {
		return err
	}
	if c.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", c.PageSize)
	}
	return nil
}

// SelectionMode maps the selection string onto the engine mode.
func (c Config) SelectionMode() (treeview.SelectionMode, error) {
	switch strings.ToLower(c.Selection) {
	case "", "none":
		return treeview.SelectionNone, nil
	case "single":
		return treeview.SelectionSingle, nil
	case "multiple":
		return treeview.SelectionMultiple, nil
	}
	return treeview.SelectionNone, fmt.Errorf("unknown selection mode %q", c.Selection)
}

// CheckMode maps the checks string onto the engine mode.
func (c Config) CheckMode() (treeview.CheckMode, error) {
	switch strings.ToLower(c.Checks) {
	case "", "independent":
		return treeview.CheckIndependent, nil
	case "cascade":
		return treeview.CheckCascade, nil
	case "tristate":
		return treeview.CheckTriState, nil
	}
	return treeview.CheckIndependent, fmt.Errorf("unknown check mode %q", c.Checks)
}

// StatePath returns the file the tree state persists to.
func (c Config) StatePath() string {
	return filepath.Join(expandHome(c.StateDir), "tree-state.json")
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
