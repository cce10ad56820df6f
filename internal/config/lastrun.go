package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// LastRun records the URL pair used by the most recent generation so a
// later run can reuse it.
type LastRun struct {
	VisibleURL  string `mapstructure:"last_visible_url"`
	RedirectURL string `mapstructure:"last_redirect_url"`
}

const lastRunFile = ".linkforge.json"

// LastRunPath is where the last-run state lives inside dir.
func LastRunPath(dir string) string {
	return filepath.Join(dir, lastRunFile)
}

// LoadLastRun reads the saved URL pair from path.
func LoadLastRun(path string) (LastRun, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return LastRun{}, fmt.Errorf("read last-run state: %w", err)
	}

	var state LastRun
	if err := v.Unmarshal(&state); err != nil {
		return LastRun{}, fmt.Errorf("unmarshal last-run state: %w", err)
	}
	return state, nil
}

// SaveLastRun persists the URL pair to path, overwriting any previous state.
func SaveLastRun(path string, state LastRun) error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("last_visible_url", state.VisibleURL)
	v.Set("last_redirect_url", state.RedirectURL)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write last-run state: %w", err)
	}
	return nil
}
