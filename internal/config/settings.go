package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// MaxRecent bounds the recent files list.
const MaxRecent = 10

// Settings are the user preferences kept between runs.
type Settings struct {
	Language string   `toml:"language"`
	FontSize int      `toml:"font_size"`
	LastDir  string   `toml:"last_dir"`
	Recent   []string `toml:"recent"`
}

func DefaultSettings(cfg Config) Settings {
	return Settings{Language: cfg.Language, FontSize: 10}
}

// LoadSettings reads path on top of the defaults. A missing file is not an
// error.
func LoadSettings(path string, cfg Config) (Settings, error) {
	s := DefaultSettings(cfg)
	if _, err := toml.DecodeFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return DefaultSettings(cfg), fmt.Errorf("settings %s: %w", path, err)
	}
	if len(s.Recent) > MaxRecent {
		s.Recent = s.Recent[:MaxRecent]
	}
	return s, nil
}

func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("settings %s: %w", path, err)
	}
	return f.Close()
}

// Remember moves path to the front of the recent list and makes its
// directory the last one used.
func (s *Settings) Remember(path string) {
	recent := make([]string, 0, MaxRecent)
	recent = append(recent, path)
	for _, p := range s.Recent {
		if p != path && len(recent) < MaxRecent {
			recent = append(recent, p)
		}
	}
	s.Recent = recent
	s.LastDir = filepath.Dir(path)
}
