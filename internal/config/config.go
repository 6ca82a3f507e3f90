package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/semnet/internal/graph"
)

// ProjectFile is the name of the per-project override looked up from the cwd.
const ProjectFile = ".semnet.toml"

// Config holds semnet configuration.
type Config struct {
	Graph    GraphConfig    `toml:"graph"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	UI       UIConfig       `toml:"ui"`
	Parallel ParallelConfig `toml:"parallel"`
	Survey   SurveyConfig   `toml:"survey"`
}

// GraphConfig controls the semantic network view.
type GraphConfig struct {
	Path             string  `toml:"path"` // empty uses the embedded sample
	ThresholdMin     float64 `toml:"threshold_min"`
	ThresholdMax     float64 `toml:"threshold_max"`
	ThresholdStep    float64 `toml:"threshold_step"`
	ThresholdDefault float64 `toml:"threshold_default"`
	TopK             int     `toml:"top_k"`
}

// Range returns the configured slider bounds.
func (g GraphConfig) Range() graph.ThresholdRange {
	return graph.ThresholdRange{Min: g.ThresholdMin, Max: g.ThresholdMax, Step: g.ThresholdStep}.Normalize()
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	ReadTimeout Duration `toml:"read_timeout"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "text", "json"
}

// UIConfig controls terminal output.
type UIConfig struct {
	Color bool `toml:"color"`
}

// ParallelConfig controls concurrent artifact validation.
type ParallelConfig struct {
	Concurrency int `toml:"concurrency"`
}

// SurveyConfig points at the survey answer counts.
type SurveyConfig struct {
	Path string `toml:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			ThresholdMin:     0.49,
			ThresholdMax:     0.65,
			ThresholdStep:    0.01,
			ThresholdDefault: 0.55,
			TopK:             5,
		},
		Server:   ServerConfig{Addr: ":8080", ReadTimeout: Duration{10 * time.Second}},
		Log:      LogConfig{Level: "info", Format: "text"},
		UI:       UIConfig{Color: true},
		Parallel: ParallelConfig{Concurrency: 4},
	}
}

// ConfigDir returns the semnet config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "semnet")
}

// Path returns the global config file path.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the global config file, then overlays the nearest project file.
// Missing or unreadable files leave the defaults in place.
func Load() *Config {
	cfg := Default()

	if data, err := os.ReadFile(Path()); err == nil {
		_ = toml.Unmarshal(data, cfg)
	}
	if project := findProjectConfig(); project != "" {
		if data, err := os.ReadFile(project); err == nil {
			_ = toml.Unmarshal(data, cfg)
		}
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// EnsureExists creates the config file with defaults if it doesn't exist.
func EnsureExists() error {
	if _, err := os.Stat(Path()); err == nil {
		return nil // already exists
	}
	return Save(Default())
}

// findProjectConfig walks up from the working directory looking for ProjectFile.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
