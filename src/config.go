package pawdialog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// DefaultFileBufferSize is the size, in UTF-16 code units, of the buffer the
// Windows dialog writes the selected path into
const DefaultFileBufferSize = 4096

// Config holds configuration options for the dialog service
type Config struct {
	Debug          bool     `yaml:"debug"`
	LogCategories  []string `yaml:"log_categories"`
	DialogTitle    string   `yaml:"dialog_title"`
	FileBufferSize int      `yaml:"file_buffer_size"`
	// Backend selects an alternative adapter in the sidecar: "zenity", "portal",
	// or empty for the platform default
	Backend string `yaml:"backend"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		DialogTitle:    "Open File",
		FileBufferSize: DefaultFileBufferSize,
	}
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".paw")
}

// GetConfigPath returns the full path to the config file.
func GetConfigPath() string {
	configDir := GetConfigDir()
	if configDir == "" {
		return ""
	}
	return filepath.Join(configDir, "pawdialog.yaml")
}

// LoadConfig reads a YAML config file over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if config.FileBufferSize <= 0 {
		config.FileBufferSize = DefaultFileBufferSize
	}
	if config.DialogTitle == "" {
		config.DialogTitle = "Open File"
	}

	return config, nil
}

// Apply pushes the logging settings into the logger
func (c *Config) Apply(logger *Logger) {
	if c == nil || logger == nil {
		return
	}
	logger.SetEnabled(c.Debug)
	logger.ResetCategories()
	for _, name := range c.LogCategories {
		if name == "all" {
			logger.EnableAllCategories()
			continue
		}
		logger.EnableCategory(LogCategory(name))
	}
}

// configSettleDelay is how long the config file must stay quiet before a
// change is reloaded
const configSettleDelay = 100 * time.Millisecond

// WatchConfig reloads the config file whenever it is written or recreated and
// hands the new config to onChange. Events are coalesced: the file is read
// only once it has been quiet for configSettleDelay. It blocks until ctx is done.
func WatchConfig(ctx context.Context, path string, logger *Logger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	name := filepath.Clean(path)
	settle := time.NewTimer(configSettleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// A rewrite truncates first; reading now would see an empty file
			settle.Reset(configSettleDelay)
		case <-settle.C:
			config, err := LoadConfig(path)
			if err != nil {
				logger.WarnCat(CatConfig, "Ignoring config change: %v", err)
				continue
			}
			logger.DebugCat(CatConfig, "Reloaded config from %s", path)
			onChange(config)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnCat(CatConfig, "Config watcher error: %v", err)
		}
	}
}
