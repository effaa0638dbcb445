// Package store provides persistence for per-user formatting settings.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/formaterror"
	"fintrack/currency-format/internal/logging"

	"gopkg.in/yaml.v3"
)

// ErrNoUser is returned when a write is attempted without a user name.
var ErrNoUser = errors.New("user name is required")

// SettingsStore loads and saves user settings.
type SettingsStore interface {
	Load(user string) (currencyfmt.Settings, error)
	Save(user string, settings currencyfmt.Settings) error
	Update(user string, patch currencyfmt.Settings) (currencyfmt.Settings, error)
	Delete(user string) error
	Users() ([]string, error)
}

// settingsFile is the on-disk layout.
type settingsFile struct {
	Users map[string]currencyfmt.Settings `yaml:"users"`
}

// rawSettingsFile is used for reading so loosely typed values are accepted.
type rawSettingsFile struct {
	Users map[string]map[string]interface{} `yaml:"users"`
}

// YAMLStore keeps every user's settings in a single YAML file.
type YAMLStore struct {
	SettingsFile string

	mu     sync.Mutex
	logger logging.Logger
}

// NewYAMLStore creates a store backed by settingsFile.
func NewYAMLStore(settingsFile string, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &YAMLStore{SettingsFile: settingsFile, logger: logger}
}

// FindConfigFile looks for a settings file in standard locations
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	// Then the user's home directory under .config/currency-format/
	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "currency-format", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// path returns the existing file, or the configured name when none exists yet.
func (s *YAMLStore) path() string {
	filename := s.SettingsFile
	if filename == "" {
		filename = "settings.yaml"
	}
	if found, err := FindConfigFile(filename); err == nil {
		return found
	}
	return filename
}

// Load returns the stored settings for user. Unknown users, an empty user name
// and a missing file all yield empty settings.
func (s *YAMLStore) Load(user string) (currencyfmt.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == "" {
		return currencyfmt.Settings{}, nil
	}

	all, err := s.readAll()
	if err != nil {
		return currencyfmt.Settings{}, &formaterror.SettingsError{User: user, Op: "load", Err: err}
	}
	return all[user], nil
}

// Save replaces the stored settings for user.
func (s *YAMLStore) Save(user string, settings currencyfmt.Settings) error {
	if user == "" {
		return &formaterror.SettingsError{Op: "save", Err: ErrNoUser}
	}
	if err := settings.Validate(); err != nil {
		return &formaterror.SettingsError{User: user, Op: "save", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return &formaterror.SettingsError{User: user, Op: "save", Err: err}
	}
	all[user] = settings
	if err := s.writeAll(all); err != nil {
		return &formaterror.SettingsError{User: user, Op: "save", Err: err}
	}
	s.logger.Debug("Saved user settings", logging.Field{Key: logging.FieldUser, Value: user})
	return nil
}

// Update merges patch into the stored settings for user and saves the result.
// The merged settings are validated before anything is written.
func (s *YAMLStore) Update(user string, patch currencyfmt.Settings) (currencyfmt.Settings, error) {
	if user == "" {
		return currencyfmt.Settings{}, &formaterror.SettingsError{Op: "update", Err: ErrNoUser}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return currencyfmt.Settings{}, &formaterror.SettingsError{User: user, Op: "update", Err: err}
	}

	merged := all[user].Merge(patch)
	if err := merged.Validate(); err != nil {
		return currencyfmt.Settings{}, &formaterror.SettingsError{User: user, Op: "update", Err: err}
	}

	all[user] = merged
	if err := s.writeAll(all); err != nil {
		return currencyfmt.Settings{}, &formaterror.SettingsError{User: user, Op: "update", Err: err}
	}
	s.logger.Info("Updated user settings", logging.Field{Key: logging.FieldUser, Value: user})
	return merged, nil
}

// Delete removes user's settings. Deleting an unknown user is not an error.
func (s *YAMLStore) Delete(user string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return &formaterror.SettingsError{User: user, Op: "delete", Err: err}
	}
	if _, ok := all[user]; !ok {
		return nil
	}
	delete(all, user)
	if err := s.writeAll(all); err != nil {
		return &formaterror.SettingsError{User: user, Op: "delete", Err: err}
	}
	return nil
}

// Users returns the names of all users with stored settings, sorted.
func (s *YAMLStore) Users() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return nil, &formaterror.SettingsError{Op: "list", Err: err}
	}
	users := make([]string, 0, len(all))
	for user := range all {
		users = append(users, user)
	}
	sort.Strings(users)
	return users, nil
}

func (s *YAMLStore) readAll() (map[string]currencyfmt.Settings, error) {
	filePath := s.path()

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Settings file not found, starting empty",
				logging.Field{Key: logging.FieldFile, Value: filePath})
			return make(map[string]currencyfmt.Settings), nil
		}
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	var raw rawSettingsFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing settings file %s: %w", filePath, err)
	}

	all := make(map[string]currencyfmt.Settings, len(raw.Users))
	for user, record := range raw.Users {
		settings, err := currencyfmt.SettingsFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("error in settings for user '%s': %w", user, err)
		}
		all[user] = settings
	}
	return all, nil
}

func (s *YAMLStore) writeAll(all map[string]currencyfmt.Settings) error {
	filePath := s.path()

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	data, err := yaml.Marshal(settingsFile{Users: all})
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}
	return nil
}
