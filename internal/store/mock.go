package store

import (
	"sort"
	"sync"

	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/formaterror"
)

// MockSettingsStore is an in-memory SettingsStore for testing.
type MockSettingsStore struct {
	mu       sync.Mutex
	Settings map[string]currencyfmt.Settings

	// Error flags for testing error conditions
	LoadError   error
	SaveError   error
	UpdateError error
	DeleteError error
	UsersError  error
}

// NewMockSettingsStore returns a mock pre-populated with a copy of initial.
func NewMockSettingsStore(initial map[string]currencyfmt.Settings) *MockSettingsStore {
	m := &MockSettingsStore{Settings: make(map[string]currencyfmt.Settings, len(initial))}
	for user, s := range initial {
		m.Settings[user] = s
	}
	return m
}

// Load returns the mock settings for user.
func (m *MockSettingsStore) Load(user string) (currencyfmt.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return currencyfmt.Settings{}, m.LoadError
	}
	return m.Settings[user], nil
}

// Save stores settings for user.
func (m *MockSettingsStore) Save(user string, settings currencyfmt.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveError != nil {
		return m.SaveError
	}
	if user == "" {
		return &formaterror.SettingsError{Op: "save", Err: ErrNoUser}
	}
	if m.Settings == nil {
		m.Settings = make(map[string]currencyfmt.Settings)
	}
	m.Settings[user] = settings
	return nil
}

// Update merges patch into the stored settings for user.
func (m *MockSettingsStore) Update(user string, patch currencyfmt.Settings) (currencyfmt.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateError != nil {
		return currencyfmt.Settings{}, m.UpdateError
	}
	if user == "" {
		return currencyfmt.Settings{}, &formaterror.SettingsError{Op: "update", Err: ErrNoUser}
	}
	merged := m.Settings[user].Merge(patch)
	if err := merged.Validate(); err != nil {
		return currencyfmt.Settings{}, &formaterror.SettingsError{User: user, Op: "update", Err: err}
	}
	if m.Settings == nil {
		m.Settings = make(map[string]currencyfmt.Settings)
	}
	m.Settings[user] = merged
	return merged, nil
}

// Delete removes user's settings.
func (m *MockSettingsStore) Delete(user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Settings, user)
	return nil
}

// Users returns the sorted user names.
func (m *MockSettingsStore) Users() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UsersError != nil {
		return nil, m.UsersError
	}
	users := make([]string, 0, len(m.Settings))
	for user := range m.Settings {
		users = append(users, user)
	}
	sort.Strings(users)
	return users, nil
}
