// Package adapters contains storage implementations for the engine's
// driven ports.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/parley/pkg/domain"
)

// FileStore implements ports.StateStore on the local filesystem.
// Each session is one JSON file in the base directory, which makes sessions
// trivially inspectable and survives process restarts.
type FileStore struct {
	BasePath string
}

// NewFileStore creates a FileStore rooted at basePath.
// If basePath is empty, it defaults to ".parley/sessions".
func NewFileStore(basePath string) *FileStore {
	if basePath == "" {
		basePath = filepath.Join(".parley", "sessions")
	}
	return &FileStore{BasePath: basePath}
}

// Save persists the session state to a JSON file.
func (f *FileStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(f.path(sessionID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves the session state from its JSON file.
func (f *FileStore) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID cannot be empty")
	}

	data, err := os.ReadFile(f.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}
	if state.FilledSlots == nil {
		state.FilledSlots = make(map[string]string)
	}
	return &state, nil
}

// Delete removes the session file.
func (f *FileStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}

	if err := os.Remove(f.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// List returns all persisted session IDs.
func (f *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			name := entry.Name()
			sessions = append(sessions, name[:len(name)-len(".json")])
		}
	}
	return sessions, nil
}

func (f *FileStore) path(sessionID string) string {
	return filepath.Join(f.BasePath, sessionID+".json")
}
