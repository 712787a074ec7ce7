// Package session keeps saved workspaces for the CLI and the HTTP API.
//
// A [Workspace] wraps a save state (people, teams, qualification
// definitions and locks) and, once solved, the latest plan. Workspaces
// expire after a TTL so the server does not accumulate abandoned sessions.
//
// Three [Store] backends are provided:
//   - file: one JSON file per workspace, for CLI use
//   - sqlite: a single database file, for a standalone server
//   - mongo: a shared collection, for multi-instance deployments
//
// # Usage
//
//	store, err := session.Open(ctx, cfg.Store)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	ws, err := session.New("spring drill", state, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, ws)
//
//	ws, err = store.Get(ctx, ws.ID)
//	if err != nil {
//	    return err
//	}
//	if ws == nil {
//	    // Workspace not found or expired
//	}
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/dutyflow/pkg/config"
	"github.com/matzehuels/dutyflow/pkg/errors"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// DefaultTTL is the default workspace lifetime.
const DefaultTTL = 30 * 24 * time.Hour

// Workspace is a saved roster session.
type Workspace struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	State     *pkgio.SaveState `json:"state"`
	Plan      *roster.Plan     `json:"plan,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// Summary describes a workspace without its contents.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a workspace holding state with a fresh random ID.
func New(name string, state *pkgio.SaveState, ttl time.Duration) (*Workspace, error) {
	if state == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "workspace needs a save state")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	return &Workspace{
		ID:        uuid.NewString(),
		Name:      name,
		State:     state,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

// IsExpired returns true if the workspace has expired.
func (w *Workspace) IsExpired() bool {
	return time.Now().After(w.ExpiresAt)
}

// Summary returns the workspace header.
func (w *Workspace) Summary() Summary {
	return Summary{ID: w.ID, Name: w.Name, CreatedAt: w.CreatedAt, ExpiresAt: w.ExpiresAt}
}

// Store is the interface for workspace storage backends.
type Store interface {
	// Get retrieves a workspace by ID.
	// Returns nil, nil if the workspace doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Workspace, error)

	// Set creates or replaces a workspace.
	Set(ctx context.Context, ws *Workspace) error

	// Delete removes a workspace. Deleting a missing workspace is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the live workspaces, oldest first.
	List(ctx context.Context) ([]Summary, error)

	// Cleanup removes expired workspaces.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// Open creates the backend named by cfg.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case config.StoreFile, "":
		return NewFileStore(cfg.Dir)
	case config.StoreSQLite:
		return NewSQLiteStore(cfg.SQLitePath)
	case config.StoreMongo:
		return NewMongoStore(ctx, MongoOptions{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
	}
	return nil, fmt.Errorf("unknown workspace store %q", cfg.Backend)
}

func encode(ws *Workspace) ([]byte, error) {
	data, err := json.Marshal(ws)
	if err != nil {
		return nil, fmt.Errorf("marshal workspace: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Workspace, error) {
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parse workspace: %w", err)
	}
	return &ws, nil
}
