package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/dutyflow/pkg/config"
	"github.com/matzehuels/dutyflow/pkg/errors"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

func sampleState() *pkgio.SaveState {
	team := roster.Team{Name: "Alpha"}
	team.AddRequirement("220 QAR", 1)
	return pkgio.NewSaveState(solver.Input{
		People:       []roster.Person{{Name: "ADAMS, ROY", RateRank: "AM1", DutyStatus: roster.StatusTAR, Qualifications: []string{"220 QAR"}}},
		Teams:        []roster.Team{team},
		AnalysisDate: roster.MustParseDate("2025-01-15"),
	}, nil)
}

func newWorkspace(t *testing.T, name string, ttl time.Duration) *Workspace {
	t.Helper()
	ws, err := New(name, sampleState(), ttl)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return ws
}

func TestNew(t *testing.T) {
	ws := newWorkspace(t, "drill", time.Hour)
	if err := errors.ValidateWorkspaceID(ws.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", ws.ID, err)
	}
	if ws.IsExpired() {
		t.Error("new workspace should not be expired")
	}
	if d := ws.ExpiresAt.Sub(ws.CreatedAt); d != time.Hour {
		t.Errorf("lifetime = %v, want 1h", d)
	}
	if other := newWorkspace(t, "drill", time.Hour); other.ID == ws.ID {
		t.Error("IDs should be unique")
	}

	def := newWorkspace(t, "", 0)
	if d := def.ExpiresAt.Sub(def.CreatedAt); d != DefaultTTL {
		t.Errorf("default lifetime = %v, want %v", d, DefaultTTL)
	}
	if _, err := New("x", nil, time.Hour); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("New(nil state) error = %v", err)
	}
}

// exerciseStore runs the behavior every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	missing := newWorkspace(t, "missing", time.Hour)
	if ws, err := s.Get(ctx, missing.ID); ws != nil || err != nil {
		t.Fatalf("Get(missing) = %v, %v; want nil, nil", ws, err)
	}

	ws := newWorkspace(t, "drill", time.Hour)
	if err := s.Set(ctx, ws); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	got, err := s.Get(ctx, ws.ID)
	if err != nil || got == nil {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if got.Name != "drill" || !got.ExpiresAt.Equal(ws.ExpiresAt) {
		t.Errorf("Get = %+v", got)
	}
	if got.State == nil || len(got.State.People) != 1 || got.State.AnalysisDate != ws.State.AnalysisDate {
		t.Errorf("State = %+v", got.State)
	}

	// Replace with a plan attached
	ws.Plan = &roster.Plan{AnalysisDate: ws.State.AnalysisDate, TotalCost: 42}
	if err := s.Set(ctx, ws); err != nil {
		t.Fatalf("Set (replace) error: %v", err)
	}
	if got, _ := s.Get(ctx, ws.ID); got == nil || got.Plan == nil || got.Plan.TotalCost != 42 {
		t.Errorf("replaced workspace plan = %+v", got)
	}

	expired := newWorkspace(t, "old", time.Hour)
	expired.CreatedAt = time.Now().Add(-2 * time.Hour)
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	if err := s.Set(ctx, expired); err != nil {
		t.Fatalf("Set (expired) error: %v", err)
	}
	if got, err := s.Get(ctx, expired.ID); got != nil || err != nil {
		t.Errorf("Get(expired) = %v, %v; want nil, nil", got, err)
	}

	later := newWorkspace(t, "later", time.Hour)
	later.CreatedAt = ws.CreatedAt.Add(time.Second)
	if err := s.Set(ctx, later); err != nil {
		t.Fatal(err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 2 || list[0].ID != ws.ID || list[1].ID != later.ID {
		t.Errorf("List = %+v, want [%s %s]", list, ws.ID, later.ID)
	}

	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup error: %v", err)
	}
	if err := s.Delete(ctx, ws.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := s.Get(ctx, ws.ID); got != nil {
		t.Error("Get after Delete should return nil")
	}
	if err := s.Delete(ctx, ws.ID); err != nil {
		t.Errorf("Delete of missing workspace error: %v", err)
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "ws"))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"", "../etc/passwd", "not-a-uuid"} {
		if _, err := s.Get(context.Background(), id); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Get(%q) error = %v, want %s", id, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestFileStoreCleanup(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	old := newWorkspace(t, "old", time.Hour)
	old.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Set(ctx, old); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Path(), "junk.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Path(), old.ID+".json")); !os.IsNotExist(err) {
		t.Error("expired workspace file should be removed")
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "dutyflow.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

// TestMongoStore runs against a live server named by DUTYFLOW_TEST_MONGO.
func TestMongoStore(t *testing.T) {
	uri := os.Getenv("DUTYFLOW_TEST_MONGO")
	if uri == "" {
		t.Skip("DUTYFLOW_TEST_MONGO not set")
	}
	s, err := NewMongoStore(context.Background(), MongoOptions{
		URI:        uri,
		Database:   "dutyflow_test",
		Collection: "workspaces_" + time.Now().Format("150405"),
	})
	if err != nil {
		t.Fatalf("NewMongoStore error: %v", err)
	}
	defer s.Close()
	defer s.coll.Drop(context.Background())
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := Open(ctx, config.Store{Backend: config.StoreFile, Dir: filepath.Join(dir, "files")})
	if err != nil {
		t.Fatalf("Open(file) error: %v", err)
	}
	if _, ok := fs.(*FileStore); !ok {
		t.Errorf("Open(file) = %T", fs)
	}
	fs.Close()

	ss, err := Open(ctx, config.Store{Backend: config.StoreSQLite, SQLitePath: filepath.Join(dir, "ws.db")})
	if err != nil {
		t.Fatalf("Open(sqlite) error: %v", err)
	}
	if _, ok := ss.(*SQLiteStore); !ok {
		t.Errorf("Open(sqlite) = %T", ss)
	}
	ss.Close()

	if _, err := Open(ctx, config.Store{Backend: "s3"}); err == nil {
		t.Error("Open(s3) should fail")
	}
}
