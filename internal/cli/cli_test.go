package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dutyflow/pkg/errors"
	pkgio "github.com/matzehuels/dutyflow/pkg/io"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

const (
	requirementsCSV = "Name,Qual,Num Required\nAlpha,220 QAR,1\n"
	rosterCSV       = "Name,RateRank,Status,PRD,Qualifications\n" +
		"\"ADAMS, ROY\",AM1,TAR,2025-07-01,220 QAR\n" +
		"\"CRUZ, ANA\",AM2,SELRES,,\"210 CDI, 220 QAR\"\n"
)

// fixtures writes the sample requirements and roster files into a temp dir.
func fixtures(t *testing.T) (dir, requirements, rosterFile string) {
	t.Helper()
	dir = t.TempDir()
	requirements = filepath.Join(dir, "requirements.csv")
	rosterFile = filepath.Join(dir, "roster.csv")
	if err := os.WriteFile(requirements, []byte(requirementsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rosterFile, []byte(rosterCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, requirements, rosterFile
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--no-cache"}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"solve", "whatif", "explain", "network", "state", "browse", "serve", "cache", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseDates(t *testing.T) {
	got, err := parseDates("2025-01-01, 2025-06-01,,")
	if err != nil {
		t.Fatalf("parseDates() error: %v", err)
	}
	if len(got) != 2 || got[1].String() != "2025-06-01" {
		t.Errorf("parseDates() = %v", got)
	}
	if _, err := parseDates("2025-13-01"); err == nil {
		t.Error("parseDates() should reject invalid dates")
	}
}

func TestCacheDir(t *testing.T) {
	c := New(io.Discard, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}

	c.Config.Cache.Dir = "/tmp/plans"
	if dir, _ := c.cacheDir(); dir != "/tmp/plans" {
		t.Errorf("cacheDir() = %q, want the configured dir", dir)
	}
}

func TestSolveWritesCSV(t *testing.T) {
	dir, req, ros := fixtures(t)
	out := filepath.Join(dir, "plan.csv")
	statePath := filepath.Join(dir, "state.json")

	err := run(t, "solve", "-r", req, "--roster", ros, "--date", "2025-01-01",
		"-f", "csv", "-o", out, "--save-state", statePath)
	if err != nil {
		t.Fatalf("solve error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	for _, want := range []string{`"ADAMS, ROY",Alpha,220 QAR`, `"CRUZ, ANA",,`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("plan CSV missing %q:\n%s", want, data)
		}
	}

	st, err := pkgio.ImportState(statePath)
	if err != nil {
		t.Fatalf("ImportState() error: %v", err)
	}
	if st.AnalysisDate.String() != "2025-01-01" || len(st.People) != 2 {
		t.Errorf("state = date %s, %d people", st.AnalysisDate, len(st.People))
	}
}

func TestCoverageLine(t *testing.T) {
	alpha := roster.Team{Name: "Alpha"}
	alpha.AddRequirement("220 QAR", 2)
	bravo := roster.Team{Name: "Bravo"}
	bravo.AddRequirement("Chief", 1)
	plan := &roster.Plan{Assignments: []roster.Assignment{
		{Team: "Bravo", Position: bravo.Positions[0]},
	}}

	got := coverageLine(plan, []roster.Team{alpha, bravo})
	for _, want := range []string{"Alpha 0/2", "Bravo 1/1"} {
		if !strings.Contains(got, want) {
			t.Errorf("coverageLine() = %q, missing %q", got, want)
		}
	}
}

func TestSolveRejectsTableToFile(t *testing.T) {
	dir, req, ros := fixtures(t)
	err := run(t, "solve", "-r", req, "--roster", ros, "-o", filepath.Join(dir, "plan.txt"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("solve error = %v, want INVALID_INPUT", err)
	}
}

func TestStateWorkflow(t *testing.T) {
	dir, req, ros := fixtures(t)
	statePath := filepath.Join(dir, "state.json")

	if err := run(t, "state", "export", "-r", req, "--roster", ros, "-d", "2025-01-01", "-o", statePath); err != nil {
		t.Fatalf("state export: %v", err)
	}
	if err := run(t, "state", "validate", statePath); err != nil {
		t.Fatalf("state validate: %v", err)
	}

	// ADAMS is the cheaper candidate; swapping puts CRUZ in the role.
	if err := run(t, "state", "swap", statePath, "ADAMS, ROY", "CRUZ, ANA"); err != nil {
		t.Fatalf("state swap: %v", err)
	}
	st, err := pkgio.ImportState(statePath)
	if err != nil {
		t.Fatal(err)
	}
	role := roster.RoleID{Team: "Alpha", Qualification: "220 QAR"}
	if len(st.Locks) != 1 || st.Locks[0].PersonName != "CRUZ, ANA" || st.Locks[0].Role() != role {
		t.Fatalf("locks after swap = %v", st.Locks)
	}

	if err := run(t, "state", "lock", statePath, "-p", "ADAMS, ROY", "--exclude"); err != nil {
		t.Fatalf("state lock: %v", err)
	}
	if st, _ = pkgio.ImportState(statePath); len(st.Locks) != 2 {
		t.Fatalf("locks after exclude = %v", st.Locks)
	}

	if err := run(t, "state", "clear-locks", statePath, "-t", "Alpha"); err != nil {
		t.Fatalf("state clear-locks: %v", err)
	}
	st, _ = pkgio.ImportState(statePath)
	if len(st.Locks) != 1 || st.Locks[0].Pinned() {
		t.Errorf("team clear should keep only the exclusion, got %v", st.Locks)
	}

	err = run(t, "state", "lock", statePath, "-p", "NOBODY", "--exclude")
	if !errors.Is(err, errors.ErrCodeInvalidLock) {
		t.Errorf("lock on unknown person: err = %v, want INVALID_LOCK", err)
	}
}

func TestStateLockSolved(t *testing.T) {
	dir, req, ros := fixtures(t)
	statePath := filepath.Join(dir, "state.json")
	if err := run(t, "state", "export", "-r", req, "--roster", ros, "-d", "2025-01-01", "-o", statePath); err != nil {
		t.Fatal(err)
	}
	locked := filepath.Join(dir, "locked.json")
	if err := run(t, "state", "lock", statePath, "--solved", "-o", locked); err != nil {
		t.Fatalf("lock --solved: %v", err)
	}
	st, err := pkgio.ImportState(locked)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Locks) != 1 || st.Locks[0].PersonName != "ADAMS, ROY" {
		t.Errorf("locks = %v, want ADAMS pinned", st.Locks)
	}
	if orig, _ := pkgio.ImportState(statePath); len(orig.Locks) != 0 {
		t.Error("--output should leave the input untouched")
	}
}

func TestNetworkDOT(t *testing.T) {
	dir, req, ros := fixtures(t)
	out := filepath.Join(dir, "network.dot")
	if err := run(t, "network", "-r", req, "--roster", ros, "-d", "2025-01-01", "-o", out, "--costs"); err != nil {
		t.Fatalf("network: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") || !strings.Contains(string(data), "penwidth=2.5") {
		t.Errorf("DOT output missing header or flow edges:\n%s", data)
	}

	err = run(t, "network", "-r", req, "--roster", ros, "-f", "png")
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("png format: err = %v, want UNSUPPORTED", err)
	}
}

func TestExplainUnknownPerson(t *testing.T) {
	_, req, ros := fixtures(t)
	err := run(t, "explain", "-r", req, "--roster", ros, "-p", "NOBODY", "--qual", "220 QAR")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("explain error = %v, want NOT_FOUND", err)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var out strings.Builder
		root.SetOut(&out)
		root.SetArgs([]string{"completion", shell})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out.String(), "dutyflow") {
			t.Errorf("completion %s output does not mention the command", shell)
		}
	}
	if err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion should reject unknown shells")
	}
}

func TestSolveExampleData(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plan.json")
	err := run(t, "solve",
		"-r", filepath.Join("..", "..", "examples", "requirements.csv"),
		"--roster", filepath.Join("..", "..", "examples", "roster.csv"),
		"-d", "2025-01-01", "-f", "json", "-o", out)
	if err != nil {
		t.Fatalf("solve example data: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("plan not written: %v", err)
	}
}
