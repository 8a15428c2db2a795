package pipeline

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"specmap/internal/config"
	"specmap/internal/logging"
	"specmap/internal/manifest"
	"specmap/internal/storage"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func newTestGenerator(t *testing.T, notifier Notifier) *Generator {
	t.Helper()
	logger := logging.NewDiscardLogger()
	db, err := storage.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := storage.NewStore(db, 8, logger)
	if err != nil {
		t.Fatalf("storage.NewStore: %v", err)
	}
	return NewGenerator(store, config.DefaultConfig(), logger, notifier)
}

// seedRepo writes a small repository: one documented export, one spec
// file whose single test is annotation-linked, and a README with one
// usable section.
func seedRepo(t *testing.T, root string) {
	t.Helper()
	writeFile(t, root, "package.json", `{
		"name": "cartlib",
		"dependencies": {"react": "^18.0.0"},
		"devDependencies": {"jest": "^29.0.0"}
	}`)
	writeFile(t, root, "src/a.ts", `// Adds an item to the cart and recomputes totals.
export function addItem(cart, item) {
  return [...cart, item];
}
`)
	writeFile(t, root, "src/a.spec.ts", `// @atom IA-001
// covers the additive path
it('adds an item', () => {
  expect(addItem([], x)).toHaveLength(1);
});
`)
	writeFile(t, root, "README.md", `## Usage

Call addItem with the current cart and the new line item; the
returned cart is a fresh array and the input is never mutated.
`)
}

func TestGenerateEndToEnd(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root)

	gen := newTestGenerator(t, nil)
	m, err := gen.Generate(context.Background(), GenerateRequest{
		ProjectID: "cartlib",
		RepoPath:  root,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if m.Status != manifest.StatusComplete {
		t.Fatalf("status = %s", m.Status)
	}
	if m.Source != "local" {
		t.Errorf("source = %s", m.Source)
	}

	st := m.Structure
	if len(st.SourceFiles) != 1 || st.SourceFiles[0] != "src/a.ts" {
		t.Errorf("source files = %v", st.SourceFiles)
	}
	if len(st.TestFiles) != 1 || st.TestFiles[0] != "src/a.spec.ts" {
		t.Errorf("test files = %v", st.TestFiles)
	}

	byType := map[manifest.EvidenceType][]manifest.EvidenceItem{}
	for _, item := range m.Evidence {
		byType[item.Type] = append(byType[item.Type], item)
	}

	exports := byType[manifest.EvidenceSourceExport]
	if len(exports) != 1 || exports[0].Name != "addItem" {
		t.Fatalf("exports = %+v", exports)
	}
	if exports[0].Metadata["doc"] == "" {
		t.Errorf("export doc not attached")
	}

	docs := byType[manifest.EvidenceDocumentation]
	if len(docs) != 1 || docs[0].Name != "Usage" {
		t.Errorf("docs = %+v", docs)
	}

	// The annotated test is linked, so no test evidence and no
	// orphans.
	if len(byType[manifest.EvidenceTest]) != 0 || len(m.OrphanTests) != 0 {
		t.Errorf("orphans = %+v", m.OrphanTests)
	}
	if m.Inventory.Tests.Linked != 1 || m.Inventory.Tests.Orphan != 0 {
		t.Errorf("tests = %+v", m.Inventory.Tests)
	}

	if m.Inventory.Total != len(m.Evidence) {
		t.Errorf("inventory total = %d, evidence = %d", m.Inventory.Total, len(m.Evidence))
	}
	if len(m.Quality) != 1 || m.Quality[0].FilePath != "src/a.spec.ts" {
		t.Errorf("quality = %+v", m.Quality)
	}
	if m.Context.PrimaryLanguage != "TypeScript" {
		t.Errorf("primary language = %q", m.Context.PrimaryLanguage)
	}
}

func TestGenerateOrphanDetection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/cart.ts", "export function addItem() {}\n")
	writeFile(t, root, "src/cart.spec.ts", `it('has no annotation', () => {
  expect(1).toBe(1);
});
`)

	gen := newTestGenerator(t, nil)
	m, err := gen.Generate(context.Background(), GenerateRequest{
		ProjectID: "p",
		RepoPath:  root,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(m.OrphanTests) != 1 {
		t.Fatalf("orphans = %+v", m.OrphanTests)
	}
	o := m.OrphanTests[0]
	if o.TestName != "has no annotation" {
		t.Errorf("name = %q", o.TestName)
	}
	if len(o.RelatedSourceFiles) != 1 || o.RelatedSourceFiles[0] != "src/cart.ts" {
		t.Errorf("related = %v", o.RelatedSourceFiles)
	}
	if o.SourceCode == "" {
		t.Errorf("related source not captured")
	}
	if m.Inventory.Tests.Orphan != 1 {
		t.Errorf("inventory tests = %+v", m.Inventory.Tests)
	}
}

func initGitRepo(t *testing.T, dir string) {
	t.Helper()
	steps := [][]string{
		{"init"},
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test"},
		{"add", "."},
		{"commit", "-m", "initial", "--quiet"},
	}
	for _, args := range steps {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Skipf("git %v failed: %v (%s)", args, err, out)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root)
	initGitRepo(t, root)

	gen := newTestGenerator(t, nil)
	req := GenerateRequest{ProjectID: "cartlib", RepoPath: root}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if first.CommitHash == "" {
		t.Fatal("commit hash not resolved")
	}

	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("cache miss: %s vs %s", second.ID, first.ID)
	}

	req.Force = true
	third, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("forced Generate: %v", err)
	}
	if third.ID == first.ID {
		t.Errorf("force did not regenerate")
	}
}

func TestGenerateCancelledRunFails(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root)

	gen := newTestGenerator(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, GenerateRequest{ProjectID: "p", RepoPath: root})
	if err == nil {
		t.Fatal("expected an error from a cancelled run")
	}

	rows, err := gen.store.ListManifests("p", 10)
	if err != nil {
		t.Fatalf("ListManifests: %v", err)
	}
	if len(rows) != 1 || rows[0].Status != manifest.StatusFailed {
		t.Fatalf("rows = %+v, want one failed record", rows)
	}
	if rows[0].Error == "" {
		t.Errorf("failure reason not recorded")
	}
}

func TestGenerateMissingPath(t *testing.T) {
	gen := newTestGenerator(t, nil)
	_, err := gen.Generate(context.Background(), GenerateRequest{
		ProjectID: "p",
		RepoPath:  filepath.Join(t.TempDir(), "gone"),
	})
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
	rows, lerr := gen.store.ListManifests("p", 10)
	if lerr != nil {
		t.Fatalf("ListManifests: %v", lerr)
	}
	if len(rows) != 0 {
		t.Errorf("no manifest should be recorded before the source resolves, got %+v", rows)
	}
}

type recordingNotifier struct {
	events []ProgressEvent
}

func (r *recordingNotifier) Progress(ev ProgressEvent) {
	r.events = append(r.events, ev)
}

func TestGenerateProgressMonotonic(t *testing.T) {
	root := t.TempDir()
	seedRepo(t, root)

	rec := &recordingNotifier{}
	gen := newTestGenerator(t, rec)
	if _, err := gen.Generate(context.Background(), GenerateRequest{ProjectID: "p", RepoPath: root}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(rec.events) != 5 {
		t.Fatalf("got %d events, want 5: %+v", len(rec.events), rec.events)
	}
	wantPhases := []string{"classify", "extract", "quality", "aggregate", "done"}
	last := -1
	for i, ev := range rec.events {
		if ev.Phase != wantPhases[i] {
			t.Errorf("phase[%d] = %s, want %s", i, ev.Phase, wantPhases[i])
		}
		if ev.Percent < last {
			t.Errorf("progress went backward: %d after %d", ev.Percent, last)
		}
		last = ev.Percent
	}
	if rec.events[len(rec.events)-1].Percent != 100 {
		t.Errorf("final percent = %d", rec.events[len(rec.events)-1].Percent)
	}
}
