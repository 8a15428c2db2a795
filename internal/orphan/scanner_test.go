package orphan

import (
	"strings"
	"testing"
)

func TestScanAnnotationWindow(t *testing.T) {
	// The annotation sits exactly at the lookback boundary: 5 lines
	// above the declaration with lookback 5 still links the test.
	linked := `// @atom IA-001
// filler
// filler
// filler
// filler
it('stays linked', () => {});
`
	if got := Scan("a.spec.ts", linked, Options{Lookback: 5}); len(got) != 0 {
		t.Errorf("boundary annotation not honored: %+v", got)
	}
	if got := CountLinked(linked, Options{Lookback: 5}); got != 1 {
		t.Errorf("CountLinked = %d, want 1", got)
	}

	// One line further away and the test is orphaned.
	orphaned := `// @atom IA-001
// filler
// filler
// filler
// filler
// filler
it('falls out of the window', () => {});
`
	got := Scan("a.spec.ts", orphaned, Options{Lookback: 5})
	if len(got) != 1 {
		t.Fatalf("expected 1 orphan, got %+v", got)
	}
	if got[0].TestName != "falls out of the window" {
		t.Errorf("name = %q", got[0].TestName)
	}
	if got[0].Line != 7 {
		t.Errorf("line = %d, want 7", got[0].Line)
	}
	if CountLinked(orphaned, Options{Lookback: 5}) != 0 {
		t.Errorf("orphaned test counted as linked")
	}
}

func TestScanGroupNesting(t *testing.T) {
	content := `describe('cart', () => {
  describe('totals', () => {
    it('sums line items', () => {
      expect(total).toBe(3);
    });
  });

  it('starts empty', () => {
    expect(cart.items).toHaveLength(0);
  });
});

it('top level', () => {});
`
	got := Scan("cart.spec.ts", content, Options{})
	if len(got) != 3 {
		t.Fatalf("expected 3 orphans, got %d: %+v", len(got), got)
	}
	wantNames := []string{
		"cart.totals.sums line items",
		"cart.starts empty",
		"top level",
	}
	for i, want := range wantNames {
		if got[i].TestName != want {
			t.Errorf("name[%d] = %q, want %q", i, got[i].TestName, want)
		}
	}
}

func TestScanBodyCapture(t *testing.T) {
	content := `it('computes a total', () => {
  const total = sum([1, 2]);
  expect(total).toBe(3);
});
`
	got := Scan("sum.spec.ts", content, Options{})
	if len(got) != 1 {
		t.Fatalf("expected 1 orphan, got %d", len(got))
	}
	if !strings.Contains(got[0].TestCode, "expect(total).toBe(3);") {
		t.Errorf("body missing assertion: %q", got[0].TestCode)
	}
	if !strings.HasSuffix(strings.TrimSpace(got[0].TestCode), "});") {
		t.Errorf("body not closed: %q", got[0].TestCode)
	}
}

func TestScanBodyCaptureBounded(t *testing.T) {
	var b strings.Builder
	b.WriteString("it('never closes', () => {\n")
	for i := 0; i < 200; i++ {
		b.WriteString("  step();\n")
	}
	got := Scan("bad.spec.ts", b.String(), Options{MaxBodyLines: 10})
	if len(got) != 1 {
		t.Fatalf("expected 1 orphan, got %d", len(got))
	}
	if n := strings.Count(got[0].TestCode, "\n"); n >= 10 {
		t.Errorf("body not bounded: %d newlines", n)
	}
}

func TestScanModifiers(t *testing.T) {
	content := `describe.only('x', () => {
  it.skip('skipped but still scanned', () => {});
});
`
	got := Scan("mod.spec.ts", content, Options{})
	if len(got) != 1 {
		t.Fatalf("expected 1 orphan, got %d", len(got))
	}
	if got[0].TestName != "x.skipped but still scanned" {
		t.Errorf("name = %q", got[0].TestName)
	}
}

func TestRelatedSourceCandidates(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"src/cart.spec.ts", []string{"src/cart.ts"}},
		{"src/cart.test.tsx", []string{"src/cart.tsx"}},
		{"src/__tests__/cart.test.ts", []string{"src/__tests__/cart.ts", "src/cart.ts"}},
		{"internal/store/store_test.go", []string{"internal/store/store.go"}},
		{"pkg/test_parser.py", []string{"pkg/parser.py"}},
		{"test_cli.py", []string{"cli.py"}},
		{"styles/cart.css", nil},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := RelatedSourceCandidates(tt.path)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("candidate[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
