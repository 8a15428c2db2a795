package quality

import (
	"testing"
)

func TestScoreFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{
			name: "dense assertions",
			content: `it('a', () => {
  expect(x).toBe(1);
  expect(y).toBe(2);
});
`,
			want: 1.0,
		},
		{
			name: "one assertion per test",
			content: `it('a', () => {
  expect(x).toBe(1);
});
`,
			want: 0.8,
		},
		{
			name: "assertion-free tests",
			content: `it('a', () => {
  render(component);
});
it('b', () => {
  render(other);
});
`,
			want: 0.2,
		},
		{
			name:    "no tests at all",
			content: `const helper = () => 1;`,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreFile("x.spec.ts", tt.content)
			if got.Score != tt.want {
				t.Errorf("score = %v, want %v (signals %v)", got.Score, tt.want, got.Signals)
			}
		})
	}
}

func TestScoreFilePenalties(t *testing.T) {
	content := `it('a', () => {
  expect(x).toBe(1);
});
it.skip('b', () => {
  expect(y).toBe(2);
});
`
	got := ScoreFile("x.spec.ts", content)
	// Two tests, two assertions, one skip: 0.8 base minus 0.1.
	if got.Score < 0.69 || got.Score > 0.71 {
		t.Errorf("score = %v, want 0.7", got.Score)
	}
	if got.Signals["skipped"] != 1 {
		t.Errorf("skipped = %d, want 1", got.Signals["skipped"])
	}
}

func TestScoreFileSnapshotOnly(t *testing.T) {
	content := `it('renders', () => {
  expect(tree).toMatchSnapshot();
});
`
	got := ScoreFile("x.spec.ts", content)
	// One test, one assertion (the snapshot call): 0.8 minus the
	// snapshot-only penalty.
	if got.Score < 0.59 || got.Score > 0.61 {
		t.Errorf("score = %v, want 0.6", got.Score)
	}
}
