// Package manifest defines the data model for one deterministic
// repository-analysis run: typed evidence items, the structural
// snapshot, orphan-test records, and the manifest record that
// aggregates them.
package manifest

import (
	"time"
)

// EvidenceType identifies the kind of fact an evidence item records.
type EvidenceType string

const (
	EvidenceSourceExport  EvidenceType = "source_export"
	EvidenceUIComponent   EvidenceType = "ui_component"
	EvidenceAPIEndpoint   EvidenceType = "api_endpoint"
	EvidenceDocumentation EvidenceType = "documentation"
	EvidenceCodeComment   EvidenceType = "code_comment"
	EvidenceTest          EvidenceType = "test"
	EvidenceCoverageGap   EvidenceType = "coverage_gap"
)

// baseConfidence is the fixed per-type seed weight. It is not derived
// from content quality; downstream scoring starts from it.
var baseConfidence = map[EvidenceType]float64{
	EvidenceSourceExport:  0.7,
	EvidenceUIComponent:   0.65,
	EvidenceAPIEndpoint:   0.75,
	EvidenceDocumentation: 0.5,
	EvidenceCodeComment:   0.4,
	EvidenceTest:          0.8,
	EvidenceCoverageGap:   0.6,
}

// BaseConfidence returns the fixed confidence seed for a type.
// Unknown types get 0.
func BaseConfidence(t EvidenceType) float64 {
	return baseConfidence[t]
}

// EvidenceItem is one discrete, typed fact extracted from a file.
// Items are created once per pipeline run and never mutated.
type EvidenceItem struct {
	Type           EvidenceType      `json:"type"`
	FilePath       string            `json:"filePath"`
	Name           string            `json:"name"`
	Snippet        string            `json:"snippet,omitempty"`
	Line           int               `json:"line"`
	BaseConfidence float64           `json:"baseConfidence"`
	RelatedFiles   []string          `json:"relatedFiles,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// PackageMeta is representative package metadata taken from the first
// package manifest discovered in the repository.
type PackageMeta struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Scripts     []string `json:"scripts,omitempty"`
}

// DirNode is one node of the directory frequency tree. Children are
// sorted by descending file count, ties broken by discovery order.
type DirNode struct {
	Name      string     `json:"name"`
	FileCount int        `json:"fileCount"`
	Children  []*DirNode `json:"children,omitempty"`
}

// RepoStructure is the output of structural classification. Every
// analyzed path appears in exactly one bucket.
type RepoStructure struct {
	TestFiles    []string    `json:"testFiles"`
	SourceFiles  []string    `json:"sourceFiles"`
	UIFiles      []string    `json:"uiFiles"`
	DocFiles     []string    `json:"docFiles"`
	ConfigFiles  []string    `json:"configFiles"`
	Frameworks   []string    `json:"frameworks"`
	Package      PackageMeta `json:"package"`
	DirTree      *DirNode    `json:"dirTree,omitempty"`
	EntryPoints  []string    `json:"entryPoints,omitempty"`
	TestPatterns []string    `json:"testPatterns,omitempty"`
}

// TotalFiles returns the number of classified paths across all buckets.
func (s *RepoStructure) TotalFiles() int {
	return len(s.TestFiles) + len(s.SourceFiles) + len(s.UIFiles) +
		len(s.DocFiles) + len(s.ConfigFiles)
}

// OrphanTest is a test declaration with no nearby behavioral-intent
// annotation. Orphanhood is derived on every run, never stored as a
// flag on its own.
type OrphanTest struct {
	FilePath           string   `json:"filePath"`
	TestName           string   `json:"testName"`
	Line               int      `json:"line"`
	TestCode           string   `json:"testCode,omitempty"`
	RelatedSourceFiles []string `json:"relatedSourceFiles,omitempty"`
	SourceCode         string   `json:"sourceCode,omitempty"`
}

// FileCoverage holds per-file line counts from an external coverage
// artifact. Consumed read-only.
type FileCoverage struct {
	Total   int `json:"total"`
	Covered int `json:"covered"`
}

// Percent returns covered/total as a percentage, 0 for empty files.
func (c FileCoverage) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Covered) / float64(c.Total) * 100
}

// CoverageData maps repo-relative file paths to their coverage counts.
type CoverageData map[string]FileCoverage

// TestCounts splits scanned tests into linked and orphan.
type TestCounts struct {
	Orphan int `json:"orphan"`
	Linked int `json:"linked"`
}

// Inventory summarizes the evidence produced by one run.
type Inventory struct {
	Total       int            `json:"total"`
	ByType      map[string]int `json:"byType"`
	Exports     map[string]int `json:"exports,omitempty"`
	Endpoints   map[string]int `json:"endpoints,omitempty"`
	Components  map[string]int `json:"components,omitempty"`
	Comments    map[string]int `json:"comments,omitempty"`
	DocFiles    []string       `json:"docFiles,omitempty"`
	Tests       TestCounts     `json:"tests"`
	AvgCoverage float64        `json:"avgCoverage"`
}

// FileQuality is the deterministic quality score for one test file.
type FileQuality struct {
	FilePath string         `json:"filePath"`
	Score    float64        `json:"score"`
	Signals  map[string]int `json:"signals,omitempty"`
}

// RepoContext is the phase-4 domain summary of the repository.
type RepoContext struct {
	PrimaryLanguage string         `json:"primaryLanguage,omitempty"`
	Languages       map[string]int `json:"languages,omitempty"`
	Frameworks      []string       `json:"frameworks,omitempty"`
	EntryPoints     []string       `json:"entryPoints,omitempty"`
	FileCount       int            `json:"fileCount"`
}

// Status is the lifecycle state of a manifest.
type Status string

const (
	StatusGenerating Status = "generating"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// Manifest is the durable snapshot produced by one full pipeline run.
// Once complete, the manifest for a (project, commit) pair is treated
// as immutable and reused rather than regenerated. Failed manifests
// are retained for diagnostics but never served as cache hits.
type Manifest struct {
	ID         string        `json:"id"`
	ProjectID  string        `json:"projectId"`
	CommitHash string        `json:"commitHash,omitempty"`
	Status     Status        `json:"status"`
	Source     string        `json:"source"` // "local" or "mirror"
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	Duration   time.Duration `json:"duration"`

	Structure   RepoStructure  `json:"structure"`
	Evidence    []EvidenceItem `json:"evidence,omitempty"`
	OrphanTests []OrphanTest   `json:"orphanTests,omitempty"`
	Quality     []FileQuality  `json:"quality,omitempty"`
	Coverage    CoverageData   `json:"coverage,omitempty"`
	Inventory   Inventory      `json:"inventory"`
	Context     RepoContext    `json:"context"`
}

// IsTerminal reports whether the manifest reached a final state.
func (m *Manifest) IsTerminal() bool {
	return m.Status == StatusComplete || m.Status == StatusFailed
}
