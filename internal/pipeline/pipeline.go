// Package pipeline orchestrates one full analysis run: resolve the
// content source, check the manifest cache, run the four phases in
// order, and persist the outcome. Item-level failures are skipped;
// phase-level failures fail the whole run.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"specmap/internal/aggregate"
	"specmap/internal/classify"
	"specmap/internal/config"
	"specmap/internal/errors"
	"specmap/internal/evidence"
	"specmap/internal/logging"
	"specmap/internal/manifest"
	"specmap/internal/orphan"
	"specmap/internal/quality"
	"specmap/internal/source"
	"specmap/internal/storage"
)

// GenerateRequest identifies what to analyze. Exactly one of RepoPath
// and MirrorURL must be set.
type GenerateRequest struct {
	ProjectID string
	RepoPath  string
	MirrorURL string
	// Force skips the cache check and always regenerates.
	Force bool
}

// Generator runs the analysis pipeline and caches results by
// (project, commit).
type Generator struct {
	store    *storage.Store
	cfg      *config.Config
	logger   *logging.Logger
	notifier Notifier
}

// NewGenerator creates a pipeline generator. notifier may be nil.
func NewGenerator(store *storage.Store, cfg *config.Config, logger *logging.Logger, notifier Notifier) *Generator {
	return &Generator{store: store, cfg: cfg, logger: logger, notifier: notifier}
}

// Generate produces the manifest for a request. When a complete
// manifest already exists for the same project and commit it is
// returned unchanged and no phase runs. Failed manifests are never
// served; a new run replaces them with a fresh record.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*manifest.Manifest, error) {
	src, sourceKind, err := g.resolveSource(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Cleanup(); cerr != nil {
			g.logger.Warn("source cleanup failed", map[string]interface{}{
				"error": cerr.Error(),
			})
		}
	}()

	commit, hasCommit := src.CommitHash()
	if hasCommit && !req.Force {
		cached, err := g.store.FindComplete(req.ProjectID, commit)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			g.logger.Info("Manifest cache hit", map[string]interface{}{
				"project": req.ProjectID,
				"commit":  commit,
				"id":      cached.ID,
			})
			return cached, nil
		}
	}

	m := &manifest.Manifest{
		ID:        uuid.New().String(),
		ProjectID: req.ProjectID,
		Status:    manifest.StatusGenerating,
		Source:    sourceKind,
		StartedAt: time.Now().UTC(),
	}
	if hasCommit {
		m.CommitHash = commit
	}
	if err := g.store.SaveManifest(m); err != nil {
		return nil, err
	}

	if err := g.runPhases(ctx, src, m); err != nil {
		m.Status = manifest.StatusFailed
		m.Error = err.Error()
		m.Duration = time.Since(m.StartedAt)
		if serr := g.store.SaveManifest(m); serr != nil {
			g.logger.Error("failed to persist failed manifest", map[string]interface{}{
				"id":    m.ID,
				"error": serr.Error(),
			})
		}
		return nil, err
	}

	m.Status = manifest.StatusComplete
	m.Duration = time.Since(m.StartedAt)
	if err := g.store.SaveManifest(m); err != nil {
		return nil, err
	}

	g.logger.Info("Manifest generated", map[string]interface{}{
		"id":       m.ID,
		"project":  m.ProjectID,
		"evidence": m.Inventory.Total,
		"duration": m.Duration.String(),
	})
	return m, nil
}

// resolveSource picks the content source for a request.
func (g *Generator) resolveSource(req GenerateRequest) (source.ContentSource, string, error) {
	switch {
	case req.MirrorURL != "":
		src, err := source.CloneMirror(req.MirrorURL, g.logger)
		if err != nil {
			return nil, "", errors.Wrap(errors.SourceUnreachable, "mirror checkout failed", err)
		}
		return src, "mirror", nil
	case req.RepoPath != "":
		src := source.NewLocalSource(req.RepoPath)
		if !src.Exists(".") {
			return nil, "", errors.New(errors.SourceUnreachable, "repository path not found: "+req.RepoPath)
		}
		return src, "local", nil
	default:
		return nil, "", errors.New(errors.ConfigInvalid, "either a repository path or a mirror URL is required")
	}
}

// runPhases executes the four pipeline phases in order, filling the
// manifest in place.
func (g *Generator) runPhases(ctx context.Context, src source.ContentSource, m *manifest.Manifest) error {
	p := newProgress(g.notifier, m.ID)

	// Phase 1: structural classification.
	p.phase(phaseClassify)
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.InternalError, "run cancelled", err)
	}
	res, err := classify.Classify(src, ".", classify.Options{
		ExcludePatterns: g.cfg.Analysis.ExcludePatterns,
		MaxFiles:        g.cfg.Analysis.MaxFiles,
		DirTreeDepth:    g.cfg.Analysis.DirTreeDepth,
	}, g.logger)
	if err != nil {
		return err
	}
	m.Structure = res.Structure
	m.Coverage = res.Coverage

	// Phase 2: evidence extraction and the orphan scan.
	p.phase(phaseExtract)
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.InternalError, "run cancelled", err)
	}
	items := g.extractEvidence(src, &m.Structure)
	orphans, linked := g.scanTests(src, m.Structure.TestFiles)
	m.OrphanTests = orphans

	// Phase 3: test quality scoring.
	p.phase(phaseQuality)
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.InternalError, "run cancelled", err)
	}
	m.Quality = g.scoreTests(src, m.Structure.TestFiles)

	// Phase 4: aggregation and context.
	p.phase(phaseAggregate)
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.InternalError, "run cancelled", err)
	}
	evidenceItems, inv := aggregate.Aggregate(orphans, items, m.Coverage, g.cfg.Caps, g.cfg.Analysis.CoverageGapThreshold)
	aggregate.FinishInventory(&inv, m.Coverage, linked)
	m.Evidence = evidenceItems
	m.Inventory = inv
	m.Context = aggregate.BuildContext(&m.Structure, res.ExtCounts)

	p.done()
	return nil
}

// extractEvidence runs the per-role extractors over the source, UI and
// doc buckets. Unreadable files are skipped without failing the phase.
func (g *Generator) extractEvidence(src source.ContentSource, st *manifest.RepoStructure) []manifest.EvidenceItem {
	opts := evidence.Options{
		DocLookback:     g.cfg.Analysis.DocLookback,
		MaxSectionChars: g.cfg.Analysis.MaxSectionChars,
		MinSectionChars: g.cfg.Analysis.MinSectionChars,
	}

	buckets := []struct {
		files []string
		role  classify.Category
	}{
		{st.SourceFiles, classify.CategorySource},
		{st.UIFiles, classify.CategoryUI},
		{st.DocFiles, classify.CategoryDoc},
	}

	var items []manifest.EvidenceItem
	for _, b := range buckets {
		for _, f := range b.files {
			data := src.ReadFileOrNull(f)
			if data == nil {
				continue
			}
			items = append(items, evidence.ExtractFromFile(f, string(data), st.Frameworks, b.role, opts)...)
		}
	}
	return items
}

// scanTests runs the orphan scanner over every test file and resolves
// related source files for each orphan.
func (g *Generator) scanTests(src source.ContentSource, testFiles []string) ([]manifest.OrphanTest, int) {
	opts := orphan.Options{
		Lookback:     g.cfg.Analysis.AnnotationLookback,
		MaxBodyLines: g.cfg.Analysis.MaxOrphanBodyLines,
	}

	var orphans []manifest.OrphanTest
	linked := 0
	for _, f := range testFiles {
		data := src.ReadFileOrNull(f)
		if data == nil {
			continue
		}
		content := string(data)
		found := orphan.Scan(f, content, opts)
		linked += orphan.CountLinked(content, opts)

		if len(found) > 0 {
			related := existingCandidates(src, orphan.RelatedSourceCandidates(f))
			for i := range found {
				found[i].RelatedSourceFiles = related
				if len(related) > 0 {
					if srcData := src.ReadFileOrNull(related[0]); srcData != nil {
						found[i].SourceCode = string(srcData)
					}
				}
			}
		}
		orphans = append(orphans, found...)
	}
	return orphans, linked
}

// scoreTests runs quality scoring over every readable test file.
func (g *Generator) scoreTests(src source.ContentSource, testFiles []string) []manifest.FileQuality {
	var out []manifest.FileQuality
	for _, f := range testFiles {
		data := src.ReadFileOrNull(f)
		if data == nil {
			continue
		}
		out = append(out, quality.ScoreFile(f, string(data)))
	}
	return out
}

func existingCandidates(src source.ContentSource, candidates []string) []string {
	var out []string
	for _, c := range candidates {
		if src.Exists(c) {
			out = append(out, c)
		}
	}
	return out
}
