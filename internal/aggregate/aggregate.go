// Package aggregate merges extractor output into the final evidence
// list and inventory. Aggregation is pure: same inputs produce the
// same manifest content, byte for byte.
package aggregate

import (
	"fmt"
	"sort"

	"specmap/internal/config"
	"specmap/internal/manifest"
	"specmap/internal/paths"
)

// Aggregate applies per-type caps to extracted evidence, converts
// orphan tests to test evidence, synthesizes coverage-gap items, and
// builds the inventory. Caps are first-N-wins in input order; items
// past a cap are dropped without reordering by confidence.
func Aggregate(orphans []manifest.OrphanTest, items []manifest.EvidenceItem, cov manifest.CoverageData, caps config.CapsConfig, gapThreshold float64) ([]manifest.EvidenceItem, manifest.Inventory) {
	capFor := map[manifest.EvidenceType]int{
		manifest.EvidenceSourceExport:  caps.MaxSourceExports,
		manifest.EvidenceUIComponent:   caps.MaxUIComponents,
		manifest.EvidenceAPIEndpoint:   caps.MaxAPIEndpoints,
		manifest.EvidenceDocumentation: caps.MaxDocumentation,
		manifest.EvidenceCodeComment:   caps.MaxCodeComments,
		manifest.EvidenceCoverageGap:   caps.MaxCoverageGaps,
	}
	counts := map[manifest.EvidenceType]int{}

	out := make([]manifest.EvidenceItem, 0, len(items))
	add := func(item manifest.EvidenceItem) {
		if limit, ok := capFor[item.Type]; ok && counts[item.Type] >= limit {
			return
		}
		counts[item.Type]++
		out = append(out, item)
	}

	for _, item := range items {
		add(item)
	}

	// Orphan tests become test evidence. Test items are uncapped; the
	// orphan scanner already bounds its own output.
	for _, o := range orphans {
		out = append(out, manifest.EvidenceItem{
			Type:           manifest.EvidenceTest,
			FilePath:       o.FilePath,
			Name:           o.TestName,
			Snippet:        o.TestCode,
			Line:           o.Line,
			BaseConfidence: manifest.BaseConfidence(manifest.EvidenceTest),
			RelatedFiles:   o.RelatedSourceFiles,
			Metadata:       map[string]string{"orphan": "true"},
		})
		counts[manifest.EvidenceTest]++
	}

	for _, gap := range coverageGaps(cov, gapThreshold) {
		add(gap)
	}

	return out, buildInventory(out)
}

// coverageGaps synthesizes one item per file whose covered/total ratio
// is strictly below the threshold. Files with zero total lines are
// skipped. Output is sorted by path for determinism.
func coverageGaps(cov manifest.CoverageData, threshold float64) []manifest.EvidenceItem {
	files := make([]string, 0, len(cov))
	for f := range cov {
		files = append(files, f)
	}
	sort.Strings(files)

	var gaps []manifest.EvidenceItem
	for _, f := range files {
		c := cov[f]
		if c.Total == 0 {
			continue
		}
		ratio := float64(c.Covered) / float64(c.Total)
		if ratio >= threshold {
			continue
		}
		gaps = append(gaps, manifest.EvidenceItem{
			Type:           manifest.EvidenceCoverageGap,
			FilePath:       f,
			Name:           paths.Base(f),
			BaseConfidence: manifest.BaseConfidence(manifest.EvidenceCoverageGap),
			Metadata: map[string]string{
				"totalLines":     fmt.Sprintf("%d", c.Total),
				"uncoveredLines": fmt.Sprintf("%d", c.Total-c.Covered),
				"pct":            fmt.Sprintf("%.1f", ratio*100),
			},
		})
	}
	return gaps
}

// buildInventory groups the final evidence list by type plus the
// secondary keys downstream consumers query on.
func buildInventory(items []manifest.EvidenceItem) manifest.Inventory {
	inv := manifest.Inventory{
		ByType:     map[string]int{},
		Exports:    map[string]int{},
		Endpoints:  map[string]int{},
		Components: map[string]int{},
		Comments:   map[string]int{},
	}

	docSeen := map[string]bool{}
	for _, item := range items {
		inv.Total++
		inv.ByType[string(item.Type)]++

		switch item.Type {
		case manifest.EvidenceSourceExport:
			inv.Exports[metaOr(item, "kind", "unknown")]++
		case manifest.EvidenceAPIEndpoint:
			inv.Endpoints[metaOr(item, "verb", "unknown")]++
		case manifest.EvidenceUIComponent:
			inv.Components[metaOr(item, "framework", "unknown")]++
		case manifest.EvidenceCodeComment:
			inv.Comments[metaOr(item, "kind", "unknown")]++
		case manifest.EvidenceDocumentation:
			if !docSeen[item.FilePath] {
				docSeen[item.FilePath] = true
				inv.DocFiles = append(inv.DocFiles, item.FilePath)
			}
		case manifest.EvidenceTest:
			if item.Metadata["orphan"] == "true" {
				inv.Tests.Orphan++
			} else {
				inv.Tests.Linked++
			}
		}
	}

	// Empty secondary maps are dropped so that an empty run serializes
	// to a minimal inventory.
	if len(inv.Exports) == 0 {
		inv.Exports = nil
	}
	if len(inv.Endpoints) == 0 {
		inv.Endpoints = nil
	}
	if len(inv.Components) == 0 {
		inv.Components = nil
	}
	if len(inv.Comments) == 0 {
		inv.Comments = nil
	}
	return inv
}

func metaOr(item manifest.EvidenceItem, key, fallback string) string {
	if v, ok := item.Metadata[key]; ok && v != "" {
		return v
	}
	return fallback
}

// FinishInventory stamps the aggregate coverage figures onto the
// inventory after all phases ran.
func FinishInventory(inv *manifest.Inventory, cov manifest.CoverageData, linkedTests int) {
	inv.Tests.Linked += linkedTests
	if len(cov) == 0 {
		return
	}
	total := 0
	covered := 0
	for _, c := range cov {
		total += c.Total
		covered += c.Covered
	}
	if total > 0 {
		inv.AvgCoverage = float64(covered) / float64(total) * 100
	}
}
