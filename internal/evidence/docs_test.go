package evidence

import (
	"strings"
	"testing"
)

func TestExtractDocSections(t *testing.T) {
	content := `# myproject

[![build](https://img.shields.io/badge.svg)](https://ci.example.com)

A command line tool that synchronizes bookmark collections between
browsers and keeps a deduplicated master list on disk.

## Usage

Run ` + "`myproject sync`" + ` from any directory. The tool reads its
configuration from the home directory and never writes outside it.

## License

MIT
`
	items := ExtractDocSections("README.md", content, Options{})
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Name != "myproject" {
		t.Errorf("first section = %q", items[0].Name)
	}
	if strings.Contains(items[0].Snippet, "shields.io") {
		t.Errorf("badge survived stripping: %q", items[0].Snippet)
	}
	if items[1].Name != "Usage" {
		t.Errorf("second section = %q", items[1].Name)
	}
	if items[1].Line != 8 {
		t.Errorf("usage line = %d, want 8", items[1].Line)
	}
}

func TestExtractDocSectionsBoilerplate(t *testing.T) {
	content := `## Contributing

Please open a pull request against the main branch and make sure the
linter passes before requesting a review from the maintainers.

## Changelog

All notable changes to this project are documented in this file, in
reverse chronological order, following the keep-a-changelog layout.
`
	if items := ExtractDocSections("README.md", content, Options{}); len(items) != 0 {
		t.Errorf("boilerplate sections kept: %+v", items)
	}
}

func TestExtractDocSectionsFloorAndCap(t *testing.T) {
	long := strings.Repeat("All requests are retried with exponential backoff. ", 20)
	content := "## Short\n\ntiny\n\n## Long\n\n" + long

	items := ExtractDocSections("README.md", content, Options{MinSectionChars: 40, MaxSectionChars: 100})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].Name != "Long" {
		t.Errorf("kept section = %q", items[0].Name)
	}
	if len(items[0].Snippet) != 100 {
		t.Errorf("snippet length = %d, want 100", len(items[0].Snippet))
	}
}

func TestExtractDocSectionsPreamble(t *testing.T) {
	content := `This document describes the data retention rules that every
deployment must follow when purging expired records.

# Retention
`
	items := ExtractDocSections("docs/retention.md", content, Options{})
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1: %+v", len(items), items)
	}
	if items[0].Name != "(preamble)" {
		t.Errorf("name = %q, want (preamble)", items[0].Name)
	}
	if items[0].Line != 1 {
		t.Errorf("line = %d, want 1", items[0].Line)
	}
}
