package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"specmap/internal/pipeline"
	"specmap/internal/storage"
)

var (
	generateProject string
	generateMirror  string
	generateForce   bool
	generateJSON    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Analyze a repository and produce a manifest",
	Long: `Run the full analysis pipeline over a local repository path or a
remote mirror URL. When a complete manifest already exists for the same
project and commit, it is returned from the cache without re-analysis.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateProject, "project", "", "Project identifier (defaults to the directory name)")
	generateCmd.Flags().StringVar(&generateMirror, "mirror", "", "Clone and analyze a remote mirror URL instead of a local path")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Regenerate even when a cached manifest exists")
	generateCmd.Flags().BoolVar(&generateJSON, "json", false, "Print the full manifest as JSON")
	rootCmd.AddCommand(generateCmd)
}

// progressPrinter writes phase progress to stderr in human mode.
type progressPrinter struct{}

func (progressPrinter) Progress(ev pipeline.ProgressEvent) {
	fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", ev.Percent, ev.Phase)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}
	if generateMirror != "" && len(args) > 0 {
		return fmt.Errorf("pass either a local path or --mirror, not both")
	}

	cfg, err := loadConfig(repoPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	projectID := generateProject
	if projectID == "" {
		abs, err := filepath.Abs(repoPath)
		if err != nil {
			return err
		}
		projectID = filepath.Base(abs)
	}

	db, err := storage.Open(cfg.Storage.Dir, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	store, err := storage.NewStore(db, cfg.Storage.HotCacheSize, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var notifier pipeline.Notifier
	if !generateJSON {
		notifier = progressPrinter{}
	}

	gen := pipeline.NewGenerator(store, cfg, logger, notifier)
	req := pipeline.GenerateRequest{
		ProjectID: projectID,
		Force:     generateForce,
	}
	if generateMirror != "" {
		req.MirrorURL = generateMirror
	} else {
		req.RepoPath = repoPath
	}

	m, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}

	if generateJSON {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Manifest %s (%s)\n", m.ID, m.Status)
	fmt.Printf("  project:   %s\n", m.ProjectID)
	if m.CommitHash != "" {
		fmt.Printf("  commit:    %s\n", m.CommitHash)
	}
	fmt.Printf("  files:     %d\n", m.Structure.TotalFiles())
	fmt.Printf("  evidence:  %d\n", m.Inventory.Total)
	fmt.Printf("  tests:     %d linked, %d orphan\n", m.Inventory.Tests.Linked, m.Inventory.Tests.Orphan)
	if m.Inventory.AvgCoverage > 0 {
		fmt.Printf("  coverage:  %.1f%%\n", m.Inventory.AvgCoverage)
	}
	fmt.Printf("  duration:  %s\n", m.Duration)
	return nil
}
