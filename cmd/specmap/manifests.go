package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"specmap/internal/storage"
)

var (
	manifestsProject string
	manifestsLimit   int
	manifestsJSON    bool
)

var manifestsCmd = &cobra.Command{
	Use:   "manifests",
	Short: "List and inspect stored manifests",
}

var manifestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored manifests, newest first",
	RunE:  runManifestsList,
}

var manifestsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one manifest as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestsShow,
}

func init() {
	manifestsListCmd.Flags().StringVar(&manifestsProject, "project", "", "Filter by project identifier")
	manifestsListCmd.Flags().IntVar(&manifestsLimit, "limit", 20, "Maximum rows to list")
	manifestsListCmd.Flags().BoolVar(&manifestsJSON, "json", false, "Output as JSON")
	manifestsCmd.AddCommand(manifestsListCmd)
	manifestsCmd.AddCommand(manifestsShowCmd)
	rootCmd.AddCommand(manifestsCmd)
}

func openStore() (*storage.DB, *storage.Store, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)
	db, err := storage.Open(cfg.Storage.Dir, logger)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.NewStore(db, cfg.Storage.HotCacheSize, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, store, nil
}

func runManifestsList(cmd *cobra.Command, args []string) error {
	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := store.ListManifests(manifestsProject, manifestsLimit)
	if err != nil {
		return err
	}

	if manifestsJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No manifests stored.")
		return nil
	}
	for _, r := range rows {
		commit := r.CommitHash
		if commit == "" {
			commit = "-"
		} else if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Printf("%s  %-10s  %-12s  %s  %s\n",
			r.ID, r.Status, commit, r.ProjectID,
			r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runManifestsShow(cmd *cobra.Command, args []string) error {
	db, store, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := store.GetManifest(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
