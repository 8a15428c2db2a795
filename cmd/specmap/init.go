package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"specmap/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long:  "Create .specmap/config.json with the default settings so they can be edited.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	cfg := config.DefaultConfig()
	if err := cfg.Save(dir); err != nil {
		return err
	}
	fmt.Printf("Wrote %s/.specmap/config.json\n", dir)
	return nil
}
