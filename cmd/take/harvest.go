package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/takedsl/take/internal/harvest"
)

func init() {
	rootCmd.AddCommand(harvestCmd)
}

var harvestCmd = &cobra.Command{
	Use:   "harvest <job.hcl>",
	Short: "Run a harvest job and store results in SQLite",
	Long: `Harvest loads an HCL job file naming a template, one or more document
sources and an output database, then runs the template over every
matching document. Paths in the job resolve relative to the job file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobPath, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		job, err := harvest.LoadJob(jobPath)
		if err != nil {
			return err
		}

		dir := filepath.Dir(jobPath)
		outPath := job.Output.Path
		if !filepath.IsAbs(outPath) {
			outPath = filepath.Join(dir, outPath)
		}
		store, err := harvest.OpenStore(outPath)
		if err != nil {
			return err
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		rep, err := harvest.NewRunner(osfs.New(dir), log).Run(cmd.Context(), job, store)
		if err != nil {
			_ = store.Rollback()
			return err
		}
		if err := store.Close(); err != nil {
			return err
		}

		fmt.Printf("harvested %d documents (%d failed) into %s\n", rep.Harvested, rep.Failed, outPath)
		return nil
	},
}
