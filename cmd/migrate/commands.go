package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"ragstore/internal/config"
	"ragstore/internal/migration"
	"ragstore/internal/storage"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate legacy chunk collections into folders",
		Long: `migrate moves the legacy flat collections (chunks, labels, qa_pairs) into the
folder-scoped store. Every migrated document lands in a new default folder.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")

	root.AddCommand(newRunCmd(cfg), newVerifyCmd(cfg), newSeedCmd(cfg))
	return root
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	var (
		noBackup bool
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the migration",
		Long: `Run the migration and write a JSON report.

Examples:
  # Back up, migrate and verify
  migrate run

  # Skip the backup snapshot
  migrate run --no-backup

  # Migrate again although a previous run already created its folder
  migrate run --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			db, err := openDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			pipeline := migration.NewPipeline(db)
			report, runErr := pipeline.Run(ctx, migration.Options{
				Backup:    !noBackup,
				BackupDir: cfg.BackupDir,
				Force:     force,
			})
			if report != nil {
				if err := migration.WriteReport(cfg.ReportPath, report); err != nil {
					return err
				}
				printReport(cmd, report)
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", cfg.ReportPath)
			}
			return runErr
		},
	}
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the backup snapshot")
	cmd.Flags().BoolVar(&force, "force", false, "Run even if a previous migration created its folder")
	return cmd
}

func newVerifyCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Compare legacy and migrated record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			verification, err := migration.NewPipeline(db).Verify(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, verification)
		},
	}
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Load a legacy snapshot into the legacy collections",
		Long: `Load a JSON snapshot of the form {"chunks": [...], "labels": [...], "qa_pairs": [...]}
into the legacy collections, ready to be migrated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open snapshot: %w", err)
			}
			defer func() {
				_ = f.Close()
			}()

			snap, err := migration.ReadSnapshot(f)
			if err != nil {
				return err
			}

			db, err := openDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			counts, err := migration.Seed(cmd.Context(), storage.NewLegacyRepo(db), snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d chunks, %d label records, %d qa records\n",
				counts.Chunks, counts.Labels, counts.QA)
			return nil
		},
	}
}

func openDB(path string) (*sql.DB, error) {
	db, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run schema migrations: %w", err)
	}
	return db, nil
}

func printReport(cmd *cobra.Command, report *migration.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stage: %s\n", report.Stage)
	if report.DefaultFolderID != "" {
		fmt.Fprintf(out, "  Default folder: %s\n", report.DefaultFolderID)
	}
	for _, f := range report.BackupFiles {
		fmt.Fprintf(out, "  Backup: %s\n", f)
	}
	fmt.Fprintf(out, "  Documents: %d/%d migrated, %d skipped, %d failed\n",
		report.Documents.Succeeded, report.Documents.Attempted, report.Documents.Skipped, report.Documents.Failed)
	fmt.Fprintf(out, "  Labels:    %d/%d migrated, %d skipped, %d failed\n",
		report.Labels.Succeeded, report.Labels.Attempted, report.Labels.Skipped, report.Labels.Failed)
	fmt.Fprintf(out, "  QA pairs:  %d/%d migrated, %d skipped, %d failed\n",
		report.QAPairs.Succeeded, report.QAPairs.Attempted, report.QAPairs.Skipped, report.QAPairs.Failed)
	if report.Error != "" {
		fmt.Fprintf(out, "  Error: %s\n", report.Error)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
