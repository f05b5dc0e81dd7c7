package main

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/rvmoura/pagamentos-api/internal/config"
	"github.com/rvmoura/pagamentos-api/internal/database"
	"github.com/rvmoura/pagamentos-api/internal/jobs"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
	"github.com/rvmoura/pagamentos-api/internal/storage"
	"github.com/rvmoura/pagamentos-api/pkg/logger"
)

// importer reconciles legacy CSV exports straight from the command line,
// bypassing the HTTP upload path. Useful for the initial data load and for
// re-running a nightly export by hand.
func main() {
	var kind string

	root := &cobra.Command{
		Use:   "importer [files...]",
		Short: "Reconcile legacy CSV exports into the payments database",
		Long: "Reconcile legacy CSV exports into the payments database.\n\n" +
			"Without --kind, each file's base name (e.g. CONTRATO.csv) selects the\n" +
			"entity kind. Rows whose primary key already exists are skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, kind, args)
		},
	}
	root.Flags().StringVar(&kind, "kind", "", "entity kind for all files (default: derive from file name)")

	root.AddCommand(&cobra.Command{
		Use:   "kinds",
		Short: "List the entity kinds the reconciler accepts",
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, cleanup, err := buildServices()
			if err != nil {
				return err
			}
			defer cleanup()
			for _, k := range svcs.Reconcile.Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, kind string, files []string) error {
	svcs, cleanup, err := buildServices()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	failed := 0
	for _, path := range files {
		fileKind := kind
		if fileKind == "" {
			base := filepath.Base(path)
			fileKind = base[:len(base)-len(filepath.Ext(base))]
		}

		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			failed++
			continue
		}

		result, err := svcs.Import.ReconcileFile(ctx, fileKind, f)
		f.Close()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s): %v\n", path, fileKind, err)
			failed++
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d inserted, %d skipped\n",
			path, fileKind, result.Inserted, result.Skipped)
		if result.Warning != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): warning: %s\n", path, fileKind, result.Warning)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// buildServices wires the same stack as the API server, minus the HTTP layer.
func buildServices() (*services.Services, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Setup(cfg.Environment)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, nil, err
	}

	worker := jobs.NewWorker(1)
	repos := repository.NewRepositories(db)
	svcs := services.NewServices(repos, worker, store, db)

	return svcs, worker.Shutdown, nil
}
