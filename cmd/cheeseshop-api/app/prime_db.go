package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/cheeseshop/cheeseshop/internal/db/sqlc"
	"github.com/cheeseshop/cheeseshop/internal/service"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

var primeDbCmd = &cobra.Command{
	Use:   "prime-db [dump-file]",
	Short: "Prime the database from an index dump",
	Long: `Prime the database by loading an index dump into it.

This command:
- Reads a JSON index dump from the given file, or from STDIN when omitted
- Inserts every project, release and release file in a single transaction
- Records a changelog entry per release so the change serial advances

The command uses the --config option to connect to the database.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrimeDb,
}

func init() {
	primeDbCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	primeDbCmd.Flags().Bool("dry-run", false, "Parse the dump and report what would be loaded without writing")

	if err := primeDbCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runPrimeDb(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	dump, err := readIndexDump(cmd, args)
	if err != nil {
		return err
	}

	releases := 0
	for _, p := range dump.Projects {
		releases += len(p.Releases)
	}
	logger.Infof("Parsed index dump: %d project(s), %d release(s)", len(dump.Projects), releases)

	if dryRun {
		return nil
	}

	cfg, err := loadDatabaseConfig(configPath)
	if err != nil {
		return err
	}
	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			logger.Errorf("Error closing database connection: %v", closeErr)
		}
	}()

	if err := loadDump(ctx, conn, dump); err != nil {
		return fmt.Errorf("failed to prime database: %w", err)
	}

	logger.Infof("Database primed successfully with %d project(s)", len(dump.Projects))
	return nil
}

// readIndexDump reads and parses the dump from the positional argument, or
// from standard input when no argument is given.
func readIndexDump(cmd *cobra.Command, args []string) (*service.IndexDump, error) {
	var reader io.Reader
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open dump file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logger.Errorf("Error closing dump file: %v", closeErr)
			}
		}()
		reader = f
	} else {
		logger.Infof("Reading index dump from standard input...")
		reader = cmd.InOrStdin()
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	var dump service.IndexDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse dump: %w", err)
	}
	return &dump, nil
}

// loadDump writes the dump into the database in a single serializable
// transaction so readers never observe a half-loaded index.
func loadDump(ctx context.Context, conn *pgx.Conn, dump *service.IndexDump) error {
	tx, err := conn.BeginTx(
		ctx,
		pgx.TxOptions{
			IsoLevel:   pgx.Serializable,
			AccessMode: pgx.ReadWrite,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
			logger.Errorf("failed to rollback transaction: %v", err)
		}
	}()

	queries := sqlc.New(conn).WithTx(tx)

	for _, p := range dump.Projects {
		project, err := queries.InsertProject(ctx, sqlc.InsertProjectParams{
			Name:           p.Name,
			NormalizedName: service.NormalizeProjectName(p.Name),
			Created:        p.Created.Time(),
		})
		if err != nil {
			return fmt.Errorf("failed to insert project %s: %w", p.Name, err)
		}

		for _, r := range p.Releases {
			releaseID, err := queries.InsertRelease(ctx, sqlc.InsertReleaseParams{
				ProjectID:       project.ID,
				Version:         r.Version,
				Summary:         r.Summary,
				Description:     r.Description,
				Author:          r.Author,
				AuthorEmail:     r.AuthorEmail,
				Maintainer:      r.Maintainer,
				MaintainerEmail: r.MaintainerEmail,
				License:         r.License,
				Keywords:        r.Keywords,
				Platform:        r.Platform,
				HomePage:        r.HomePage,
				DownloadUrl:     r.DownloadURL,
				RequiresPython:  r.RequiresPython,
				Classifiers:     r.Classifiers,
				Created:         r.Created.Time(),
			})
			if err != nil {
				return fmt.Errorf("failed to insert release %s %s: %w", p.Name, r.Version, err)
			}

			for _, f := range r.Files {
				err := queries.InsertReleaseFile(ctx, sqlc.InsertReleaseFileParams{
					ReleaseID:     releaseID,
					Filename:      f.Filename,
					Url:           f.URL,
					PythonVersion: f.PythonVersion,
					Packagetype:   f.PackageType,
					Md5Digest:     f.MD5Digest,
					Size:          f.Size,
					HasSig:        f.HasSig,
					CommentText:   f.CommentText,
					UploadTime:    f.UploadTime.Time(),
				})
				if err != nil {
					return fmt.Errorf("failed to insert file %s: %w", f.Filename, err)
				}
			}

			version := r.Version
			if _, err := queries.InsertChangelogEntry(ctx, sqlc.InsertChangelogEntryParams{
				ProjectName: p.Name,
				Version:     &version,
				Action:      "new release",
			}); err != nil {
				return fmt.Errorf("failed to record changelog entry for %s %s: %w", p.Name, r.Version, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
