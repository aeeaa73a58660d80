package schema

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
)

// Interface manages the database schema against a schema repository.
//
// A schema repository is a directory which contains subdirectories
// named with version numbers, each holding .sql files of that version.
type Interface interface {
	// Version returns the schema version recorded in the database.
	//
	// It returns 0 when the database has no schema yet.
	Version(ctx context.Context) (int, error)

	// Upgrade applies all schema versions newer than the current one,
	// in a single transaction.
	Upgrade(ctx context.Context) error

	// Context derives a context which is canceled when the repository
	// holds a schema version newer than the database.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}

type pgSchema struct {
	pool kpool.Pool
	repo string
}

var _ Interface = &pgSchema{}

// New creates a new schema manager.
//
// # Args
//
// - schemaRepository: The path to the schema repository directory.
func New(pool kpool.Pool, schemaRepository string) *pgSchema {
	return &pgSchema{pool: pool, repo: schemaRepository}
}

// revision is one version directory in the schema repository.
type revision struct {
	Number int
	Dir    string
}

// apply executes each .sql file under the revision directory.
func (r revision) apply(ctx context.Context, conn kpool.Queryer) error {
	return filepath.WalkDir(r.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".sql") {
			return nil
		}

		query, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = conn.Exec(ctx, string(query))
		return err
	})
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	var version int
	err = conn.QueryRow(
		ctx, `SELECT max("version") FROM "schema_version"`,
	).Scan(&version)
	if err == nil {
		return version, nil
	}

	if pgerr := new(pgconn.PgError); errors.As(err, &pgerr) && pgerr.Code == pgerrcode.UndefinedTable {
		return 0, nil
	}
	return -1, err
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	revs, err := s.revisions()
	if err != nil {
		return err
	}

	current, err := s.Version(ctx)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, rev := range revs {
		if rev.Number <= current {
			continue
		}
		if err := rev.apply(ctx, tx); err != nil {
			return err
		}

		// keep schema_version single-row, holding the latest applied number
		if _, err := tx.Exec(ctx, `DELETE FROM "schema_version"`); err != nil {
			return err
		}
		if _, err := tx.Exec(
			ctx, `INSERT INTO "schema_version" ("version") VALUES ($1)`, rev.Number,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *pgSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, can := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		can(err)
		return cctx, func() {}
	}
	if err := w.Add(s.repo); err != nil {
		can(err)
		return cctx, func() {}
	}

	recheck := func() {
		revs, err := s.revisions()
		if err != nil {
			can(fmt.Errorf("failed to read schema repository: %w", err))
			return
		}

		current, err := s.Version(ctx)
		if err != nil {
			can(fmt.Errorf("failed to get current schema version: %w", err))
			return
		}

		for _, rev := range revs {
			if current < rev.Number {
				can(fmt.Errorf(
					"schema is outdated: %d (in db) < %d (in repository)",
					current, rev.Number,
				))
				return
			}
		}
	}

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case ev := <-w.Events:
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if filepath.Dir(ev.Name) != s.repo {
					continue
				}
				recheck()
			}
		}
	}()

	recheck()
	return cctx, func() { can(nil) }
}

// revisions lists the schema repository, sorted by version number.
//
// Entries which are not directories named with a number are skipped.
func (s *pgSchema) revisions() ([]revision, error) {
	entries, err := os.ReadDir(s.repo)
	if err != nil {
		return nil, err
	}

	revs := make([]revision, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		revs = append(revs, revision{
			Number: n,
			Dir:    filepath.Join(s.repo, e.Name()),
		})
	}
	slices.SortFunc(revs, func(a, b revision) int { return cmp.Compare(a.Number, b.Number) })

	return revs, nil
}

// Null returns a schema manager bound to no repository.
//
// Version reports -1, Upgrade always fails and Context never cancels.
func Null() *nullSchema {
	return &nullSchema{}
}

type nullSchema struct{}

var _ Interface = nullSchema{}

func (nullSchema) Upgrade(ctx context.Context) error {
	return errors.New("no schema repository available")
}

func (nullSchema) Version(ctx context.Context) (int, error) {
	return -1, nil
}

func (nullSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return ctx, func() {}
}
