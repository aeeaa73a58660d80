package migrate

import (
	"context"
	"log"

	"github.com/youta-t/flarc"

	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/common"
	dbInterface "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"apply pending database schema versions",
		struct{}{},
		flarc.Args{},
		common.NewDBTask(Task()),
		flarc.WithDescription(`
Upgrade the database schema to the newest version in the schema repository.

Versions already applied are skipped. The upgrade runs in a single
transaction, so a failing version leaves the database as it was.

The schema repository is taken from the configuration (schemaRepo,
or the SCHEMA_REPO environment variable).
`),
	)
}

func Task() common.DBTask[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		database dbInterface.Database,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		before, err := database.Schema().Version(ctx)
		if err != nil {
			return err
		}

		if err := database.Schema().Upgrade(ctx); err != nil {
			return err
		}

		after, err := database.Schema().Version(ctx)
		if err != nil {
			return err
		}

		if before == after {
			logger.Printf("schema is up to date (version %d)", after)
		} else {
			logger.Printf("schema upgraded: version %d -> %d", before, after)
		}
		return nil
	}
}
