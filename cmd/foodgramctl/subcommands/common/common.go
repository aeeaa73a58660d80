package common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/youta-t/flarc"

	"github.com/foodgram-dev/foodgram/pkg/configs"
	dbInterface "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
	kpg "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db/postgres"
)

// CommonFlags are accepted by every foodgramctl subcommand.
type CommonFlags struct {
	Config string `flag:"config" help:"path to config file. Defaults to $FOODGRAM_CONFIG."`
}

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(
			ctx,
			logger,
			commonFlag,
			cl,
			newpos,
		)
	}
}

// Task runs with the loaded configuration.
type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	conf *configs.Config,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		conf, err := configs.Load(commonFlag.Config)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to load config (%s)", err, commonFlag.Config,
			)
		}
		return task(ctx, logger, conf, cl, params)
	})
}

// DBTask runs against the database named in the configuration.
type DBTask[T any] func(
	ctx context.Context,
	logger *log.Logger,
	database dbInterface.Database,
	cl flarc.Commandline[T],
	params []any,
) error

func NewDBTask[T any](task DBTask[T]) flarc.Task[T] {
	return NewTask(func(
		ctx context.Context,
		logger *log.Logger,
		conf *configs.Config,
		cl flarc.Commandline[T],
		params []any,
	) error {
		database, err := kpg.New(
			ctx, conf.Database().URI(),
			kpg.WithSchemaRepository(conf.SchemaRepo()),
		)
		if err != nil {
			return fmt.Errorf("%w: failed to connect to the database", err)
		}
		defer database.Close()

		return task(ctx, logger, database, cl, params)
	})
}
