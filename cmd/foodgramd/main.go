package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/configs"
	kpg "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db/postgres"
	"github.com/foodgram-dev/foodgram/pkg/logging"
	"github.com/foodgram-dev/foodgram/pkg/loop"
	"github.com/foodgram-dev/foodgram/pkg/media"
)

// tokenSweepInterval paces the background pruning of expired tokens.
const tokenSweepInterval = time.Hour

func main() {

	pconfig := flag.String(
		"config", os.Getenv("FOODGRAM_CONFIG"), "path to config file",
	)
	loglevel := flag.String("loglevel", "", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	conf, err := configs.Load(*pconfig)
	if err != nil {
		panic(err)
	}
	if *loglevel == "" {
		*loglevel = conf.LogLevel()
	}

	logger, err := logging.New(*loglevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if conf.SecretKeyGenerated() {
		logger.Warn(
			"SECRET_KEY is not set. a debug-only key has been generated; tokens will not survive a restart",
		)
	}

	db, err := kpg.New(
		ctx, conf.Database().URI(), kpg.WithSchemaRepository(conf.SchemaRepo()),
	)
	if err != nil {
		panic(err)
	}
	defer db.Close()
	{
		ctx_, ccan := db.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	store := media.New(conf.MediaRoot())
	issuer := auth.New(conf.SecretKey(), conf.TokenTTL())

	go func() {
		_, err := loop.Start(ctx, 0, func(ctx context.Context, swept int) (int, loop.Next) {
			pruned, err := db.Tokens().DeleteExpired(ctx, time.Now())
			if err != nil {
				logger.Warn("token sweep failed", zap.Error(err))
				return swept, loop.Continue(tokenSweepInterval)
			}
			if 0 < pruned {
				logger.Info("expired tokens pruned", zap.Int("count", pruned))
			}
			return swept + pruned, loop.Continue(tokenSweepInterval)
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("token sweeper stopped", zap.Error(err))
		}
	}()

	server := BuildServer(conf, db, store, issuer, *loglevel)
	for _, r := range server.Routes() {
		server.Logger.Debugf("- mount handler: %s %s", strings.ToUpper(r.Method), r.Path)
	}

	logger.Info(
		"foodgram api server starting",
		zap.Int32("port", conf.Port()),
		zap.Bool("debug", conf.Debug()),
	)

	ch := make(chan error, 1)
	go func() {
		defer close(ch)

		var err error
		if cert, key := *pcert, *pkey; cert != "" && key != "" {
			err = server.StartTLS(fmt.Sprintf(":%d", conf.Port()), cert, key)
		} else {
			err = server.Start(fmt.Sprintf(":%d", conf.Port()))
		}
		if err != nil && err != http.ErrServerClosed {
			ch <- err
			return
		}
		ch <- nil
	}()

	exit := 0
	select {
	case <-ctx.Done(): // wait
		if err := ctx.Err(); err != nil {
			logger.Info(
				"context has been done",
				zap.Error(err), zap.NamedError("cause", context.Cause(ctx)),
			)
			exit = 1
		}
	case err := <-ch:
		if err != nil {
			logger.Error("server stops with error", zap.Error(err))
			exit = 1
		}
	}

	{
		logger.Info("shutting down...")
		qctx, qcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer qcancel()

		if err := server.Shutdown(qctx); err != nil {
			logger.Error("shutdown with error", zap.Error(err))
			os.Exit(1)
		}
		os.Exit(exit)
	}
}
