package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/youta-t/flarc"

	subcollect "github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/collectstatic"
	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/common"
	subsuper "github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/createsuperuser"
	subload "github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/loadingredients"
	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/logger"
	submigrate "github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/migrate"
	subver "github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/version"
	"github.com/foodgram-dev/foodgram/pkg/utils/try"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	migrate := try.To(submigrate.New()).OrFatal(logger)
	loadIngredients := try.To(subload.New()).OrFatal(logger)
	createSuperuser := try.To(subsuper.New()).OrFatal(logger)
	collectStatic := try.To(subcollect.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	ctl := try.To(
		flarc.NewCommandGroup(
			"Foodgram management tasks",
			common.CommonFlags{
				Config: os.Getenv("FOODGRAM_CONFIG"),
			},
			flarc.WithSubcommand("migrate", migrate),
			flarc.WithSubcommand("load-ingredients", loadIngredients),
			flarc.WithSubcommand("createsuperuser", createSuperuser),
			flarc.WithSubcommand("collectstatic", collectStatic),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, ctl, flarc.WithHelp(true)))
}
