package version

import (
	"context"
	"fmt"

	"github.com/youta-t/flarc"

	"github.com/foodgram-dev/foodgram/pkg/buildtime"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"show the version of this command",
		struct{}{},
		flarc.Args{},
		func(ctx context.Context, c flarc.Commandline[struct{}], a []any) error {
			_, err := fmt.Fprintln(c.Stdout(), buildtime.VersionString())
			return err
		},
	)
}
