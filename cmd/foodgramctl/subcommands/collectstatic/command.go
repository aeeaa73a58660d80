package collectstatic

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/youta-t/flarc"

	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/common"
	"github.com/foodgram-dev/foodgram/pkg/configs"
	"github.com/foodgram-dev/foodgram/web"
)

type Flag struct {
	Clear bool `flag:"clear" help:"remove the destination directory before copying."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"copy the bundled static assets to STATIC_ROOT",
		Flag{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Copy the static assets baked into this binary (the API reference and
admin styles) into the static root named in the configuration, where
the frontend proxy serves them from.

Existing files are overwritten. With --clear, the whole destination
directory is removed first.
`),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		conf *configs.Config,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		dest := conf.StaticRoot()

		if cl.Flags().Clear {
			if err := os.RemoveAll(dest); err != nil {
				return err
			}
		}

		assets, err := fs.Sub(web.Static, "static")
		if err != nil {
			return err
		}

		copied, err := Copy(assets, dest)
		if err != nil {
			return err
		}

		logger.Printf("%d static files copied to %s", copied, dest)
		return nil
	}
}

// Copy writes all files of src below dest, keeping their paths.
func Copy(src fs.FS, dest string) (int, error) {
	copied := 0
	err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		target := filepath.Join(dest, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		content, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return err
		}
		copied += 1
		return nil
	})
	return copied, err
}
