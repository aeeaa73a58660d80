package loadingredients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/youta-t/flarc"

	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/common"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	dbInterface "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
)

const ARG_FILE = "FILE"

const DefaultFile = "data/ingredients.json"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"load ingredients into the database from a JSON file",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_FILE, Required: false,
				Help: `path to the ingredient file ("-" reads stdin). Defaults to ` + DefaultFile + `.`,
			},
		},
		common.NewDBTask(Task()),
		flarc.WithDescription(`
Load ingredients in bulk.

The file is a JSON array of objects:

    [
        {"name": "мука", "measurement_unit": "г"},
        ...
    ]

Ingredients already in the database (same name and measurement unit)
are skipped, so reloading the same file is safe.
`),
	)
}

// ReadSpecs parses and validates an ingredient file.
func ReadSpecs(r io.Reader) ([]domain.IngredientSpec, error) {
	var rows []struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("malformed ingredient file: %w", err)
	}

	specs := make([]domain.IngredientSpec, len(rows))
	for i, row := range rows {
		spec := domain.IngredientSpec{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
		}
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("ingredient #%d (%q): %w", i+1, row.Name, err)
		}
		specs[i] = spec
	}
	return specs, nil
}

func Task() common.DBTask[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		database dbInterface.Database,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		file := DefaultFile
		if args := cl.Args()[ARG_FILE]; 0 < len(args) {
			file = args[0]
		}

		var source io.Reader
		if file == "-" {
			source = cl.Stdin()
		} else {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()
			source = f
		}

		specs, err := ReadSpecs(source)
		if err != nil {
			return err
		}
		if len(specs) == 0 {
			logger.Println("nothing to load")
			return nil
		}

		inserted, err := database.Ingredients().Load(ctx, specs)
		if err != nil {
			return err
		}

		logger.Printf(
			"%d of %d ingredients loaded (%d already known)",
			inserted, len(specs), len(specs)-inserted,
		)
		return nil
	}
}
