package postgres_test

import (
	"context"
	"testing"

	kpool "github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool"
	"github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool/proxy"
	"github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool/testenv"
	"github.com/foodgram-dev/foodgram/pkg/conn/postgres/scanner"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	kpging "github.com/foodgram-dev/foodgram/pkg/domain/ingredient/db/postgres"
	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
	"github.com/foodgram-dev/foodgram/pkg/utils/slices"
	"github.com/foodgram-dev/foodgram/pkg/utils/try"
)

func TestIngredient_Get(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it retrieves ingredients by ids, leaving unknown ids out", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)

		salt := domain.Ingredient{Name: "salt", MeasurementUnit: "g"}
		sugar := domain.Ingredient{Name: "sugar", MeasurementUnit: "g"}
		salt.Id = seedIngredient(ctx, t, pgpool, salt)
		sugar.Id = seedIngredient(ctx, t, pgpool, sugar)

		testee := kpging.New(pgpool)
		actual := try.To(testee.Get(ctx, []int{salt.Id, sugar.Id, sugar.Id + 100})).OrFatal(t)

		expected := map[int]domain.Ingredient{salt.Id: salt, sugar.Id: sugar}
		if !cmp.MapEq(actual, expected) {
			t.Errorf(
				"unexpected ingredients:\n===actual===\n%+v\n===expected===\n%+v",
				actual, expected,
			)
		}
	})
}

func TestIngredient_Find(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	type Then struct {
		// pairs of (name, measurement unit), in order
		Items [][2]string
	}

	theory := func(when domain.IngredientFilter, then Then) func(*testing.T) {
		return func(t *testing.T) {
			ctx := context.Background()
			pgpool := poolBroaker.GetPool(ctx, t)

			for _, ing := range []domain.Ingredient{
				{Name: "sugar", MeasurementUnit: "g"},
				{Name: "salt", MeasurementUnit: "pinch"},
				{Name: "salt", MeasurementUnit: "g"},
				{Name: "sunflower oil", MeasurementUnit: "ml"},
				{Name: "flour", MeasurementUnit: "g"},
			} {
				seedIngredient(ctx, t, pgpool, ing)
			}

			testee := kpging.New(pgpool)
			actual := try.To(testee.Find(ctx, when)).OrFatal(t)

			items := slices.Map(actual, func(i domain.Ingredient) [2]string {
				return [2]string{i.Name, i.MeasurementUnit}
			})
			if !cmp.SliceEq(items, then.Items) {
				t.Errorf(
					"unexpected items:\n===actual===\n%+v\n===expected===\n%+v",
					items, then.Items,
				)
			}
		}
	}

	t.Run("empty filter returns everything in name order", theory(
		domain.IngredientFilter{},
		Then{Items: [][2]string{
			{"flour", "g"},
			{"salt", "g"},
			{"salt", "pinch"},
			{"sugar", "g"},
			{"sunflower oil", "ml"},
		}},
	))
	t.Run("the name prefix narrows by the head of the name", theory(
		domain.IngredientFilter{NamePrefix: "su"},
		Then{Items: [][2]string{
			{"sugar", "g"},
			{"sunflower oil", "ml"},
		}},
	))
	t.Run("the prefix match ignores case", theory(
		domain.IngredientFilter{NamePrefix: "SALT"},
		Then{Items: [][2]string{
			{"salt", "g"},
			{"salt", "pinch"},
		}},
	))
	t.Run("the substring filter matches anywhere in the name", theory(
		domain.IngredientFilter{NameContains: "flower"},
		Then{Items: [][2]string{
			{"sunflower oil", "ml"},
		}},
	))
	t.Run("when nothing matches, it returns no ingredients", theory(
		domain.IngredientFilter{NamePrefix: "pepper"},
		Then{Items: [][2]string{}},
	))
}

func TestIngredient_Load(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	type row struct {
		Name            string
		MeasurementUnit string
	}

	listAll := func(ctx context.Context, t *testing.T, pgpool kpool.Pool) []row {
		t.Helper()
		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		return try.To(scanner.New[row]().QueryAll(
			ctx, conn,
			`select "name", "measurement_unit" from "ingredient"`,
		)).OrFatal(t)
	}

	t.Run("it loads ingredients into an empty table", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)

		testee := kpging.New(pgpool)
		inserted := try.To(testee.Load(ctx, []domain.IngredientSpec{
			{Name: "salt", MeasurementUnit: "g"},
			{Name: "sugar", MeasurementUnit: "g"},
			{Name: "milk", MeasurementUnit: "ml"},
		})).OrFatal(t)

		if inserted != 3 {
			t.Errorf("unexpected inserted count: %d (expected: 3)", inserted)
		}
		actual := listAll(ctx, t, pgpool)
		expected := []row{
			{Name: "salt", MeasurementUnit: "g"},
			{Name: "sugar", MeasurementUnit: "g"},
			{Name: "milk", MeasurementUnit: "ml"},
		}
		if !cmp.SliceContentEq(actual, expected) {
			t.Errorf(
				"unexpected rows:\n===actual===\n%+v\n===expected===\n%+v",
				actual, expected,
			)
		}
	})

	t.Run("it skips known (name, unit) pairs and counts new rows only", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)

		testee := kpging.New(pgpool)
		try.To(testee.Load(ctx, []domain.IngredientSpec{
			{Name: "salt", MeasurementUnit: "g"},
			{Name: "sugar", MeasurementUnit: "g"},
		})).OrFatal(t)

		inserted := try.To(testee.Load(ctx, []domain.IngredientSpec{
			{Name: "salt", MeasurementUnit: "g"},
			{Name: "salt", MeasurementUnit: "pinch"},
			{Name: "sugar", MeasurementUnit: "g"},
		})).OrFatal(t)

		if inserted != 1 {
			t.Errorf("unexpected inserted count: %d (expected: 1)", inserted)
		}
		actual := listAll(ctx, t, pgpool)
		expected := []row{
			{Name: "salt", MeasurementUnit: "g"},
			{Name: "salt", MeasurementUnit: "pinch"},
			{Name: "sugar", MeasurementUnit: "g"},
		}
		if !cmp.SliceContentEq(actual, expected) {
			t.Errorf(
				"unexpected rows:\n===actual===\n%+v\n===expected===\n%+v",
				actual, expected,
			)
		}
	})

	t.Run("loading nothing is a no-op", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)

		testee := kpging.New(pgpool)
		inserted := try.To(testee.Load(ctx, []domain.IngredientSpec{})).OrFatal(t)
		if inserted != 0 {
			t.Errorf("unexpected inserted count: %d (expected: 0)", inserted)
		}
	})

	t.Run("it sends the whole batch as one statement in one transaction", func(t *testing.T) {
		ctx := context.Background()
		pgpool := proxy.Wrap(poolBroaker.GetPool(ctx, t))

		queries := 0
		commits := 0
		pgpool.Events().Query.After(func() { queries++ })
		pgpool.Events().Commit.After(func() { commits++ })

		testee := kpging.New(pgpool)
		try.To(testee.Load(ctx, []domain.IngredientSpec{
			{Name: "salt", MeasurementUnit: "g"},
			{Name: "sugar", MeasurementUnit: "g"},
			{Name: "milk", MeasurementUnit: "ml"},
			{Name: "flour", MeasurementUnit: "g"},
		})).OrFatal(t)

		if queries != 1 {
			t.Errorf("unexpected query count: %d (expected: 1)", queries)
		}
		if commits != 1 {
			t.Errorf("unexpected commit count: %d (expected: 1)", commits)
		}
	})
}

func seedIngredient(ctx context.Context, t *testing.T, pgpool kpool.Pool, ing domain.Ingredient) int {
	t.Helper()

	conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
	defer conn.Release()

	var id int
	if err := conn.QueryRow(
		ctx,
		`
		insert into "ingredient" ("name", "measurement_unit")
		values ($1, $2)
		returning "id"
		`,
		ing.Name, ing.MeasurementUnit,
	).Scan(&id); err != nil {
		t.Fatal(err)
	}
	return id
}
