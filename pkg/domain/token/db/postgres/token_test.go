package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/foodgram-dev/foodgram/pkg/conn/postgres/pool/testenv"
	"github.com/foodgram-dev/foodgram/pkg/conn/postgres/scanner"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	"github.com/foodgram-dev/foodgram/pkg/domain/internal/db/postgres/tables"
	kpgtoken "github.com/foodgram-dev/foodgram/pkg/domain/token/db/postgres"
	"github.com/foodgram-dev/foodgram/pkg/utils/cmp"
	"github.com/foodgram-dev/foodgram/pkg/utils/try"
)

func given() tables.Operation {
	return tables.Operation{
		Users: []tables.User{
			{
				Id: 100, Email: "carol@example.com", Username: "carol",
				FirstName: "Carol", LastName: "Singer", PasswordHash: "h-carol",
				IsActive:   true,
				DateJoined: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		AuthTokens: []tables.AuthToken{
			{
				Id: "jti-live", UserId: 100,
				IssuedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
				ExpiresAt: time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC),
			},
			{
				Id: "jti-stale", UserId: 100,
				IssuedAt:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
				ExpiresAt: time.Date(2024, 5, 8, 10, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestToken_New(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it records an issued token", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		if err := (&tables.Operation{Users: given().Users}).Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		token := domain.Token{
			Id: "jti-new", UserId: 100,
			IssuedAt:  time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC),
			ExpiresAt: time.Date(2024, 7, 8, 10, 0, 0, 0, time.UTC),
		}
		if err := testee.New(ctx, token); err != nil {
			t.Fatal(err)
		}

		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		type row struct {
			Id        string
			UserId    int
			IssuedAt  time.Time
			ExpiresAt time.Time
		}
		actual := try.To(scanner.New[row]().QueryAll(
			ctx, conn,
			`select "id", "user_id", "issued_at", "expires_at" from "auth_token"`,
		)).OrFatal(t)
		expected := []row{
			{
				Id: "jti-new", UserId: 100,
				IssuedAt: token.IssuedAt, ExpiresAt: token.ExpiresAt,
			},
		}
		if !cmp.SliceContentEqWith(actual, expected, func(a, x row) bool {
			return a.Id == x.Id && a.UserId == x.UserId &&
				a.IssuedAt.Equal(x.IssuedAt) && a.ExpiresAt.Equal(x.ExpiresAt)
		}) {
			t.Errorf(
				"unexpected records:\n===actual===\n%+v\n===expected===\n%+v",
				actual, expected,
			)
		}
	})

	t.Run("when the token id is taken, it returns ErrConflict", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		err := testee.New(ctx, domain.Token{
			Id: "jti-live", UserId: 100,
			IssuedAt:  time.Now(),
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
		if !errors.Is(err, domerr.ErrConflict) {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("when the user does not exist, it returns ErrMissing", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)

		testee := kpgtoken.New(pgpool)
		err := testee.New(ctx, domain.Token{
			Id: "jti-orphan", UserId: 42,
			IssuedAt:  time.Now(),
			ExpiresAt: time.Now().Add(24 * time.Hour),
		})
		if !errors.Is(err, domerr.ErrMissing) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestToken_Get(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it retrieves a token record", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		actual := try.To(testee.Get(ctx, "jti-live")).OrFatal(t)

		expected := domain.Token{
			Id: "jti-live", UserId: 100,
			IssuedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			ExpiresAt: time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC),
		}
		if !actual.Equal(&expected) {
			t.Errorf(
				"unexpected token:\n===actual===\n%+v\n===expected===\n%+v",
				actual, expected,
			)
		}
	})

	t.Run("expiry is not checked here", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		actual := try.To(testee.Get(ctx, "jti-stale")).OrFatal(t)
		if actual.Id != "jti-stale" {
			t.Errorf("unexpected token: %+v", actual)
		}
	})

	t.Run("when no record has the id, it returns ErrMissing", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		_, err := testee.Get(ctx, "jti-nowhere")
		if !errors.Is(err, domerr.ErrMissing) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestToken_Delete(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it revokes a token", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		if err := testee.Delete(ctx, "jti-live"); err != nil {
			t.Fatal(err)
		}

		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		rest := try.To(scanner.New[string]().QueryAll(
			ctx, conn, `select "id" from "auth_token"`,
		)).OrFatal(t)
		if !cmp.SliceContentEq(rest, []string{"jti-stale"}) {
			t.Errorf("unexpected records left: %v", rest)
		}
	})

	t.Run("when no record has the id, it returns ErrMissing", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		if err := testee.Delete(ctx, "jti-nowhere"); !errors.Is(err, domerr.ErrMissing) {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestToken_DeleteExpired(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("it drops records expired at now, and only them", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		dropped := try.To(testee.DeleteExpired(ctx, now)).OrFatal(t)
		if dropped != 1 {
			t.Errorf("unexpected number of dropped records: %d", dropped)
		}

		conn := try.To(pgpool.Acquire(ctx)).OrFatal(t)
		defer conn.Release()
		rest := try.To(scanner.New[string]().QueryAll(
			ctx, conn, `select "id" from "auth_token"`,
		)).OrFatal(t)
		if !cmp.SliceContentEq(rest, []string{"jti-live"}) {
			t.Errorf("unexpected records left: %v", rest)
		}
	})

	t.Run("nothing expired, nothing dropped", func(t *testing.T) {
		ctx := context.Background()
		pgpool := poolBroaker.GetPool(ctx, t)
		prem := given()
		if err := prem.Apply(ctx, pgpool); err != nil {
			t.Fatal(err)
		}

		testee := kpgtoken.New(pgpool)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		dropped := try.To(testee.DeleteExpired(ctx, now)).OrFatal(t)
		if dropped != 0 {
			t.Errorf("unexpected number of dropped records: %d", dropped)
		}
	})
}
