package createsuperuser_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/createsuperuser"
	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/internal/commandline"
	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/logger"
	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	dbmock "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db/mock"
)

func TestCreateSuperuserTask(t *testing.T) {
	t.Run("when all flags are given, it should create the superuser without prompting", func(t *testing.T) {
		ctx := context.Background()

		database := dbmock.NewDatabase()
		database.UsersMock.Impl.New = func(
			ctx context.Context, spec domain.UserSpec,
		) (int, error) {
			return 10, nil
		}

		stdout := new(strings.Builder)
		cl := commandline.New("foodgramctl createsuperuser", createsuperuser.Flag{
			Email:     "admin@example.com",
			Username:  "admin",
			FirstName: "Имя",
			LastName:  "Фамилия",
			Password:  "Qwerty123",
		})
		cl.Stdout_ = stdout

		testee := createsuperuser.Task()
		if err := testee(ctx, logger.Null(), database, cl, nil); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		if stdout.String() != "" {
			t.Errorf("prompted unexpectedly: %q", stdout.String())
		}

		if database.UsersMock.Calls.New.Times() != 1 {
			t.Fatalf(
				"New: called %d times (expected: once)",
				database.UsersMock.Calls.New.Times(),
			)
		}
		spec := database.UsersMock.Calls.New[0]
		if spec.Email != "admin@example.com" ||
			spec.Username != "admin" ||
			spec.FirstName != "Имя" ||
			spec.LastName != "Фамилия" {
			t.Errorf("unexpected spec: %+v", spec)
		}
		if !spec.IsStaff || !spec.IsSuperuser {
			t.Errorf(
				"not a superuser spec: staff=%v superuser=%v",
				spec.IsStaff, spec.IsSuperuser,
			)
		}
		if !auth.VerifyPassword(spec.HashedPassword, "Qwerty123") {
			t.Error("the stored hash does not verify the password")
		}
	})

	t.Run("when flags are omitted, it should prompt for them on stdin", func(t *testing.T) {
		ctx := context.Background()

		database := dbmock.NewDatabase()
		database.UsersMock.Impl.New = func(
			ctx context.Context, spec domain.UserSpec,
		) (int, error) {
			return 11, nil
		}

		stdout := new(strings.Builder)
		cl := commandline.New("foodgramctl createsuperuser", createsuperuser.Flag{})
		cl.Stdin_ = strings.NewReader(
			"not an email\n" + // rejected, asked again
				"admin@example.com\n" +
				"admin\n" +
				"Имя\n" +
				"Фамилия\n" +
				"Qwerty123\n" +
				"Qwerty123\n",
		)
		cl.Stdout_ = stdout

		testee := createsuperuser.Task()
		if err := testee(ctx, logger.Null(), database, cl, nil); err != nil {
			t.Fatalf("unexpected error: %s", err)
		}

		for _, label := range []string{
			"Email: ", "Username: ", "First name: ", "Last name: ",
			"Password: ", "Password (again): ",
		} {
			if !strings.Contains(stdout.String(), label) {
				t.Errorf("prompt %q is not shown: %q", label, stdout.String())
			}
		}

		if database.UsersMock.Calls.New.Times() != 1 {
			t.Fatalf(
				"New: called %d times (expected: once)",
				database.UsersMock.Calls.New.Times(),
			)
		}
		spec := database.UsersMock.Calls.New[0]
		if spec.Email != "admin@example.com" || spec.Username != "admin" {
			t.Errorf("unexpected spec: %+v", spec)
		}
	})

	t.Run("when the typed passwords do not match, it should not create anything", func(t *testing.T) {
		ctx := context.Background()

		database := dbmock.NewDatabase()

		cl := commandline.New("foodgramctl createsuperuser", createsuperuser.Flag{
			Email:     "admin@example.com",
			Username:  "admin",
			FirstName: "Имя",
			LastName:  "Фамилия",
		})
		cl.Stdin_ = strings.NewReader("Qwerty123\nQwerty124\n")

		testee := createsuperuser.Task()
		err := testee(ctx, logger.Null(), database, cl, nil)
		if err == nil || !strings.Contains(err.Error(), "do not match") {
			t.Errorf("unexpected error: %v", err)
		}

		if database.UsersMock.Calls.New.Times() != 0 {
			t.Error("New: called (it should not be)")
		}
	})

	t.Run("when the email or username is taken, it should expose the conflict", func(t *testing.T) {
		ctx := context.Background()

		database := dbmock.NewDatabase()
		database.UsersMock.Impl.New = func(
			ctx context.Context, spec domain.UserSpec,
		) (int, error) {
			return 0, fmt.Errorf("%w: email is taken", domerr.ErrConflict)
		}

		cl := commandline.New("foodgramctl createsuperuser", createsuperuser.Flag{
			Email:     "admin@example.com",
			Username:  "admin",
			FirstName: "Имя",
			LastName:  "Фамилия",
			Password:  "Qwerty123",
		})

		testee := createsuperuser.Task()
		err := testee(ctx, logger.Null(), database, cl, nil)
		if !errors.Is(err, domerr.ErrConflict) {
			t.Errorf("unexpected error: %s (expected: %s)", err, domerr.ErrConflict)
		}
	})

	t.Run("when a flag value is invalid, it should reject it before touching the database", func(t *testing.T) {
		ctx := context.Background()

		database := dbmock.NewDatabase()

		cl := commandline.New("foodgramctl createsuperuser", createsuperuser.Flag{
			Email:     "not-an-email",
			Username:  "admin",
			FirstName: "Имя",
			LastName:  "Фамилия",
			Password:  "Qwerty123",
		})

		testee := createsuperuser.Task()
		err := testee(ctx, logger.Null(), database, cl, nil)
		if !errors.Is(err, domain.ErrInvalid) {
			t.Errorf("unexpected error: %s (expected: %s)", err, domain.ErrInvalid)
		}

		if database.UsersMock.Calls.New.Times() != 0 {
			t.Error("New: called (it should not be)")
		}
	})
}
