package createsuperuser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/youta-t/flarc"

	"github.com/foodgram-dev/foodgram/cmd/foodgramctl/subcommands/common"
	"github.com/foodgram-dev/foodgram/pkg/auth"
	"github.com/foodgram-dev/foodgram/pkg/domain"
	domerr "github.com/foodgram-dev/foodgram/pkg/domain/errors"
	dbInterface "github.com/foodgram-dev/foodgram/pkg/domain/foodgram/db"
)

type Flag struct {
	Email     string `flag:"email" help:"email of the new superuser. Prompted when omitted."`
	Username  string `flag:"username" help:"username of the new superuser. Prompted when omitted."`
	FirstName string `flag:"first-name" help:"first name of the new superuser. Prompted when omitted."`
	LastName  string `flag:"last-name" help:"last name of the new superuser. Prompted when omitted."`
	Password  string `flag:"password" help:"password of the new superuser. Prompted (with confirmation) when omitted."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"create a staff account with full permissions",
		Flag{},
		flarc.Args{},
		common.NewDBTask(Task()),
		flarc.WithDescription(`
Create a superuser: an active staff account passing every permission check.

Values not given as flags are prompted for on stdin. The password is
asked twice when prompted. Note that passing --password leaves the
password visible in the shell history; prefer the prompt.
`),
	)
}

func Task() common.DBTask[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		database dbInterface.Database,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		flags := cl.Flags()
		in := bufio.NewReader(cl.Stdin())

		email, err := field(in, cl.Stdout(), "Email", flags.Email, domain.ValidateEmail)
		if err != nil {
			return err
		}
		username, err := field(in, cl.Stdout(), "Username", flags.Username, domain.ValidateUsername)
		if err != nil {
			return err
		}
		firstName, err := field(in, cl.Stdout(), "First name", flags.FirstName, domain.ValidateName)
		if err != nil {
			return err
		}
		lastName, err := field(in, cl.Stdout(), "Last name", flags.LastName, domain.ValidateName)
		if err != nil {
			return err
		}

		password := flags.Password
		if password == "" {
			password, err = prompt(in, cl.Stdout(), "Password")
			if err != nil {
				return err
			}
			again, err := prompt(in, cl.Stdout(), "Password (again)")
			if err != nil {
				return err
			}
			if password != again {
				return errors.New("passwords do not match")
			}
		}
		if err := domain.ValidatePassword(password); err != nil {
			return err
		}

		hashed, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		id, err := database.Users().New(ctx, domain.UserSpec{
			Email:          email,
			Username:       username,
			FirstName:      firstName,
			LastName:       lastName,
			HashedPassword: hashed,
			IsStaff:        true,
			IsSuperuser:    true,
		})
		if err != nil {
			if errors.Is(err, domerr.ErrConflict) {
				return fmt.Errorf("cannot create the superuser: %w", err)
			}
			return err
		}

		logger.Printf("superuser %s created (id=%d)", username, id)
		return nil
	}
}

// field returns the flag value when set, validating it. Otherwise it
// prompts until a valid value is typed.
func field(
	in *bufio.Reader, out io.Writer,
	label string, flagValue string,
	validate func(string) error,
) (string, error) {
	if flagValue != "" {
		if err := validate(flagValue); err != nil {
			return "", err
		}
		return flagValue, nil
	}

	for {
		value, err := prompt(in, out, label)
		if err != nil {
			return "", err
		}
		if err := validate(value); err != nil {
			fmt.Fprintln(out, err.Error())
			continue
		}
		return value, nil
	}
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	if _, err := fmt.Fprintf(out, "%s: ", label); err != nil {
		return "", err
	}

	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", errors.New("stdin closed before all fields were given")
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
