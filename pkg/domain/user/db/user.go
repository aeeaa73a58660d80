package db

import (
	"context"

	"github.com/foodgram-dev/foodgram/pkg/domain"
)

type Interface interface {
	// create a new user.
	//
	// Args
	//
	// - context.Context
	//
	// - UserSpec: spec of the new user. The password is hashed already.
	//
	// Returns
	//
	// - int: id of the created user
	//
	// - error: ErrConflict when the email or username is taken.
	// The Error() of the conflict names the taken column.
	New(ctx context.Context, spec domain.UserSpec) (int, error)

	// Retrieve users.
	//
	// Args
	//
	// - context.Context
	//
	// - []int: user ids
	//
	// Returns
	//
	// - map[int]User: mapping id->User. Unknown ids are left out.
	//
	// - error
	Get(ctx context.Context, ids []int) (map[int]domain.User, error)

	// Retrieve a user by email, case-insensitively.
	//
	// Returns
	//
	// - User
	//
	// - error: ErrMissing when no user has the email.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Retrieve a user by username (exact match).
	//
	// Returns
	//
	// - User
	//
	// - error: ErrMissing when no user has the username.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// find users matching filter, in id order.
	//
	// Returns
	//
	// - Page[User]: users in the window and the count of all matches.
	//
	// - error
	Find(ctx context.Context, filter domain.UserFilter, window domain.Window) (domain.Page[domain.User], error)

	// set a new password hash.
	//
	// Returns
	//
	// - error: ErrMissing when the user does not exist.
	UpdatePassword(ctx context.Context, userId int, hashedPassword string) error

	// set or clear the avatar path of a user.
	//
	// Args
	//
	// - avatar: new media-relative path. Empty clears the avatar.
	//
	// Returns
	//
	// - string: the previous avatar path ("" when none was set)
	//
	// - error: ErrMissing when the user does not exist.
	UpdateAvatar(ctx context.Context, userId int, avatar string) (string, error)

	// make user userId follow user authorId.
	//
	// Returns
	//
	// - error: ErrConflict when already following,
	// ErrMissing when authorId does not exist,
	// ErrInvalid when userId == authorId.
	Subscribe(ctx context.Context, userId int, authorId int) error

	// make user userId not follow user authorId.
	//
	// Returns
	//
	// - error: ErrMissing when not following.
	Unsubscribe(ctx context.Context, userId int, authorId int) error

	// test which of authors the user follows.
	//
	// Args
	//
	// - userId: the follower. Non-positive ids follow nobody.
	//
	// - authorIds: authors to test.
	//
	// Returns
	//
	// - map[int]bool: mapping authorId->following?. Has a key per authorId.
	//
	// - error
	Following(ctx context.Context, userId int, authorIds []int) (map[int]bool, error)

	// list the subscriptions feed of a user: followed authors with
	// their newest recipes, in follow order.
	//
	// Args
	//
	// - recipesLimit: max recipes per author. Negative means all.
	//
	// Returns
	//
	// - Page[Subscription]
	//
	// - error
	Subscriptions(ctx context.Context, userId int, recipesLimit int, window domain.Window) (domain.Page[domain.Subscription], error)

	// list follow relations, newest first.
	//
	// Args
	//
	// - search: keep relations where the follower or the followed
	// username contains this, case-insensitively. Empty does not narrow.
	FindFollows(ctx context.Context, search string) ([]domain.Follow, error)
}
