package mock

import (
	"context"
	"errors"

	"github.com/foodgram-dev/foodgram/pkg/domain"
	dbmock "github.com/foodgram-dev/foodgram/pkg/domain/internal/db/mock"
	kdb "github.com/foodgram-dev/foodgram/pkg/domain/user/db"
)

type UserInterface struct {
	Impl struct {
		New            func(ctx context.Context, spec domain.UserSpec) (int, error)
		Get            func(ctx context.Context, ids []int) (map[int]domain.User, error)
		GetByEmail     func(ctx context.Context, email string) (domain.User, error)
		GetByUsername  func(ctx context.Context, username string) (domain.User, error)
		Find           func(ctx context.Context, filter domain.UserFilter, window domain.Window) (domain.Page[domain.User], error)
		UpdatePassword func(ctx context.Context, userId int, hashedPassword string) error
		UpdateAvatar   func(ctx context.Context, userId int, avatar string) (string, error)
		Subscribe      func(ctx context.Context, userId int, authorId int) error
		Unsubscribe    func(ctx context.Context, userId int, authorId int) error
		Following      func(ctx context.Context, userId int, authorIds []int) (map[int]bool, error)
		Subscriptions  func(ctx context.Context, userId int, recipesLimit int, window domain.Window) (domain.Page[domain.Subscription], error)
		FindFollows    func(ctx context.Context, search string) ([]domain.Follow, error)
	}

	Calls struct {
		New           dbmock.CallLog[domain.UserSpec]
		Get           dbmock.CallLog[[]int]
		GetByEmail    dbmock.CallLog[string]
		GetByUsername dbmock.CallLog[string]
		Find          dbmock.CallLog[struct {
			Filter domain.UserFilter
			Window domain.Window
		}]
		UpdatePassword dbmock.CallLog[struct {
			UserId         int
			HashedPassword string
		}]
		UpdateAvatar dbmock.CallLog[struct {
			UserId int
			Avatar string
		}]
		Subscribe   dbmock.CallLog[domain.Follow]
		Unsubscribe dbmock.CallLog[domain.Follow]
		Following   dbmock.CallLog[struct {
			UserId    int
			AuthorIds []int
		}]
		Subscriptions dbmock.CallLog[struct {
			UserId       int
			RecipesLimit int
			Window       domain.Window
		}]
		FindFollows dbmock.CallLog[string]
	}
}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

var _ kdb.Interface = &UserInterface{}

func (m *UserInterface) New(ctx context.Context, spec domain.UserSpec) (int, error) {
	m.Calls.New = append(m.Calls.New, spec)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, spec)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Get(ctx context.Context, ids []int) (map[int]domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.Calls.GetByEmail = append(m.Calls.GetByEmail, email)
	if m.Impl.GetByEmail != nil {
		return m.Impl.GetByEmail(ctx, email)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	m.Calls.GetByUsername = append(m.Calls.GetByUsername, username)
	if m.Impl.GetByUsername != nil {
		return m.Impl.GetByUsername(ctx, username)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Find(
	ctx context.Context, filter domain.UserFilter, window domain.Window,
) (domain.Page[domain.User], error) {
	m.Calls.Find = append(m.Calls.Find, struct {
		Filter domain.UserFilter
		Window domain.Window
	}{Filter: filter, Window: window})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, filter, window)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) UpdatePassword(ctx context.Context, userId int, hashedPassword string) error {
	m.Calls.UpdatePassword = append(m.Calls.UpdatePassword, struct {
		UserId         int
		HashedPassword string
	}{UserId: userId, HashedPassword: hashedPassword})
	if m.Impl.UpdatePassword != nil {
		return m.Impl.UpdatePassword(ctx, userId, hashedPassword)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) UpdateAvatar(ctx context.Context, userId int, avatar string) (string, error) {
	m.Calls.UpdateAvatar = append(m.Calls.UpdateAvatar, struct {
		UserId int
		Avatar string
	}{UserId: userId, Avatar: avatar})
	if m.Impl.UpdateAvatar != nil {
		return m.Impl.UpdateAvatar(ctx, userId, avatar)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Subscribe(ctx context.Context, userId int, authorId int) error {
	m.Calls.Subscribe = append(m.Calls.Subscribe, domain.Follow{UserId: userId, AuthorId: authorId})
	if m.Impl.Subscribe != nil {
		return m.Impl.Subscribe(ctx, userId, authorId)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Unsubscribe(ctx context.Context, userId int, authorId int) error {
	m.Calls.Unsubscribe = append(m.Calls.Unsubscribe, domain.Follow{UserId: userId, AuthorId: authorId})
	if m.Impl.Unsubscribe != nil {
		return m.Impl.Unsubscribe(ctx, userId, authorId)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Following(ctx context.Context, userId int, authorIds []int) (map[int]bool, error) {
	m.Calls.Following = append(m.Calls.Following, struct {
		UserId    int
		AuthorIds []int
	}{UserId: userId, AuthorIds: authorIds})
	if m.Impl.Following != nil {
		return m.Impl.Following(ctx, userId, authorIds)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) Subscriptions(
	ctx context.Context, userId int, recipesLimit int, window domain.Window,
) (domain.Page[domain.Subscription], error) {
	m.Calls.Subscriptions = append(m.Calls.Subscriptions, struct {
		UserId       int
		RecipesLimit int
		Window       domain.Window
	}{UserId: userId, RecipesLimit: recipesLimit, Window: window})
	if m.Impl.Subscriptions != nil {
		return m.Impl.Subscriptions(ctx, userId, recipesLimit, window)
	}

	panic(errors.New("it should not be called"))
}

func (m *UserInterface) FindFollows(ctx context.Context, search string) ([]domain.Follow, error) {
	m.Calls.FindFollows = append(m.Calls.FindFollows, search)
	if m.Impl.FindFollows != nil {
		return m.Impl.FindFollows(ctx, search)
	}

	panic(errors.New("it should not be called"))
}
