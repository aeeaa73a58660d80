package mock

import (
	"context"
	"errors"
	"time"

	"github.com/foodgram-dev/foodgram/pkg/domain"
	dbmock "github.com/foodgram-dev/foodgram/pkg/domain/internal/db/mock"
	kdb "github.com/foodgram-dev/foodgram/pkg/domain/token/db"
)

type TokenInterface struct {
	Impl struct {
		New           func(ctx context.Context, token domain.Token) error
		Get           func(ctx context.Context, id string) (domain.Token, error)
		Delete        func(ctx context.Context, id string) error
		DeleteExpired func(ctx context.Context, now time.Time) (int, error)
	}

	Calls struct {
		New           dbmock.CallLog[domain.Token]
		Get           dbmock.CallLog[string]
		Delete        dbmock.CallLog[string]
		DeleteExpired dbmock.CallLog[time.Time]
	}
}

func NewTokenInterface() *TokenInterface {
	return &TokenInterface{}
}

var _ kdb.Interface = &TokenInterface{}

func (m *TokenInterface) New(ctx context.Context, token domain.Token) error {
	m.Calls.New = append(m.Calls.New, token)
	if m.Impl.New != nil {
		return m.Impl.New(ctx, token)
	}

	panic(errors.New("it should not be called"))
}

func (m *TokenInterface) Get(ctx context.Context, id string) (domain.Token, error) {
	m.Calls.Get = append(m.Calls.Get, id)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, id)
	}

	panic(errors.New("it should not be called"))
}

func (m *TokenInterface) Delete(ctx context.Context, id string) error {
	m.Calls.Delete = append(m.Calls.Delete, id)
	if m.Impl.Delete != nil {
		return m.Impl.Delete(ctx, id)
	}

	panic(errors.New("it should not be called"))
}

func (m *TokenInterface) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	m.Calls.DeleteExpired = append(m.Calls.DeleteExpired, now)
	if m.Impl.DeleteExpired != nil {
		return m.Impl.DeleteExpired(ctx, now)
	}

	panic(errors.New("it should not be called"))
}
