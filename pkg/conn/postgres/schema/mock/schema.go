package mock

import (
	"context"
	"errors"

	kschema "github.com/foodgram-dev/foodgram/pkg/conn/postgres/schema"
)

type SchemaInterface struct {
	Impl struct {
		Version func(ctx context.Context) (int, error)
		Upgrade func(ctx context.Context) error
		Context func(ctx context.Context) (context.Context, context.CancelFunc)
	}

	Calls struct {
		Version int
		Upgrade int
	}
}

func NewSchemaInterface() *SchemaInterface {
	return &SchemaInterface{}
}

var _ kschema.Interface = &SchemaInterface{}

func (m *SchemaInterface) Version(ctx context.Context) (int, error) {
	m.Calls.Version += 1
	if m.Impl.Version != nil {
		return m.Impl.Version(ctx)
	}

	panic(errors.New("it should not be called"))
}

func (m *SchemaInterface) Upgrade(ctx context.Context) error {
	m.Calls.Upgrade += 1
	if m.Impl.Upgrade != nil {
		return m.Impl.Upgrade(ctx)
	}

	panic(errors.New("it should not be called"))
}

func (m *SchemaInterface) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.Impl.Context != nil {
		return m.Impl.Context(ctx)
	}

	return ctx, func() {}
}
