// Package try shortens the (value, error) dance at places where an
// error is terminal anyway, like tests and process startup.
//
//	pool := try.To(pgxpool.Connect(ctx, dsn)).OrFatal(t)
package try

// Fataler is anything with a Fatal method, like *testing.T or
// *log.Logger.
type Fataler interface {
	Fatal(...any)
}

// Either holds a (value, error) pair.
//
// When the error is nil the Either is "ok" and the value is valid.
// Otherwise the value is meaningless.
type Either[T any] interface {
	// Get returns (value, nil) when ok, (zero value, error) otherwise.
	Get() (T, error)

	// OrFatal returns the value when ok.
	//
	// Otherwise it calls ftl.Fatal(err), calling Helper() first when
	// ftl has one (like *testing.T does).
	OrFatal(ftl Fataler) T

	// OrDefault returns the value when ok, the given default otherwise.
	OrDefault(T) T
}

// To wraps a (value, error) pair into an Either.
func To[T any](value T, err error) Either[T] {
	return either[T]{value: value, err: err}
}

type either[T any] struct {
	value T
	err   error
}

func (e either[T]) Get() (T, error) {
	if e.err != nil {
		return *new(T), e.err
	}
	return e.value, nil
}

func (e either[T]) OrDefault(d T) T {
	if e.err != nil {
		return d
	}
	return e.value
}

func (e either[T]) OrFatal(ftl Fataler) T {
	if e.err == nil {
		return e.value
	}

	if h, ok := ftl.(interface{ Helper() }); ok {
		h.Helper()
	}
	ftl.Fatal(e.err)

	return *new(T)
}
