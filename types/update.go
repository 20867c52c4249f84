package types

// Update is an optional field write: when IsSome is false the current value
// is kept.
type Update[T any] struct {
	IsSome bool `json:"isSome"`
	Value  T    `json:"value"`
}

func Set[T any](v T) Update[T] {
	return Update[T]{IsSome: true, Value: v}
}

func Keep[T any]() Update[T] {
	return Update[T]{}
}

// Or returns the new value when set, current otherwise.
func (u Update[T]) Or(current T) T {
	if u.IsSome {
		return u.Value
	}
	return current
}
