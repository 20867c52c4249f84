package statedb

import "fmt"

// ApplyState threads a value through a sequence of steps. Once a step fails
// the state is Dead and stays Dead, so later steps keep running without the
// value instead of aborting.
type ApplyState[T any] struct {
	alive bool
	value T
}

func Alive[T any](v T) ApplyState[T] {
	return ApplyState[T]{alive: true, value: v}
}

func Dead[T any]() ApplyState[T] {
	return ApplyState[T]{}
}

func (s ApplyState[T]) IsAlive() bool {
	return s.alive
}

// Value returns the value and whether the state is alive.
func (s ApplyState[T]) Value() (T, bool) {
	return s.value, s.alive
}

func (s ApplyState[T]) String() string {
	if !s.alive {
		return "Dead"
	}
	return fmt.Sprintf("Alive(%v)", s.value)
}

// MapApplyState applies fn to a live value; an error kills the state.
func MapApplyState[T, U any](s ApplyState[T], fn func(T) (U, error)) ApplyState[U] {
	if !s.alive {
		return Dead[U]()
	}
	u, err := fn(s.value)
	if err != nil {
		return Dead[U]()
	}
	return Alive(u)
}
