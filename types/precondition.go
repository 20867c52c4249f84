package types

// Ordered is the set of counters that support range preconditions.
type Ordered interface {
	~uint32 | ~uint64
}

// EqualsPrecondition requires a value to equal Value when enabled.
// A disabled precondition is always satisfied.
type EqualsPrecondition[T comparable] struct {
	IsEnabled bool `json:"isEnabled"`
	Value     T    `json:"value"`
}

func Equals[T comparable](v T) EqualsPrecondition[T] {
	return EqualsPrecondition[T]{IsEnabled: true, Value: v}
}

func (p EqualsPrecondition[T]) IsSatisfied(x T) bool {
	return !p.IsEnabled || p.Value == x
}

// RangePrecondition requires Lower <= x <= Upper when enabled.
type RangePrecondition[T Ordered] struct {
	IsEnabled bool `json:"isEnabled"`
	Lower     T    `json:"lower"`
	Upper     T    `json:"upper"`
}

func InRange[T Ordered](lower, upper T) RangePrecondition[T] {
	return RangePrecondition[T]{IsEnabled: true, Lower: lower, Upper: upper}
}

// AtLeast is an inclusive range with no upper bound.
func AtLeast[T Ordered](lower T) RangePrecondition[T] {
	return InRange(lower, ^T(0))
}

// AtMost is an inclusive range from zero.
func AtMost[T Ordered](upper T) RangePrecondition[T] {
	return InRange(0, upper)
}

func (p RangePrecondition[T]) IsSatisfied(x T) bool {
	return !p.IsEnabled || (p.Lower <= x && x <= p.Upper)
}
