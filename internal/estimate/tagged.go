package estimate

// Source tells whether a value was computed or typed by the user.
type Source string

const (
	Derived Source = "derived"
	Manual  Source = "manual"
)

// Tagged is a value that recomputation may replace only while it is derived.
type Tagged[T ~int | ~float64] struct {
	Source Source `json:"source"`
	Value  T      `json:"value"`
}

func DerivedValue[T ~int | ~float64](v T) Tagged[T] {
	return Tagged[T]{Source: Derived, Value: v}
}

func ManualValue[T ~int | ~float64](v T) Tagged[T] {
	return Tagged[T]{Source: Manual, Value: v}
}

func (t Tagged[T]) IsManual() bool {
	return t.Source == Manual
}

// Refresh replaces the value with derived unless the user set it.
func (t Tagged[T]) Refresh(derived T) Tagged[T] {
	if t.IsManual() {
		return t
	}
	return DerivedValue(derived)
}
