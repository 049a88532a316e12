package entity

// Optional models a value that may be absent, such as a wallet account that
// is not connected yet. Consumers must branch on presence explicitly instead
// of comparing against zero values.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// NonEmpty wraps a string, treating the empty string as absent. Unset
// config values stay unset instead of becoming present empty inputs.
func NonEmpty(value string) Optional[string] {
	if value == "" {
		return None[string]()
	}
	return Some(value)
}

// Get returns the contained value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is set.
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the contained value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}
