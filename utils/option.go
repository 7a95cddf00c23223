package utils

// Option is a value that may be absent. The zero value is absent.
type Option[T any] struct {
	value T
	valid bool
}

func Some[T any](val T) Option[T] {
	return Option[T]{value: val, valid: true}
}

// FromPtr converts a nullable pointer (e.g. an optional JSON field) into an
// Option, copying the pointed-to value.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return Option[T]{}
	}
	return Some(*p)
}

func (o Option[T]) Valid() bool {
	return o.valid
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Or returns the contained value, or fallback when absent.
func (o Option[T]) Or(fallback T) T {
	if o.valid {
		return o.value
	}
	return fallback
}

func (o *Option[T]) Set(val T) {
	o.value = val
	o.valid = true
}

func (o *Option[T]) Clear() {
	var zero T
	o.value = zero
	o.valid = false
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Option[T]) Ptr() *T {
	if !o.valid {
		return nil
	}
	v := o.value
	return &v
}
