package processor

// Consumer accumulates mapped results across loop iterations in
// iteration order. One consumer is created per Process call, owned
// exclusively by it, and handed back as the final result.
type Consumer[T any] struct {
	items []T
}

// NewConsumer creates an empty consumer.
func NewConsumer[T any]() *Consumer[T] {
	return &Consumer[T]{}
}

// Append adds one mapped result.
func (c *Consumer[T]) Append(v T) {
	c.items = append(c.items, v)
}

// Merge appends every item of other, preserving its order.
func (c *Consumer[T]) Merge(other *Consumer[T]) {
	if other == nil {
		return
	}
	c.items = append(c.items, other.items...)
}

// Items is the terminal extraction: the accumulated results in
// insertion order.
func (c *Consumer[T]) Items() []T {
	return c.items
}

// Len returns the number of accumulated results.
func (c *Consumer[T]) Len() int {
	return len(c.items)
}

// First returns the first result, if any. Convenient for single-pass
// (non-countable) runs that produce exactly one item.
func (c *Consumer[T]) First() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[0], true
}

// Collect merges N consumers into one, order-preserving and without
// deduplication.
func Collect[T any](consumers ...*Consumer[T]) *Consumer[T] {
	merged := NewConsumer[T]()
	for _, c := range consumers {
		merged.Merge(c)
	}
	return merged
}
