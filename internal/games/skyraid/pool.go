package skyraid

// Pool is an ordered collection of live entities of one type.
// Iteration order is spawn order.
type Pool[T any] struct {
	items []T
}

// Spawn appends an entity.
func (p *Pool[T]) Spawn(v T) {
	p.items = append(p.items, v)
}

// Len returns the number of live entities.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// At returns a pointer to the i-th entity. The pointer is invalidated by
// any call that removes entities.
func (p *Pool[T]) At(i int) *T {
	return &p.items[i]
}

// Each calls fn for every entity in order.
func (p *Pool[T]) Each(fn func(*T)) {
	for i := range p.items {
		fn(&p.items[i])
	}
}

// Retain visits every entity exactly once, in order, and keeps only those
// for which keep returns true. keep may mutate the entity and may touch
// other pools, but must not modify this one.
func (p *Pool[T]) Retain(keep func(*T) bool) {
	active := p.items[:0]
	for i := range p.items {
		if keep(&p.items[i]) {
			active = append(active, p.items[i])
		}
	}
	clear(p.items[len(active):])
	p.items = active
}

// RemoveAt removes the i-th entity, preserving order.
func (p *Pool[T]) RemoveAt(i int) {
	copy(p.items[i:], p.items[i+1:])
	var zero T
	p.items[len(p.items)-1] = zero
	p.items = p.items[:len(p.items)-1]
}

// Clear removes every entity.
func (p *Pool[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}
