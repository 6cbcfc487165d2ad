package codeplug

// List is an ordered, insertion-order-preserving sequence of unique
// entities. Positions are stable between mutations and every exporter
// derives its 1-based cross reference numbers from IndexOf, so text and
// binary artifacts always agree with the live editing order.
//
// A List weakly references its members: deleting an entity from the
// configuration removes it from every list that contains it.
type List[T interface {
	Entity
	comparable
}] struct {
	items   []T
	pos     map[T]int
	handles map[T]int
	// onInsert validates or adopts an entity before it becomes a member.
	onInsert func(T) error
}

func newList[T interface {
	Entity
	comparable
}](onInsert func(T) error) *List[T] {
	return &List[T]{
		pos:      make(map[T]int),
		handles:  make(map[T]int),
		onInsert: onInsert,
	}
}

// Count returns the number of members.
func (l *List[T]) Count() int { return len(l.items) }

// At returns the member at the given position or the zero value if the
// position is out of range.
func (l *List[T]) At(i int) T {
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero
	}
	return l.items[i]
}

// IndexOf returns the position of the entity or -1 if it is not a member.
// Callers that require membership must treat -1 as a graph consistency
// violation, absent relationships are expressed by nil references instead.
func (l *List[T]) IndexOf(e T) int {
	if i, ok := l.pos[e]; ok {
		return i
	}
	return -1
}

// Contains reports membership in O(1).
func (l *List[T]) Contains(e T) bool {
	_, ok := l.pos[e]
	return ok
}

// Add appends the entity and returns its position, or -1 if it already is a
// member or was rejected.
func (l *List[T]) Add(e T) int {
	return l.Insert(e, len(l.items))
}

// Insert places the entity at the given position and returns it, or -1 if
// the entity already is a member, the position is out of range, or the
// entity was rejected.
func (l *List[T]) Insert(e T, position int) int {
	if position < 0 || position > len(l.items) {
		return -1
	}
	if _, ok := l.pos[e]; ok {
		return -1
	}
	if l.onInsert != nil {
		if err := l.onInsert(e); err != nil {
			return -1
		}
	}
	l.items = append(l.items, e)
	copy(l.items[position+1:], l.items[position:])
	l.items[position] = e
	for i := position; i < len(l.items); i++ {
		l.pos[l.items[i]] = i
	}
	entity := e
	l.handles[e] = e.refs().subscribe(func() { l.Remove(entity) })
	return position
}

// Remove drops the entity from the list. It reports whether the entity was
// a member.
func (l *List[T]) Remove(e T) bool {
	i, ok := l.pos[e]
	if !ok {
		return false
	}
	e.refs().unsubscribe(l.handles[e])
	delete(l.handles, e)
	delete(l.pos, e)
	l.items = append(l.items[:i], l.items[i+1:]...)
	for ; i < len(l.items); i++ {
		l.pos[l.items[i]] = i
	}
	return true
}

// Clear removes all members.
func (l *List[T]) Clear() {
	for len(l.items) > 0 {
		l.Remove(l.items[len(l.items)-1])
	}
}

// ownedBy adopts entities into a configuration when they are added to one
// of its top level lists.
func ownedBy[T interface {
	Entity
	comparable
}](cfg *Config) func(T) error {
	return func(e T) error {
		if e.owner() != nil && e.owner() != cfg {
			return ErrNotInGraph
		}
		e.setOwner(cfg)
		return nil
	}
}

// memberOf rejects entities that belong to a different configuration than
// the holder of a membership list.
func memberOf[T interface {
	Entity
	comparable
}](holder *entityBase) func(T) error {
	return func(e T) error {
		return holder.sameGraph(e)
	}
}
