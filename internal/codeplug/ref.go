package codeplug

// graph identifies the configuration an entity belongs to. Only *Config
// implements it. Entities track their owner through this indirection, a
// direct *Config in the Entity method set would tie the entity types and
// the generic list containers into one recursive type.
type graph interface {
	isGraph()
}

// Entity is implemented by every configuration object that can be owned by a
// Config and be the target of a weak reference.
type Entity interface {
	refs() *refRegistry
	owner() graph
	setOwner(g graph)
	// clearRefs releases all outgoing references and memberships held by
	// the entity. Called when the entity is removed from its Config.
	clearRefs()
}

// entityBase holds the bookkeeping shared by all configuration entities.
type entityBase struct {
	registry refRegistry
	config   graph
}

func (e *entityBase) refs() *refRegistry { return &e.registry }
func (e *entityBase) owner() graph       { return e.config }
func (e *entityBase) setOwner(g graph)   { e.config = g }
func (e *entityBase) clearRefs()         {}

// sameGraph checks that a referenced entity belongs to the same Config as
// the holder. Entities that have not been added to a Config yet are not
// checked, the reference is validated again once ownership is known.
func (e *entityBase) sameGraph(target Entity) error {
	if e.config == nil || target.owner() == nil {
		return nil
	}
	if e.config != target.owner() {
		return ErrNotInGraph
	}
	return nil
}

type refHandler struct {
	id int
	fn func()
}

// refRegistry tracks every weak reference pointing at an entity. Deletion of
// the entity notifies all holders synchronously, the deleting flag keeps a
// re-entrant delete from cycling.
type refRegistry struct {
	nextID   int
	handlers []refHandler
	deleting bool
}

func (r *refRegistry) subscribe(fn func()) int {
	r.nextID++
	r.handlers = append(r.handlers, refHandler{id: r.nextID, fn: fn})
	return r.nextID
}

func (r *refRegistry) unsubscribe(id int) {
	for i, h := range r.handlers {
		if h.id == id {
			r.handlers = append(r.handlers[:i], r.handlers[i+1:]...)
			return
		}
	}
}

// notifyDeleted invokes every registered handler exactly once. Handlers may
// unsubscribe other handlers (or trigger further deletions) while the
// notification runs.
func (r *refRegistry) notifyDeleted() {
	if r.deleting {
		return
	}
	r.deleting = true
	snapshot := make([]refHandler, len(r.handlers))
	copy(snapshot, r.handlers)
	for _, h := range snapshot {
		h.fn()
	}
	r.handlers = nil
	r.deleting = false
}

// Ref is a weak reference to a single entity. Holding a Ref does not keep
// the target alive: when the target is deleted from the configuration the
// Ref clears itself before the delete call returns.
type Ref[T Entity] struct {
	target  T
	valid   bool
	handle  int
	onClear func()
}

// Set points the reference at target. Any previous target is released first.
func (r *Ref[T]) Set(target T) {
	r.Clear()
	r.target = target
	r.valid = true
	r.handle = target.refs().subscribe(func() {
		var zero T
		r.target = zero
		r.valid = false
		if r.onClear != nil {
			r.onClear()
		}
	})
}

// Clear releases the reference without touching the target.
func (r *Ref[T]) Clear() {
	if !r.valid {
		return
	}
	r.target.refs().unsubscribe(r.handle)
	var zero T
	r.target = zero
	r.valid = false
}

// Get returns the referenced entity or the zero value if unset.
func (r *Ref[T]) Get() T { return r.target }

// IsSet reports whether the reference currently points at an entity.
func (r *Ref[T]) IsSet() bool { return r.valid }

type selectorMode int

const (
	selectorNone selectorMode = iota
	selectorSelected
	selectorChannel
)

// ChannelSelector is a channel slot that may designate a fixed channel, the
// radio's currently selected channel, or nothing at all. Scan lists use it
// for their priority and designated transmit channels.
type ChannelSelector struct {
	mode selectorMode
	ref  Ref[Channel]
}

// SetNone clears the slot.
func (s *ChannelSelector) SetNone() {
	s.ref.Clear()
	s.mode = selectorNone
}

// SetSelected designates the currently selected channel.
func (s *ChannelSelector) SetSelected() {
	s.ref.Clear()
	s.mode = selectorSelected
}

// SetChannel designates a fixed channel. Deleting that channel later resets
// the slot to none.
func (s *ChannelSelector) SetChannel(ch Channel) {
	s.ref.onClear = func() { s.mode = selectorNone }
	s.ref.Set(ch)
	s.mode = selectorChannel
}

// IsNone reports whether the slot is empty.
func (s *ChannelSelector) IsNone() bool { return s.mode == selectorNone }

// IsSelected reports whether the slot designates the selected channel.
func (s *ChannelSelector) IsSelected() bool { return s.mode == selectorSelected }

// Channel returns the fixed channel or nil.
func (s *ChannelSelector) Channel() Channel {
	if s.mode != selectorChannel {
		return nil
	}
	return s.ref.Get()
}
