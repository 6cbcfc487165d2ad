package codeplug

// RXGroupList is an ordered set of digital contacts a channel listens to.
// Group and all-call semantics are expected but not enforced at this layer.
type RXGroupList struct {
	entityBase
	name     string
	contacts *List[*DigitalContact]
}

// NewRXGroupList creates an empty receive group list.
func NewRXGroupList(name string) (*RXGroupList, error) {
	l := &RXGroupList{}
	l.contacts = newList[*DigitalContact](memberOf[*DigitalContact](&l.entityBase))
	if err := l.SetName(name); err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the group list name.
func (l *RXGroupList) Name() string { return l.name }

// SetName renames the group list. The name must not be empty.
func (l *RXGroupList) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	l.name = name
	return nil
}

// Contacts returns the member contact list.
func (l *RXGroupList) Contacts() *List[*DigitalContact] { return l.contacts }

// AddContact appends a contact and returns its position, or -1 if the
// contact already is a member or belongs to another configuration.
func (l *RXGroupList) AddContact(c *DigitalContact) int { return l.contacts.Add(c) }

func (l *RXGroupList) clearRefs() { l.contacts.Clear() }

// RXGroupLists is the ordered container of all receive group lists of a
// configuration.
type RXGroupLists struct {
	List[*RXGroupList]
}

func newRXGroupLists(cfg *Config) *RXGroupLists {
	return &RXGroupLists{List: *newList[*RXGroupList](ownedBy[*RXGroupList](cfg))}
}

// GroupList returns the group list at the given position or nil.
func (l *RXGroupLists) GroupList(i int) *RXGroupList { return l.At(i) }
