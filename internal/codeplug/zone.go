package codeplug

// Zone groups channels for selection with the channel knob. Radios with two
// VFOs keep a separate member list per side, an empty side is simply not
// programmed.
type Zone struct {
	entityBase
	name string
	a    *List[Channel]
	b    *List[Channel]
}

// NewZone creates an empty zone.
func NewZone(name string) (*Zone, error) {
	z := &Zone{}
	z.a = newList[Channel](memberOf[Channel](&z.entityBase))
	z.b = newList[Channel](memberOf[Channel](&z.entityBase))
	if err := z.SetName(name); err != nil {
		return nil, err
	}
	return z, nil
}

// Name returns the zone name.
func (z *Zone) Name() string { return z.name }

// SetName renames the zone. The name must not be empty.
func (z *Zone) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	z.name = name
	return nil
}

// A returns the channel members of VFO A.
func (z *Zone) A() *List[Channel] { return z.a }

// B returns the channel members of VFO B.
func (z *Zone) B() *List[Channel] { return z.b }

func (z *Zone) clearRefs() {
	z.a.Clear()
	z.b.Clear()
}

// ZoneList is the ordered container of all zones of a configuration.
type ZoneList struct {
	List[*Zone]
}

func newZoneList(cfg *Config) *ZoneList {
	return &ZoneList{List: *newList[*Zone](ownedBy[*Zone](cfg))}
}

// Zone returns the zone at the given position or nil.
func (l *ZoneList) Zone(i int) *Zone { return l.At(i) }
