package codeplug

// RoamingZone is an ordered set of digital channels the radio may switch
// between to stay in contact with a repeater network.
type RoamingZone struct {
	entityBase
	name     string
	channels *List[*DigitalChannel]
}

// NewRoamingZone creates an empty roaming zone.
func NewRoamingZone(name string) (*RoamingZone, error) {
	z := &RoamingZone{}
	z.channels = newList[*DigitalChannel](memberOf[*DigitalChannel](&z.entityBase))
	if err := z.SetName(name); err != nil {
		return nil, err
	}
	return z, nil
}

// Name returns the zone name.
func (z *RoamingZone) Name() string { return z.name }

// SetName renames the zone. The name must not be empty.
func (z *RoamingZone) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	z.name = name
	return nil
}

// Channels returns the member channel list.
func (z *RoamingZone) Channels() *List[*DigitalChannel] { return z.channels }

// AddChannel appends a channel and returns its position, or -1 if the
// channel already is a member or belongs to another configuration.
func (z *RoamingZone) AddChannel(ch *DigitalChannel) int { return z.channels.Add(ch) }

func (z *RoamingZone) clearRefs() { z.channels.Clear() }

// RoamingZoneList is the ordered container of all roaming zones of a
// configuration.
type RoamingZoneList struct {
	List[*RoamingZone]
}

func newRoamingZoneList(cfg *Config) *RoamingZoneList {
	return &RoamingZoneList{List: *newList[*RoamingZone](ownedBy[*RoamingZone](cfg))}
}

// Zone returns the roaming zone at the given position or nil.
func (l *RoamingZoneList) Zone(i int) *RoamingZone { return l.At(i) }
