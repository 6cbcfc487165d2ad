package codeplug

// RadioID is a DMR identity the radio may transmit with. Digital channels
// can override the default ID with one of these.
type RadioID struct {
	entityBase
	name   string
	number uint32
}

// NewRadioID creates a radio ID.
func NewRadioID(name string, number uint32) (*RadioID, error) {
	id := &RadioID{}
	if err := id.SetName(name); err != nil {
		return nil, err
	}
	if err := id.SetNumber(number); err != nil {
		return nil, err
	}
	return id, nil
}

// Name returns the label of the ID.
func (id *RadioID) Name() string { return id.name }

// SetName renames the ID. The name must not be empty.
func (id *RadioID) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	id.name = name
	return nil
}

// Number returns the DMR ID.
func (id *RadioID) Number() uint32 { return id.number }

// SetNumber sets the DMR ID, a 24 bit number.
func (id *RadioID) SetNumber(number uint32) error {
	if number == 0 || number > maxCallID {
		return validationErr("number", "DMR ID must be within [1,%d], got %d", maxCallID, number)
	}
	id.number = number
	return nil
}

// RadioIDList is the ordered container of all radio IDs of a configuration.
type RadioIDList struct {
	List[*RadioID]
}

func newRadioIDList(cfg *Config) *RadioIDList {
	return &RadioIDList{List: *newList[*RadioID](ownedBy[*RadioID](cfg))}
}

// RadioID returns the ID at the given position or nil.
func (l *RadioIDList) RadioID(i int) *RadioID { return l.At(i) }
