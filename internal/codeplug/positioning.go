package codeplug

// GPSSystem periodically reports the radio's position to a destination
// contact over DMR.
type GPSSystem struct {
	entityBase
	name    string
	contact Ref[*DigitalContact]
	period  uint
	revert  Ref[*DigitalChannel]
}

// NewGPSSystem creates a positioning system reporting to the given contact.
func NewGPSSystem(name string, contact *DigitalContact, period uint) (*GPSSystem, error) {
	s := &GPSSystem{period: period}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, validationErr("destination", "GPS systems require a destination contact")
	}
	s.contact.Set(contact)
	return s, nil
}

// Name returns the system name.
func (s *GPSSystem) Name() string { return s.name }

// SetName renames the system. The name must not be empty.
func (s *GPSSystem) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	s.name = name
	return nil
}

// Contact returns the destination contact. It may be nil if the contact has
// been deleted from the configuration since.
func (s *GPSSystem) Contact() *DigitalContact { return s.contact.Get() }

// SetContact sets the destination contact, it must not be nil.
func (s *GPSSystem) SetContact(contact *DigitalContact) error {
	if contact == nil {
		return validationErr("destination", "GPS systems require a destination contact")
	}
	if err := s.sameGraph(contact); err != nil {
		return err
	}
	s.contact.Set(contact)
	return nil
}

// Period returns the update period in seconds.
func (s *GPSSystem) Period() uint { return s.period }

// SetPeriod sets the update period in seconds.
func (s *GPSSystem) SetPeriod(seconds uint) { s.period = seconds }

// RevertChannel returns the channel used to send position reports, nil
// means the current channel is used.
func (s *GPSSystem) RevertChannel() *DigitalChannel { return s.revert.Get() }

// SetRevertChannel sets the report channel, nil selects the current one.
func (s *GPSSystem) SetRevertChannel(ch *DigitalChannel) error {
	if ch == nil {
		s.revert.Clear()
		return nil
	}
	if err := s.sameGraph(ch); err != nil {
		return err
	}
	s.revert.Set(ch)
	return nil
}

func (s *GPSSystem) clearRefs() {
	s.contact.Clear()
	s.revert.Clear()
}

// GPSSystemList is the ordered container of all positioning systems of a
// configuration.
type GPSSystemList struct {
	List[*GPSSystem]
}

func newGPSSystemList(cfg *Config) *GPSSystemList {
	return &GPSSystemList{List: *newList[*GPSSystem](ownedBy[*GPSSystem](cfg))}
}

// GPSSystem returns the system at the given position or nil.
func (l *GPSSystemList) GPSSystem(i int) *GPSSystem { return l.At(i) }

// APRSSystem periodically reports the radio's position as an analog APRS
// beacon on a fixed analog channel.
type APRSSystem struct {
	entityBase
	name     string
	channel  Ref[*AnalogChannel]
	source   string
	srcSSID  uint
	dest     string
	destSSID uint
	path     string
	period   uint
	message  string
}

// NewAPRSSystem creates an APRS system transmitting on the given channel.
func NewAPRSSystem(name string, channel *AnalogChannel, source string, srcSSID uint, dest string, destSSID uint, period uint) (*APRSSystem, error) {
	s := &APRSSystem{source: source, srcSSID: srcSSID, dest: dest, destSSID: destSSID, period: period}
	if err := s.SetName(name); err != nil {
		return nil, err
	}
	if channel != nil {
		s.channel.Set(channel)
	}
	return s, nil
}

// Name returns the system name.
func (s *APRSSystem) Name() string { return s.name }

// SetName renames the system. The name must not be empty.
func (s *APRSSystem) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	s.name = name
	return nil
}

// Channel returns the analog transmit channel or nil.
func (s *APRSSystem) Channel() *AnalogChannel { return s.channel.Get() }

// SetChannel sets the analog transmit channel.
func (s *APRSSystem) SetChannel(ch *AnalogChannel) error {
	if ch == nil {
		s.channel.Clear()
		return nil
	}
	if err := s.sameGraph(ch); err != nil {
		return err
	}
	s.channel.Set(ch)
	return nil
}

// Source returns the source call of the beacon.
func (s *APRSSystem) Source() string { return s.source }

// SourceSSID returns the source SSID of the beacon.
func (s *APRSSystem) SourceSSID() uint { return s.srcSSID }

// Destination returns the destination call of the beacon.
func (s *APRSSystem) Destination() string { return s.dest }

// DestinationSSID returns the destination SSID of the beacon.
func (s *APRSSystem) DestinationSSID() uint { return s.destSSID }

// Path returns the digipeater path of the beacon, for example "WIDE1-1".
func (s *APRSSystem) Path() string { return s.path }

// SetPath sets the digipeater path of the beacon.
func (s *APRSSystem) SetPath(path string) { s.path = path }

// Period returns the beacon period in seconds.
func (s *APRSSystem) Period() uint { return s.period }

// SetPeriod sets the beacon period in seconds.
func (s *APRSSystem) SetPeriod(seconds uint) { s.period = seconds }

// Message returns the optional beacon message text.
func (s *APRSSystem) Message() string { return s.message }

// SetMessage sets the optional beacon message text.
func (s *APRSSystem) SetMessage(msg string) { s.message = msg }

func (s *APRSSystem) clearRefs() { s.channel.Clear() }

// APRSSystemList is the ordered container of all APRS systems of a
// configuration.
type APRSSystemList struct {
	List[*APRSSystem]
}

func newAPRSSystemList(cfg *Config) *APRSSystemList {
	return &APRSSystemList{List: *newList[*APRSSystem](ownedBy[*APRSSystem](cfg))}
}

// APRSSystem returns the system at the given position or nil.
func (l *APRSSystemList) APRSSystem(i int) *APRSSystem { return l.At(i) }
