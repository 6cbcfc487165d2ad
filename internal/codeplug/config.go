package codeplug

// Config is the root of a codeplug configuration. It owns every entity and
// mediates deletion: removing an entity notifies all weak reference holders
// synchronously, so the graph is referentially consistent at every
// observable point.
//
// The graph is not safe for concurrent use. A single editor session (or an
// external lock held for the duration of a mutation or export pass) is
// assumed.
type Config struct {
	id         uint32
	name       string
	introLine1 string
	introLine2 string
	micLevel   uint
	speech     bool

	channels     *ChannelList
	contacts     *ContactList
	zones        *ZoneList
	scanLists    *ScanListList
	rxGroupLists *RXGroupLists
	gpsSystems   *GPSSystemList
	aprsSystems  *APRSSystemList
	roamingZones *RoamingZoneList
	radioIDs     *RadioIDList
}

func (cfg *Config) isGraph() {}

// NewConfig creates an empty configuration.
func NewConfig() *Config {
	cfg := &Config{micLevel: 2}
	cfg.channels = newChannelList(cfg)
	cfg.contacts = newContactList(cfg)
	cfg.zones = newZoneList(cfg)
	cfg.scanLists = newScanListList(cfg)
	cfg.rxGroupLists = newRXGroupLists(cfg)
	cfg.gpsSystems = newGPSSystemList(cfg)
	cfg.aprsSystems = newAPRSSystemList(cfg)
	cfg.roamingZones = newRoamingZoneList(cfg)
	cfg.radioIDs = newRadioIDList(cfg)
	return cfg
}

// ID returns the default DMR ID of the radio.
func (cfg *Config) ID() uint32 { return cfg.id }

// SetID sets the default DMR ID of the radio.
func (cfg *Config) SetID(id uint32) error {
	if id == 0 || id > maxCallID {
		return validationErr("id", "DMR ID must be within [1,%d], got %d", maxCallID, id)
	}
	cfg.id = id
	return nil
}

// Name returns the operator name or call shown by the radio.
func (cfg *Config) Name() string { return cfg.name }

// SetName sets the operator name.
func (cfg *Config) SetName(name string) { cfg.name = name }

// IntroLine1 returns the first power-on display line.
func (cfg *Config) IntroLine1() string { return cfg.introLine1 }

// SetIntroLine1 sets the first power-on display line.
func (cfg *Config) SetIntroLine1(line string) { cfg.introLine1 = line }

// IntroLine2 returns the second power-on display line.
func (cfg *Config) IntroLine2() string { return cfg.introLine2 }

// SetIntroLine2 sets the second power-on display line.
func (cfg *Config) SetIntroLine2(line string) { cfg.introLine2 = line }

// MICLevel returns the microphone amplification [1,10].
func (cfg *Config) MICLevel() uint { return cfg.micLevel }

// SetMICLevel sets the microphone amplification [1,10].
func (cfg *Config) SetMICLevel(level uint) error {
	if level < 1 || level > 10 {
		return validationErr("mic level", "must be within [1,10], got %d", level)
	}
	cfg.micLevel = level
	return nil
}

// Speech reports whether speech synthesis is enabled.
func (cfg *Config) Speech() bool { return cfg.speech }

// SetSpeech enables or disables speech synthesis.
func (cfg *Config) SetSpeech(enable bool) { cfg.speech = enable }

// Channels returns the channel list.
func (cfg *Config) Channels() *ChannelList { return cfg.channels }

// Contacts returns the contact list.
func (cfg *Config) Contacts() *ContactList { return cfg.contacts }

// Zones returns the zone list.
func (cfg *Config) Zones() *ZoneList { return cfg.zones }

// ScanLists returns the scan list container.
func (cfg *Config) ScanLists() *ScanListList { return cfg.scanLists }

// RXGroupLists returns the receive group list container.
func (cfg *Config) RXGroupLists() *RXGroupLists { return cfg.rxGroupLists }

// GPSSystems returns the positioning system list.
func (cfg *Config) GPSSystems() *GPSSystemList { return cfg.gpsSystems }

// APRSSystems returns the APRS system list.
func (cfg *Config) APRSSystems() *APRSSystemList { return cfg.aprsSystems }

// RoamingZones returns the roaming zone list.
func (cfg *Config) RoamingZones() *RoamingZoneList { return cfg.roamingZones }

// RadioIDs returns the radio ID list.
func (cfg *Config) RadioIDs() *RadioIDList { return cfg.radioIDs }

// Delete removes an entity from the configuration. Every weak reference
// holder is notified synchronously before Delete returns: references clear
// themselves and list memberships are removed. Deleting an entity that is
// not owned by this configuration returns ErrNotInGraph.
func (cfg *Config) Delete(e Entity) error {
	if e.owner() != cfg {
		return ErrNotInGraph
	}
	e.refs().notifyDeleted()
	e.clearRefs()
	e.setOwner(nil)
	return nil
}
