package codeplug

// Power is the transmit power setting of a channel.
type Power int

const (
	MinPower Power = iota // lowest setting (< 1W if available)
	LowPower              // e.g. 1W
	MidPower              // e.g. 2W
	HighPower             // e.g. 5W
	MaxPower              // highest setting (> 5W if available)
)

// AnalogAdmit is the transmit admit criterion of an analog channel.
type AnalogAdmit int

const (
	AnalogAdmitNone AnalogAdmit = iota // transmit any time
	AnalogAdmitFree                    // transmit only if channel is free
	AnalogAdmitTone                    // transmit only if admit tone present
)

// DigitalAdmit is the transmit admit criterion of a digital channel.
type DigitalAdmit int

const (
	DigitalAdmitNone      DigitalAdmit = iota // transmit any time
	DigitalAdmitFree                          // transmit only if channel is free
	DigitalAdmitColorCode                     // free and matching color code
)

// Bandwidth of an analog channel.
type Bandwidth int

const (
	BWNarrow Bandwidth = iota // 12.5 kHz
	BWWide                    // 25 kHz
)

// TimeSlot of a digital (DMR) channel.
type TimeSlot int

const (
	TimeSlot1 TimeSlot = 1
	TimeSlot2 TimeSlot = 2
)

// Channel is either an AnalogChannel or a DigitalChannel. The set of
// variants is closed, consumers dispatch with a type switch.
type Channel interface {
	Entity
	Name() string
	RXFrequency() float64
	TXFrequency() float64
	Power() Power
	TXTimeout() uint
	RXOnly() bool
	ScanList() *ScanList

	isChannel()
}

// channelBase holds the settings shared by analog and digital channels.
type channelBase struct {
	entityBase
	name      string
	rxFreq    float64
	txFreq    float64
	power     Power
	txTimeout uint
	rxOnly    bool
	scanList  Ref[*ScanList]
}

func (c *channelBase) isChannel() {}

// Name returns the channel name.
func (c *channelBase) Name() string { return c.name }

// SetName renames the channel. The name must not be empty.
func (c *channelBase) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	c.name = name
	return nil
}

// RXFrequency returns the receive frequency in MHz.
func (c *channelBase) RXFrequency() float64 { return c.rxFreq }

// SetRXFrequency sets the receive frequency in MHz.
func (c *channelBase) SetRXFrequency(freq float64) error {
	if freq <= 0 {
		return validationErr("rx frequency", "must be positive, got %g", freq)
	}
	c.rxFreq = freq
	return nil
}

// TXFrequency returns the transmit frequency in MHz.
func (c *channelBase) TXFrequency() float64 { return c.txFreq }

// SetTXFrequency sets the transmit frequency in MHz.
func (c *channelBase) SetTXFrequency(freq float64) error {
	if freq <= 0 {
		return validationErr("tx frequency", "must be positive, got %g", freq)
	}
	c.txFreq = freq
	return nil
}

// Power returns the transmit power setting.
func (c *channelBase) Power() Power { return c.power }

// SetPower sets the transmit power setting.
func (c *channelBase) SetPower(p Power) error {
	if p < MinPower || p > MaxPower {
		return validationErr("power", "unknown power setting %d", p)
	}
	c.power = p
	return nil
}

// TXTimeout returns the transmit timeout in seconds, 0 means disabled.
func (c *channelBase) TXTimeout() uint { return c.txTimeout }

// SetTXTimeout sets the transmit timeout in seconds, 0 disables it.
func (c *channelBase) SetTXTimeout(seconds uint) {
	c.txTimeout = seconds
}

// RXOnly reports whether transmitting on the channel is disabled.
func (c *channelBase) RXOnly() bool { return c.rxOnly }

// SetRXOnly enables or disables transmitting on the channel.
func (c *channelBase) SetRXOnly(enable bool) { c.rxOnly = enable }

// ScanList returns the default scan list of the channel or nil.
func (c *channelBase) ScanList() *ScanList { return c.scanList.Get() }

// SetScanList sets the default scan list, nil clears it. Deleting the scan
// list later clears the reference automatically.
func (c *channelBase) SetScanList(list *ScanList) error {
	if list == nil {
		c.scanList.Clear()
		return nil
	}
	if err := c.sameGraph(list); err != nil {
		return err
	}
	c.scanList.Set(list)
	return nil
}

// AnalogChannel is an FM channel with admit criterion, squelch, CTCSS/DCS
// tones and bandwidth settings.
type AnalogChannel struct {
	channelBase
	admit   AnalogAdmit
	squelch uint
	rxTone  float64
	txTone  float64
	bw      Bandwidth
	aprs    Ref[*APRSSystem]
}

// NewAnalogChannel creates an analog channel with default power, squelch
// and bandwidth settings.
func NewAnalogChannel(name string, rxFreq, txFreq float64) (*AnalogChannel, error) {
	ch := &AnalogChannel{squelch: 1, bw: BWNarrow}
	ch.power = HighPower
	if err := ch.SetName(name); err != nil {
		return nil, err
	}
	if err := ch.SetRXFrequency(rxFreq); err != nil {
		return nil, err
	}
	if err := ch.SetTXFrequency(txFreq); err != nil {
		return nil, err
	}
	return ch, nil
}

// Admit returns the admit criterion.
func (c *AnalogChannel) Admit() AnalogAdmit { return c.admit }

// SetAdmit sets the admit criterion.
func (c *AnalogChannel) SetAdmit(admit AnalogAdmit) { c.admit = admit }

// Squelch returns the squelch level [0,10].
func (c *AnalogChannel) Squelch() uint { return c.squelch }

// SetSquelch sets the squelch level [0,10], 0 disables squelch.
func (c *AnalogChannel) SetSquelch(level uint) error {
	if level > 10 {
		return validationErr("squelch", "level must be within [0,10], got %d", level)
	}
	c.squelch = level
	return nil
}

// RXTone returns the CTCSS/DCS receive code, 0 means disabled.
func (c *AnalogChannel) RXTone() float64 { return c.rxTone }

// SetRXTone sets the CTCSS/DCS receive code, 0 disables it.
func (c *AnalogChannel) SetRXTone(code float64) error {
	if code < 0 {
		return validationErr("rx tone", "code must not be negative, got %g", code)
	}
	c.rxTone = code
	return nil
}

// TXTone returns the CTCSS/DCS transmit code, 0 means disabled.
func (c *AnalogChannel) TXTone() float64 { return c.txTone }

// SetTXTone sets the CTCSS/DCS transmit code, 0 disables it.
func (c *AnalogChannel) SetTXTone(code float64) error {
	if code < 0 {
		return validationErr("tx tone", "code must not be negative, got %g", code)
	}
	c.txTone = code
	return nil
}

// Bandwidth returns the channel bandwidth.
func (c *AnalogChannel) Bandwidth() Bandwidth { return c.bw }

// SetBandwidth sets the channel bandwidth.
func (c *AnalogChannel) SetBandwidth(bw Bandwidth) { c.bw = bw }

// APRSSystem returns the APRS system of the channel or nil.
func (c *AnalogChannel) APRSSystem() *APRSSystem { return c.aprs.Get() }

// SetAPRSSystem sets the APRS system, nil disables APRS on this channel.
func (c *AnalogChannel) SetAPRSSystem(sys *APRSSystem) error {
	if sys == nil {
		c.aprs.Clear()
		return nil
	}
	if err := c.sameGraph(sys); err != nil {
		return err
	}
	c.aprs.Set(sys)
	return nil
}

// DigitalChannel is a DMR channel with color code, time slot, RX group list
// and default transmit contact.
type DigitalChannel struct {
	channelBase
	admit     DigitalAdmit
	colorCode uint
	timeSlot  TimeSlot
	rxGroup   Ref[*RXGroupList]
	txContact Ref[*DigitalContact]
	posSystem Ref[*GPSSystem]
	roaming   Ref[*RoamingZone]
	radioID   Ref[*RadioID]
}

// NewDigitalChannel creates a digital channel. A receive group list is
// required.
func NewDigitalChannel(name string, rxFreq, txFreq float64, rxGroup *RXGroupList) (*DigitalChannel, error) {
	if rxGroup == nil {
		return nil, validationErr("rx group list", "digital channels require a receive group list")
	}
	ch := &DigitalChannel{colorCode: 1, timeSlot: TimeSlot1}
	ch.power = HighPower
	if err := ch.SetName(name); err != nil {
		return nil, err
	}
	if err := ch.SetRXFrequency(rxFreq); err != nil {
		return nil, err
	}
	if err := ch.SetTXFrequency(txFreq); err != nil {
		return nil, err
	}
	ch.rxGroup.Set(rxGroup)
	return ch, nil
}

// Admit returns the admit criterion.
func (c *DigitalChannel) Admit() DigitalAdmit { return c.admit }

// SetAdmit sets the admit criterion.
func (c *DigitalChannel) SetAdmit(admit DigitalAdmit) { c.admit = admit }

// ColorCode returns the color code [0,15].
func (c *DigitalChannel) ColorCode() uint { return c.colorCode }

// SetColorCode sets the color code [0,15].
func (c *DigitalChannel) SetColorCode(cc uint) error {
	if cc > 15 {
		return validationErr("color code", "must be within [0,15], got %d", cc)
	}
	c.colorCode = cc
	return nil
}

// TimeSlot returns the repeater time slot.
func (c *DigitalChannel) TimeSlot() TimeSlot { return c.timeSlot }

// SetTimeSlot sets the repeater time slot.
func (c *DigitalChannel) SetTimeSlot(ts TimeSlot) error {
	if ts != TimeSlot1 && ts != TimeSlot2 {
		return validationErr("time slot", "must be 1 or 2, got %d", ts)
	}
	c.timeSlot = ts
	return nil
}

// RXGroupList returns the receive group list. It may be nil if the group
// list has been deleted from the configuration since.
func (c *DigitalChannel) RXGroupList() *RXGroupList { return c.rxGroup.Get() }

// SetRXGroupList sets the receive group list, it must not be nil.
func (c *DigitalChannel) SetRXGroupList(list *RXGroupList) error {
	if list == nil {
		return validationErr("rx group list", "digital channels require a receive group list")
	}
	if err := c.sameGraph(list); err != nil {
		return err
	}
	c.rxGroup.Set(list)
	return nil
}

// TXContact returns the default transmit contact or nil.
func (c *DigitalChannel) TXContact() *DigitalContact { return c.txContact.Get() }

// SetTXContact sets the default transmit contact, nil clears it.
func (c *DigitalChannel) SetTXContact(contact *DigitalContact) error {
	if contact == nil {
		c.txContact.Clear()
		return nil
	}
	if err := c.sameGraph(contact); err != nil {
		return err
	}
	c.txContact.Set(contact)
	return nil
}

// GPSSystem returns the positioning system of the channel or nil.
func (c *DigitalChannel) GPSSystem() *GPSSystem { return c.posSystem.Get() }

// SetGPSSystem sets the positioning system, nil disables it.
func (c *DigitalChannel) SetGPSSystem(sys *GPSSystem) error {
	if sys == nil {
		c.posSystem.Clear()
		return nil
	}
	if err := c.sameGraph(sys); err != nil {
		return err
	}
	c.posSystem.Set(sys)
	return nil
}

// RoamingZone returns the roaming zone of the channel or nil.
func (c *DigitalChannel) RoamingZone() *RoamingZone { return c.roaming.Get() }

// SetRoamingZone sets the roaming zone, nil disables roaming.
func (c *DigitalChannel) SetRoamingZone(zone *RoamingZone) error {
	if zone == nil {
		c.roaming.Clear()
		return nil
	}
	if err := c.sameGraph(zone); err != nil {
		return err
	}
	c.roaming.Set(zone)
	return nil
}

// RadioID returns the radio ID override of the channel, nil means the
// default ID is used.
func (c *DigitalChannel) RadioID() *RadioID { return c.radioID.Get() }

// SetRadioID sets the radio ID override, nil selects the default ID.
func (c *DigitalChannel) SetRadioID(id *RadioID) error {
	if id == nil {
		c.radioID.Clear()
		return nil
	}
	if err := c.sameGraph(id); err != nil {
		return err
	}
	c.radioID.Set(id)
	return nil
}

func (c *DigitalChannel) clearRefs() {
	c.scanList.Clear()
	c.rxGroup.Clear()
	c.txContact.Clear()
	c.posSystem.Clear()
	c.roaming.Clear()
	c.radioID.Clear()
}

func (c *AnalogChannel) clearRefs() {
	c.scanList.Clear()
	c.aprs.Clear()
}

// ChannelList is the ordered container of all channels of a configuration.
type ChannelList struct {
	List[Channel]
}

func newChannelList(cfg *Config) *ChannelList {
	return &ChannelList{List: *newList[Channel](ownedBy[Channel](cfg))}
}

// Channel returns the channel at the given position or nil.
func (l *ChannelList) Channel(i int) Channel { return l.At(i) }

// FindDigitalChannel returns the digital channel matching the given RX/TX
// frequencies, time slot and color code, or nil if there is none.
func (l *ChannelList) FindDigitalChannel(rxFreq, txFreq float64, ts TimeSlot, colorCode uint) *DigitalChannel {
	for i := 0; i < l.Count(); i++ {
		digi, ok := l.At(i).(*DigitalChannel)
		if !ok {
			continue
		}
		if digi.RXFrequency() == rxFreq && digi.TXFrequency() == txFreq &&
			digi.TimeSlot() == ts && digi.ColorCode() == colorCode {
			return digi
		}
	}
	return nil
}

// FindAnalogChannelByTXFreq returns the first analog channel transmitting
// on the given frequency, or nil.
func (l *ChannelList) FindAnalogChannelByTXFreq(freq float64) *AnalogChannel {
	for i := 0; i < l.Count(); i++ {
		analog, ok := l.At(i).(*AnalogChannel)
		if !ok {
			continue
		}
		if analog.TXFrequency() == freq {
			return analog
		}
	}
	return nil
}
