package codeplug

// ScanList is an ordered set of channels scanned in sequence, with up to
// two priority channels and a designated transmit channel. Priority and
// transmit slots may also designate the radio's currently selected channel.
type ScanList struct {
	entityBase
	name        string
	channels    *List[Channel]
	priority    ChannelSelector
	secPriority ChannelSelector
	txChannel   ChannelSelector
}

// NewScanList creates an empty scan list. The designated transmit channel
// defaults to the currently selected channel.
func NewScanList(name string) (*ScanList, error) {
	l := &ScanList{}
	l.channels = newList[Channel](memberOf[Channel](&l.entityBase))
	l.txChannel.SetSelected()
	if err := l.SetName(name); err != nil {
		return nil, err
	}
	return l, nil
}

// Name returns the scan list name.
func (l *ScanList) Name() string { return l.name }

// SetName renames the scan list. The name must not be empty.
func (l *ScanList) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	l.name = name
	return nil
}

// Channels returns the member channel list.
func (l *ScanList) Channels() *List[Channel] { return l.channels }

// AddChannel appends a channel to the scan list and returns its position,
// or -1 if the channel already is a member or belongs to another
// configuration.
func (l *ScanList) AddChannel(ch Channel) int { return l.channels.Add(ch) }

// Priority returns the primary priority channel slot (50% of scans).
func (l *ScanList) Priority() *ChannelSelector { return &l.priority }

// SecondaryPriority returns the secondary priority channel slot (25% of
// scans).
func (l *ScanList) SecondaryPriority() *ChannelSelector { return &l.secPriority }

// TXChannel returns the designated transmit channel slot.
func (l *ScanList) TXChannel() *ChannelSelector { return &l.txChannel }

func (l *ScanList) clearRefs() {
	l.channels.Clear()
	l.priority.SetNone()
	l.secPriority.SetNone()
	l.txChannel.SetNone()
}

// ScanListList is the ordered container of all scan lists of a
// configuration.
type ScanListList struct {
	List[*ScanList]
}

func newScanListList(cfg *Config) *ScanListList {
	return &ScanListList{List: *newList[*ScanList](ownedBy[*ScanList](cfg))}
}

// ScanList returns the scan list at the given position or nil.
func (l *ScanListList) ScanList(i int) *ScanList { return l.At(i) }
