package codeplug

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// parseContext collects the entities created during the first pass so that
// cross references can be resolved in the second.
type parseContext struct {
	channels   map[string]Channel
	contacts   map[string]Contact
	groupLists map[string]*RXGroupList
	scanLists  map[string]*ScanList
	gps        map[string]*GPSSystem
	aprs       map[string]*APRSSystem
	roaming    map[string]*RoamingZone
	radioIDs   map[string]*RadioID
}

func newParseContext() *parseContext {
	return &parseContext{
		channels:   make(map[string]Channel),
		contacts:   make(map[string]Contact),
		groupLists: make(map[string]*RXGroupList),
		scanLists:  make(map[string]*ScanList),
		gps:        make(map[string]*GPSSystem),
		aprs:       make(map[string]*APRSSystem),
		roaming:    make(map[string]*RoamingZone),
		radioIDs:   make(map[string]*RadioID),
	}
}

// register adds an entity to one of the identifier maps. Identifiers must
// be unique within their namespace, a duplicate is a parse error rather
// than a silent overwrite.
func register[T any](m map[string]T, id, kind string, v T) error {
	if _, dup := m[id]; dup {
		return fmt.Errorf("%s %q: duplicate identifier", kind, id)
	}
	m[id] = v
	return nil
}

// ReadYAML parses a configuration from its tree persistence form.
func ReadYAML(r io.Reader) (*Config, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return ParseNode(&node)
}

// ParseNode builds a configuration from a parsed tree node.
func ParseNode(node *yaml.Node) (*Config, error) {
	var dto configYAML
	if err := node.Decode(&dto); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := NewConfig()
	ctx := newParseContext()

	if err := cfg.SetID(dto.ID); err != nil {
		return nil, err
	}
	cfg.SetName(dto.Name)
	cfg.SetIntroLine1(dto.IntroLine1)
	cfg.SetIntroLine2(dto.IntroLine2)
	if dto.MICLevel != 0 {
		if err := cfg.SetMICLevel(dto.MICLevel); err != nil {
			return nil, err
		}
	}
	cfg.SetSpeech(dto.Speech)

	// First pass: create all entities. Placeholder group lists keep the
	// digital channel constructor satisfied until references resolve.
	for _, r := range dto.RadioIDs {
		id, err := NewRadioID(r.Name, r.Number)
		if err != nil {
			return nil, fmt.Errorf("radio ID %q: %w", r.ID, err)
		}
		cfg.RadioIDs().Add(id)
		if err := register(ctx.radioIDs, r.ID, "radio ID", id); err != nil {
			return nil, err
		}
	}

	for _, c := range dto.Contacts {
		switch {
		case c.Digital != nil:
			ctype := AllCall
			switch c.Digital.Type {
			case "private":
				ctype = PrivateCall
			case "group":
				ctype = GroupCall
			case "all":
				ctype = AllCall
			default:
				return nil, validationErr("type", "unknown contact type %q", c.Digital.Type)
			}
			contact, err := NewDigitalContact(c.Digital.Name, ctype, c.Digital.Number)
			if err != nil {
				return nil, fmt.Errorf("contact %q: %w", c.Digital.ID, err)
			}
			contact.SetRXTone(c.Digital.RXTone)
			cfg.Contacts().Add(contact)
			if err := register(ctx.contacts, c.Digital.ID, "contact", Contact(contact)); err != nil {
				return nil, err
			}
		case c.DTMF != nil:
			contact, err := NewDTMFContact(c.DTMF.Name, c.DTMF.Number)
			if err != nil {
				return nil, fmt.Errorf("contact %q: %w", c.DTMF.ID, err)
			}
			contact.SetRXTone(c.DTMF.RXTone)
			cfg.Contacts().Add(contact)
			if err := register(ctx.contacts, c.DTMF.ID, "contact", Contact(contact)); err != nil {
				return nil, err
			}
		default:
			return nil, validationErr("contact", "entry is neither dmr nor dtmf")
		}
	}

	for _, g := range dto.GroupLists {
		list, err := NewRXGroupList(g.Name)
		if err != nil {
			return nil, fmt.Errorf("group list %q: %w", g.ID, err)
		}
		cfg.RXGroupLists().Add(list)
		if err := register(ctx.groupLists, g.ID, "group list", list); err != nil {
			return nil, err
		}
		for _, cid := range g.Contacts {
			contact, ok := ctx.contacts[cid].(*DigitalContact)
			if !ok {
				return nil, fmt.Errorf("group list %q: unknown digital contact %q", g.ID, cid)
			}
			if list.AddContact(contact) < 0 {
				return nil, fmt.Errorf("group list %q: cannot add contact %q", g.ID, cid)
			}
		}
	}

	for _, s := range dto.ScanLists {
		list, err := NewScanList(s.Name)
		if err != nil {
			return nil, fmt.Errorf("scan list %q: %w", s.ID, err)
		}
		cfg.ScanLists().Add(list)
		if err := register(ctx.scanLists, s.ID, "scan list", list); err != nil {
			return nil, err
		}
	}

	for _, c := range dto.Channels {
		switch {
		case c.Digital != nil:
			group, ok := ctx.groupLists[c.Digital.GroupList]
			if !ok {
				return nil, fmt.Errorf("channel %q: unknown group list %q", c.Digital.ID, c.Digital.GroupList)
			}
			ch, err := parseDigitalChannel(c.Digital, group, ctx)
			if err != nil {
				return nil, err
			}
			cfg.Channels().Add(ch)
			if err := register(ctx.channels, c.Digital.ID, "channel", Channel(ch)); err != nil {
				return nil, err
			}
		case c.Analog != nil:
			ch, err := parseAnalogChannel(c.Analog)
			if err != nil {
				return nil, err
			}
			cfg.Channels().Add(ch)
			if err := register(ctx.channels, c.Analog.ID, "channel", Channel(ch)); err != nil {
				return nil, err
			}
		default:
			return nil, validationErr("channel", "entry is neither digital nor analog")
		}
	}

	for _, g := range dto.GPS {
		contact, ok := ctx.contacts[g.Contact].(*DigitalContact)
		if !ok {
			return nil, fmt.Errorf("gps system %q: unknown destination contact %q", g.ID, g.Contact)
		}
		sys, err := NewGPSSystem(g.Name, contact, g.Period)
		if err != nil {
			return nil, fmt.Errorf("gps system %q: %w", g.ID, err)
		}
		cfg.GPSSystems().Add(sys)
		if err := register(ctx.gps, g.ID, "gps system", sys); err != nil {
			return nil, err
		}
		if g.Revert != "" {
			revert, ok := ctx.channels[g.Revert].(*DigitalChannel)
			if !ok {
				return nil, fmt.Errorf("gps system %q: unknown revert channel %q", g.ID, g.Revert)
			}
			if err := sys.SetRevertChannel(revert); err != nil {
				return nil, fmt.Errorf("gps system %q: %w", g.ID, err)
			}
		}
	}

	for _, a := range dto.APRS {
		sys, err := NewAPRSSystem(a.Name, nil, a.Source, a.SrcSSID, a.Dest, a.DestSSID, a.Period)
		if err != nil {
			return nil, fmt.Errorf("aprs system %q: %w", a.ID, err)
		}
		sys.SetPath(a.Path)
		sys.SetMessage(a.Message)
		cfg.APRSSystems().Add(sys)
		if err := register(ctx.aprs, a.ID, "aprs system", sys); err != nil {
			return nil, err
		}
		if a.Channel != "" {
			ch, ok := ctx.channels[a.Channel].(*AnalogChannel)
			if !ok {
				return nil, fmt.Errorf("aprs system %q: unknown channel %q", a.ID, a.Channel)
			}
			if err := sys.SetChannel(ch); err != nil {
				return nil, fmt.Errorf("aprs system %q: %w", a.ID, err)
			}
		}
	}

	for _, r := range dto.Roaming {
		zone, err := NewRoamingZone(r.Name)
		if err != nil {
			return nil, fmt.Errorf("roaming zone %q: %w", r.ID, err)
		}
		cfg.RoamingZones().Add(zone)
		if err := register(ctx.roaming, r.ID, "roaming zone", zone); err != nil {
			return nil, err
		}
		for _, cid := range r.Channels {
			ch, ok := ctx.channels[cid].(*DigitalChannel)
			if !ok {
				return nil, fmt.Errorf("roaming zone %q: unknown digital channel %q", r.ID, cid)
			}
			if zone.AddChannel(ch) < 0 {
				return nil, fmt.Errorf("roaming zone %q: cannot add channel %q", r.ID, cid)
			}
		}
	}

	for _, z := range dto.Zones {
		zone, err := NewZone(z.Name)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", z.Name, err)
		}
		cfg.Zones().Add(zone)
		for _, cid := range z.A {
			ch, ok := ctx.channels[cid]
			if !ok {
				return nil, fmt.Errorf("zone %q: unknown channel %q", z.Name, cid)
			}
			zone.A().Add(ch)
		}
		for _, cid := range z.B {
			ch, ok := ctx.channels[cid]
			if !ok {
				return nil, fmt.Errorf("zone %q: unknown channel %q", z.Name, cid)
			}
			zone.B().Add(ch)
		}
	}

	// Second pass: resolve the references that could not be wired while
	// their targets were still being created.
	for _, s := range dto.ScanLists {
		list := ctx.scanLists[s.ID]
		if err := parseSelector(list.Priority(), s.Primary, ctx); err != nil {
			return nil, fmt.Errorf("scan list %q primary: %w", s.ID, err)
		}
		if err := parseSelector(list.SecondaryPriority(), s.Secondary, ctx); err != nil {
			return nil, fmt.Errorf("scan list %q secondary: %w", s.ID, err)
		}
		if err := parseSelector(list.TXChannel(), s.Revert, ctx); err != nil {
			return nil, fmt.Errorf("scan list %q revert: %w", s.ID, err)
		}
		for _, cid := range s.Channels {
			ch, ok := ctx.channels[cid]
			if !ok {
				return nil, fmt.Errorf("scan list %q: unknown channel %q", s.ID, cid)
			}
			list.AddChannel(ch)
		}
	}

	for _, c := range dto.Channels {
		if err := resolveChannelRefs(c, ctx); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseSelector(sel *ChannelSelector, value string, ctx *parseContext) error {
	switch value {
	case "":
		sel.SetNone()
	case selectedTag:
		sel.SetSelected()
	default:
		ch, ok := ctx.channels[value]
		if !ok {
			return fmt.Errorf("unknown channel %q", value)
		}
		sel.SetChannel(ch)
	}
	return nil
}

func parseChannelCommon(dto channelCommonYAML, ch interface {
	SetPower(Power) error
	SetTXTimeout(uint)
	SetRXOnly(bool)
}) error {
	power, err := parsePower(dto.Power)
	if err != nil {
		return err
	}
	if err := ch.SetPower(power); err != nil {
		return err
	}
	ch.SetTXTimeout(dto.Timeout)
	ch.SetRXOnly(dto.RXOnly)
	return nil
}

func parseDigitalChannel(dto *digitalChannelYAML, group *RXGroupList, ctx *parseContext) (*DigitalChannel, error) {
	ch, err := NewDigitalChannel(dto.Name, dto.RXFreq, dto.TXFreq, group)
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	if err := parseChannelCommon(dto.channelCommonYAML, ch); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	switch dto.Admit {
	case "", "always":
		ch.SetAdmit(DigitalAdmitNone)
	case "free":
		ch.SetAdmit(DigitalAdmitFree)
	case "colorCode":
		ch.SetAdmit(DigitalAdmitColorCode)
	default:
		return nil, fmt.Errorf("channel %q: unknown admit criterion %q", dto.ID, dto.Admit)
	}
	if err := ch.SetColorCode(dto.ColorCode); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	if err := ch.SetTimeSlot(TimeSlot(dto.TimeSlot)); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	if dto.Contact != "" {
		contact, ok := ctx.contacts[dto.Contact].(*DigitalContact)
		if !ok {
			return nil, fmt.Errorf("channel %q: unknown contact %q", dto.ID, dto.Contact)
		}
		if err := ch.SetTXContact(contact); err != nil {
			return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
		}
	}
	return ch, nil
}

func parseAnalogChannel(dto *analogChannelYAML) (*AnalogChannel, error) {
	ch, err := NewAnalogChannel(dto.Name, dto.RXFreq, dto.TXFreq)
	if err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	if err := parseChannelCommon(dto.channelCommonYAML, ch); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	switch dto.Admit {
	case "", "always":
		ch.SetAdmit(AnalogAdmitNone)
	case "free":
		ch.SetAdmit(AnalogAdmitFree)
	case "tone":
		ch.SetAdmit(AnalogAdmitTone)
	default:
		return nil, fmt.Errorf("channel %q: unknown admit criterion %q", dto.ID, dto.Admit)
	}
	if err := ch.SetSquelch(dto.Squelch); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	if err := ch.SetRXTone(dto.RXTone); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	if err := ch.SetTXTone(dto.TXTone); err != nil {
		return nil, fmt.Errorf("channel %q: %w", dto.ID, err)
	}
	switch dto.Bandwidth {
	case "", "narrow":
		ch.SetBandwidth(BWNarrow)
	case "wide":
		ch.SetBandwidth(BWWide)
	default:
		return nil, fmt.Errorf("channel %q: unknown bandwidth %q", dto.ID, dto.Bandwidth)
	}
	return ch, nil
}

// resolveChannelRefs wires the channel references that may point at
// entities created after the channel itself.
func resolveChannelRefs(dto channelYAML, ctx *parseContext) error {
	switch {
	case dto.Digital != nil:
		d := dto.Digital
		ch := ctx.channels[d.ID].(*DigitalChannel)
		if d.ScanList != "" {
			list, ok := ctx.scanLists[d.ScanList]
			if !ok {
				return fmt.Errorf("channel %q: unknown scan list %q", d.ID, d.ScanList)
			}
			if err := ch.SetScanList(list); err != nil {
				return fmt.Errorf("channel %q: %w", d.ID, err)
			}
		}
		if d.GPS != "" {
			sys, ok := ctx.gps[d.GPS]
			if !ok {
				return fmt.Errorf("channel %q: unknown gps system %q", d.ID, d.GPS)
			}
			if err := ch.SetGPSSystem(sys); err != nil {
				return fmt.Errorf("channel %q: %w", d.ID, err)
			}
		}
		if d.Roaming != "" {
			zone, ok := ctx.roaming[d.Roaming]
			if !ok {
				return fmt.Errorf("channel %q: unknown roaming zone %q", d.ID, d.Roaming)
			}
			if err := ch.SetRoamingZone(zone); err != nil {
				return fmt.Errorf("channel %q: %w", d.ID, err)
			}
		}
		if d.RadioID != "" {
			id, ok := ctx.radioIDs[d.RadioID]
			if !ok {
				return fmt.Errorf("channel %q: unknown radio ID %q", d.ID, d.RadioID)
			}
			if err := ch.SetRadioID(id); err != nil {
				return fmt.Errorf("channel %q: %w", d.ID, err)
			}
		}
	case dto.Analog != nil:
		a := dto.Analog
		ch := ctx.channels[a.ID].(*AnalogChannel)
		if a.ScanList != "" {
			list, ok := ctx.scanLists[a.ScanList]
			if !ok {
				return fmt.Errorf("channel %q: unknown scan list %q", a.ID, a.ScanList)
			}
			if err := ch.SetScanList(list); err != nil {
				return fmt.Errorf("channel %q: %w", a.ID, err)
			}
		}
		if a.APRS != "" {
			sys, ok := ctx.aprs[a.APRS]
			if !ok {
				return fmt.Errorf("channel %q: unknown aprs system %q", a.ID, a.APRS)
			}
			if err := ch.SetAPRSSystem(sys); err != nil {
				return fmt.Errorf("channel %q: %w", a.ID, err)
			}
		}
	}
	return nil
}
