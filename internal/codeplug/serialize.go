package codeplug

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Context resolves entities to the stable identifiers used by the tree
// persistence format. Identifiers are derived from the 1-based list
// positions, the same numbers the text exporter prints.
type Context struct {
	cfg *Config
}

// NewContext creates a serialization context for the given configuration.
func NewContext(cfg *Config) *Context { return &Context{cfg: cfg} }

func (ctx *Context) channelID(ch Channel) (string, error) {
	n, err := position(&ctx.cfg.Channels().List, ch)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ch%d", n), nil
}

func (ctx *Context) contactID(c Contact) (string, error) {
	n, err := position(&ctx.cfg.Contacts().List, c)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("cont%d", n), nil
}

func (ctx *Context) groupListID(l *RXGroupList) (string, error) {
	n, err := position(&ctx.cfg.RXGroupLists().List, l)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("grp%d", n), nil
}

func (ctx *Context) scanListID(l *ScanList) (string, error) {
	n, err := position(&ctx.cfg.ScanLists().List, l)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("scan%d", n), nil
}

func (ctx *Context) gpsID(s *GPSSystem) (string, error) {
	n, err := position(&ctx.cfg.GPSSystems().List, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("gps%d", n), nil
}

func (ctx *Context) aprsID(s *APRSSystem) (string, error) {
	n, err := position(&ctx.cfg.APRSSystems().List, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("aprs%d", n), nil
}

func (ctx *Context) roamingID(z *RoamingZone) (string, error) {
	n, err := position(&ctx.cfg.RoamingZones().List, z)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("roam%d", n), nil
}

func (ctx *Context) radioIDID(id *RadioID) (string, error) {
	n, err := position(&ctx.cfg.RadioIDs().List, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("id%d", n), nil
}

// tree form of the configuration and its entities

type configYAML struct {
	ID         uint32         `yaml:"id"`
	Name       string         `yaml:"name,omitempty"`
	IntroLine1 string         `yaml:"introLine1,omitempty"`
	IntroLine2 string         `yaml:"introLine2,omitempty"`
	MICLevel   uint           `yaml:"micLevel"`
	Speech     bool           `yaml:"speech"`
	RadioIDs   []radioIDYAML  `yaml:"radioIDs,omitempty"`
	Contacts   []contactYAML  `yaml:"contacts,omitempty"`
	GroupLists []groupYAML    `yaml:"groupLists,omitempty"`
	Channels   []channelYAML  `yaml:"channels,omitempty"`
	Zones      []zoneYAML     `yaml:"zones,omitempty"`
	ScanLists  []scanYAML     `yaml:"scanLists,omitempty"`
	GPS        []gpsYAML      `yaml:"positioning,omitempty"`
	APRS       []aprsYAML     `yaml:"aprs,omitempty"`
	Roaming    []roamYAML     `yaml:"roaming,omitempty"`
}

type radioIDYAML struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Number uint32 `yaml:"number"`
}

type contactYAML struct {
	Digital *digitalContactYAML `yaml:"dmr,omitempty"`
	DTMF    *dtmfContactYAML    `yaml:"dtmf,omitempty"`
}

type digitalContactYAML struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Number uint32 `yaml:"number"`
	RXTone bool   `yaml:"ring"`
}

type dtmfContactYAML struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Number string `yaml:"number"`
	RXTone bool   `yaml:"ring"`
}

type groupYAML struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Contacts []string `yaml:"contacts"`
}

type channelYAML struct {
	Digital *digitalChannelYAML `yaml:"digital,omitempty"`
	Analog  *analogChannelYAML  `yaml:"analog,omitempty"`
}

type channelCommonYAML struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	RXFreq   float64 `yaml:"rxFrequency"`
	TXFreq   float64 `yaml:"txFrequency"`
	Power    string  `yaml:"power"`
	Timeout  uint    `yaml:"timeout"`
	RXOnly   bool    `yaml:"rxOnly"`
	ScanList string  `yaml:"scanList,omitempty"`
}

type digitalChannelYAML struct {
	channelCommonYAML `yaml:",inline"`
	Admit             string `yaml:"admit"`
	ColorCode         uint   `yaml:"colorCode"`
	TimeSlot          int    `yaml:"timeSlot"`
	GroupList         string `yaml:"groupList,omitempty"`
	Contact           string `yaml:"contact,omitempty"`
	GPS               string `yaml:"gps,omitempty"`
	Roaming           string `yaml:"roaming,omitempty"`
	RadioID           string `yaml:"radioID,omitempty"`
}

type analogChannelYAML struct {
	channelCommonYAML `yaml:",inline"`
	Admit             string  `yaml:"admit"`
	Squelch           uint    `yaml:"squelch"`
	RXTone            float64 `yaml:"rxTone,omitempty"`
	TXTone            float64 `yaml:"txTone,omitempty"`
	Bandwidth         string  `yaml:"bandwidth"`
	APRS              string  `yaml:"aprs,omitempty"`
}

type zoneYAML struct {
	Name string   `yaml:"name"`
	A    []string `yaml:"A,omitempty"`
	B    []string `yaml:"B,omitempty"`
}

type scanYAML struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Primary   string   `yaml:"primary,omitempty"`
	Secondary string   `yaml:"secondary,omitempty"`
	Revert    string   `yaml:"revert,omitempty"`
	Channels  []string `yaml:"channels"`
}

type gpsYAML struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Contact string `yaml:"destination"`
	Period  uint   `yaml:"period"`
	Revert  string `yaml:"revert,omitempty"`
}

type aprsYAML struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Channel  string `yaml:"channel,omitempty"`
	Source   string `yaml:"source"`
	SrcSSID  uint   `yaml:"sourceSSID"`
	Dest     string `yaml:"destination"`
	DestSSID uint   `yaml:"destinationSSID"`
	Path     string `yaml:"path,omitempty"`
	Period   uint   `yaml:"period"`
	Message  string `yaml:"message,omitempty"`
}

type roamYAML struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Channels []string `yaml:"channels"`
}

const (
	selectedTag = "!selected"
)

func powerName(p Power) string {
	switch p {
	case MinPower:
		return "Min"
	case LowPower:
		return "Low"
	case MidPower:
		return "Mid"
	case MaxPower:
		return "Max"
	default:
		return "High"
	}
}

func parsePower(s string) (Power, error) {
	switch s {
	case "Min":
		return MinPower, nil
	case "Low":
		return LowPower, nil
	case "Mid":
		return MidPower, nil
	case "High":
		return HighPower, nil
	case "Max":
		return MaxPower, nil
	}
	return 0, validationErr("power", "unknown power setting %q", s)
}

// Serialize returns the tree form of a digital contact. It is a pure
// function of the contact state plus resolvable cross references.
func (c *DigitalContact) Serialize(ctx *Context) (*yaml.Node, error) {
	id, err := ctx.contactID(c)
	if err != nil {
		return nil, err
	}
	ctype := "all"
	switch c.Type() {
	case PrivateCall:
		ctype = "private"
	case GroupCall:
		ctype = "group"
	}
	dto := contactYAML{Digital: &digitalContactYAML{
		ID: id, Name: c.Name(), Type: ctype, Number: c.Number(), RXTone: c.RXTone(),
	}}
	var n yaml.Node
	if err := n.Encode(dto); err != nil {
		return nil, err
	}
	return &n, nil
}

// Serialize returns the tree form of a DTMF contact.
func (c *DTMFContact) Serialize(ctx *Context) (*yaml.Node, error) {
	id, err := ctx.contactID(c)
	if err != nil {
		return nil, err
	}
	dto := contactYAML{DTMF: &dtmfContactYAML{
		ID: id, Name: c.Name(), Number: c.Number(), RXTone: c.RXTone(),
	}}
	var n yaml.Node
	if err := n.Encode(dto); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *channelBase) commonYAML(ctx *Context, self Channel) (channelCommonYAML, error) {
	id, err := ctx.channelID(self)
	if err != nil {
		return channelCommonYAML{}, err
	}
	common := channelCommonYAML{
		ID:      id,
		Name:    c.name,
		RXFreq:  c.rxFreq,
		TXFreq:  c.txFreq,
		Power:   powerName(c.power),
		Timeout: c.txTimeout,
		RXOnly:  c.rxOnly,
	}
	if c.ScanList() != nil {
		if common.ScanList, err = ctx.scanListID(c.ScanList()); err != nil {
			return channelCommonYAML{}, err
		}
	}
	return common, nil
}

// Serialize returns the tree form of a digital channel.
func (c *DigitalChannel) Serialize(ctx *Context) (*yaml.Node, error) {
	common, err := c.commonYAML(ctx, c)
	if err != nil {
		return nil, err
	}
	admit := "always"
	switch c.Admit() {
	case DigitalAdmitFree:
		admit = "free"
	case DigitalAdmitColorCode:
		admit = "colorCode"
	}
	dto := digitalChannelYAML{
		channelCommonYAML: common,
		Admit:             admit,
		ColorCode:         c.ColorCode(),
		TimeSlot:          int(c.TimeSlot()),
	}
	if c.RXGroupList() != nil {
		if dto.GroupList, err = ctx.groupListID(c.RXGroupList()); err != nil {
			return nil, err
		}
	}
	if c.TXContact() != nil {
		if dto.Contact, err = ctx.contactID(c.TXContact()); err != nil {
			return nil, err
		}
	}
	if c.GPSSystem() != nil {
		if dto.GPS, err = ctx.gpsID(c.GPSSystem()); err != nil {
			return nil, err
		}
	}
	if c.RoamingZone() != nil {
		if dto.Roaming, err = ctx.roamingID(c.RoamingZone()); err != nil {
			return nil, err
		}
	}
	if c.RadioID() != nil {
		if dto.RadioID, err = ctx.radioIDID(c.RadioID()); err != nil {
			return nil, err
		}
	}
	var n yaml.Node
	if err := n.Encode(channelYAML{Digital: &dto}); err != nil {
		return nil, err
	}
	return &n, nil
}

// Serialize returns the tree form of an analog channel.
func (c *AnalogChannel) Serialize(ctx *Context) (*yaml.Node, error) {
	common, err := c.commonYAML(ctx, c)
	if err != nil {
		return nil, err
	}
	admit := "always"
	switch c.Admit() {
	case AnalogAdmitFree:
		admit = "free"
	case AnalogAdmitTone:
		admit = "tone"
	}
	bw := "narrow"
	if c.Bandwidth() == BWWide {
		bw = "wide"
	}
	dto := analogChannelYAML{
		channelCommonYAML: common,
		Admit:             admit,
		Squelch:           c.Squelch(),
		RXTone:            c.RXTone(),
		TXTone:            c.TXTone(),
		Bandwidth:         bw,
	}
	if c.APRSSystem() != nil {
		if dto.APRS, err = ctx.aprsID(c.APRSSystem()); err != nil {
			return nil, err
		}
	}
	var n yaml.Node
	if err := n.Encode(channelYAML{Analog: &dto}); err != nil {
		return nil, err
	}
	return &n, nil
}

func (ctx *Context) selectorYAML(sel *ChannelSelector) (string, error) {
	switch {
	case sel.IsSelected():
		return selectedTag, nil
	case sel.IsNone():
		return "", nil
	default:
		return ctx.channelID(sel.Channel())
	}
}

// Serialize returns the tree form of a scan list.
func (l *ScanList) Serialize(ctx *Context) (*yaml.Node, error) {
	id, err := ctx.scanListID(l)
	if err != nil {
		return nil, err
	}
	dto := scanYAML{ID: id, Name: l.Name(), Channels: []string{}}
	if dto.Primary, err = ctx.selectorYAML(l.Priority()); err != nil {
		return nil, err
	}
	if dto.Secondary, err = ctx.selectorYAML(l.SecondaryPriority()); err != nil {
		return nil, err
	}
	if dto.Revert, err = ctx.selectorYAML(l.TXChannel()); err != nil {
		return nil, err
	}
	for i := 0; i < l.Channels().Count(); i++ {
		chID, err := ctx.channelID(l.Channels().At(i))
		if err != nil {
			return nil, err
		}
		dto.Channels = append(dto.Channels, chID)
	}
	var n yaml.Node
	if err := n.Encode(dto); err != nil {
		return nil, err
	}
	return &n, nil
}

// Serialize returns the tree form of the whole configuration.
func (cfg *Config) Serialize() (*yaml.Node, error) {
	ctx := NewContext(cfg)
	dto := configYAML{
		ID:         cfg.ID(),
		Name:       cfg.Name(),
		IntroLine1: cfg.IntroLine1(),
		IntroLine2: cfg.IntroLine2(),
		MICLevel:   cfg.MICLevel(),
		Speech:     cfg.Speech(),
	}

	for i := 0; i < cfg.RadioIDs().Count(); i++ {
		rid := cfg.RadioIDs().RadioID(i)
		id, err := ctx.radioIDID(rid)
		if err != nil {
			return nil, err
		}
		dto.RadioIDs = append(dto.RadioIDs, radioIDYAML{ID: id, Name: rid.Name(), Number: rid.Number()})
	}

	for i := 0; i < cfg.Contacts().Count(); i++ {
		var node *yaml.Node
		var err error
		switch contact := cfg.Contacts().Contact(i).(type) {
		case *DigitalContact:
			node, err = contact.Serialize(ctx)
		case *DTMFContact:
			node, err = contact.Serialize(ctx)
		}
		if err != nil {
			return nil, err
		}
		var c contactYAML
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		dto.Contacts = append(dto.Contacts, c)
	}

	for i := 0; i < cfg.RXGroupLists().Count(); i++ {
		list := cfg.RXGroupLists().GroupList(i)
		id, err := ctx.groupListID(list)
		if err != nil {
			return nil, err
		}
		g := groupYAML{ID: id, Name: list.Name(), Contacts: []string{}}
		for j := 0; j < list.Contacts().Count(); j++ {
			cid, err := ctx.contactID(list.Contacts().At(j))
			if err != nil {
				return nil, err
			}
			g.Contacts = append(g.Contacts, cid)
		}
		dto.GroupLists = append(dto.GroupLists, g)
	}

	for i := 0; i < cfg.Channels().Count(); i++ {
		var node *yaml.Node
		var err error
		switch ch := cfg.Channels().Channel(i).(type) {
		case *DigitalChannel:
			node, err = ch.Serialize(ctx)
		case *AnalogChannel:
			node, err = ch.Serialize(ctx)
		}
		if err != nil {
			return nil, err
		}
		var c channelYAML
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		dto.Channels = append(dto.Channels, c)
	}

	for i := 0; i < cfg.Zones().Count(); i++ {
		zone := cfg.Zones().Zone(i)
		z := zoneYAML{Name: zone.Name()}
		for j := 0; j < zone.A().Count(); j++ {
			id, err := ctx.channelID(zone.A().At(j))
			if err != nil {
				return nil, err
			}
			z.A = append(z.A, id)
		}
		for j := 0; j < zone.B().Count(); j++ {
			id, err := ctx.channelID(zone.B().At(j))
			if err != nil {
				return nil, err
			}
			z.B = append(z.B, id)
		}
		dto.Zones = append(dto.Zones, z)
	}

	for i := 0; i < cfg.ScanLists().Count(); i++ {
		node, err := cfg.ScanLists().ScanList(i).Serialize(ctx)
		if err != nil {
			return nil, err
		}
		var s scanYAML
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		dto.ScanLists = append(dto.ScanLists, s)
	}

	for i := 0; i < cfg.GPSSystems().Count(); i++ {
		gps := cfg.GPSSystems().GPSSystem(i)
		id, err := ctx.gpsID(gps)
		if err != nil {
			return nil, err
		}
		g := gpsYAML{ID: id, Name: gps.Name(), Period: gps.Period()}
		if gps.Contact() != nil {
			if g.Contact, err = ctx.contactID(gps.Contact()); err != nil {
				return nil, err
			}
		}
		if gps.RevertChannel() != nil {
			if g.Revert, err = ctx.channelID(gps.RevertChannel()); err != nil {
				return nil, err
			}
		}
		dto.GPS = append(dto.GPS, g)
	}

	for i := 0; i < cfg.APRSSystems().Count(); i++ {
		aprs := cfg.APRSSystems().APRSSystem(i)
		id, err := ctx.aprsID(aprs)
		if err != nil {
			return nil, err
		}
		a := aprsYAML{
			ID: id, Name: aprs.Name(),
			Source: aprs.Source(), SrcSSID: aprs.SourceSSID(),
			Dest: aprs.Destination(), DestSSID: aprs.DestinationSSID(),
			Path: aprs.Path(), Period: aprs.Period(), Message: aprs.Message(),
		}
		if aprs.Channel() != nil {
			if a.Channel, err = ctx.channelID(aprs.Channel()); err != nil {
				return nil, err
			}
		}
		dto.APRS = append(dto.APRS, a)
	}

	for i := 0; i < cfg.RoamingZones().Count(); i++ {
		zone := cfg.RoamingZones().Zone(i)
		id, err := ctx.roamingID(zone)
		if err != nil {
			return nil, err
		}
		r := roamYAML{ID: id, Name: zone.Name(), Channels: []string{}}
		for j := 0; j < zone.Channels().Count(); j++ {
			cid, err := ctx.channelID(zone.Channels().At(j))
			if err != nil {
				return nil, err
			}
			r.Channels = append(r.Channels, cid)
		}
		dto.Roaming = append(dto.Roaming, r)
	}

	var n yaml.Node
	if err := n.Encode(dto); err != nil {
		return nil, err
	}
	return &n, nil
}

// WriteYAML serializes the configuration into its tree persistence form.
func (cfg *Config) WriteYAML(w io.Writer) error {
	node, err := cfg.Serialize()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}
