package codeplug

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ConfWriter renders a configuration as the human readable, cross indexed
// column format. Writing is a pure projection: the graph is not mutated and
// rendering the same unchanged graph twice yields byte identical output.
//
// All cross reference numbers are the 1-based positions of the referenced
// entities within their owning lists.
type ConfWriter struct {
	// Generated is an optional free form note added to the file header,
	// e.g. a generation timestamp. Leave empty for reproducible output.
	Generated string
}

// formatFrequency renders a frequency in MHz with four fractional digits.
func formatFrequency(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', 4, 64)
}

// Write renders the configuration to out.
func (w *ConfWriter) Write(cfg *Config, out io.Writer) error {
	var b strings.Builder

	b.WriteString("#\n# Codeplug configuration\n")
	if w.Generated != "" {
		fmt.Fprintf(&b, "# Generated %s\n", w.Generated)
	}
	b.WriteString("#\n\n")

	fmt.Fprintf(&b, "# Unique DMR ID and name (quoted) of this radio.\n")
	fmt.Fprintf(&b, "ID: %d\n", cfg.ID())
	fmt.Fprintf(&b, "Name: %q\n\n", cfg.Name())
	fmt.Fprintf(&b, "# Text displayed when the radio powers up (quoted).\n")
	fmt.Fprintf(&b, "IntroLine1: %q\n", cfg.IntroLine1())
	fmt.Fprintf(&b, "IntroLine2: %q\n\n", cfg.IntroLine2())
	fmt.Fprintf(&b, "# Microphone amplification, value 1..10:\n")
	fmt.Fprintf(&b, "MICLevel: %d\n\n", cfg.MICLevel())
	fmt.Fprintf(&b, "# Speech-synthesis ('On' or 'Off'):\n")
	fmt.Fprintf(&b, "Speech: %s\n\n", onOff(cfg.Speech()))

	if err := w.writeDigitalChannels(cfg, &b); err != nil {
		return err
	}
	if err := w.writeAnalogChannels(cfg, &b); err != nil {
		return err
	}
	if err := w.writeZones(cfg, &b); err != nil {
		return err
	}
	if err := w.writeScanLists(cfg, &b); err != nil {
		return err
	}
	if err := w.writeGPSSystems(cfg, &b); err != nil {
		return err
	}
	if err := w.writeContacts(cfg, &b); err != nil {
		return err
	}
	if err := w.writeGroupLists(cfg, &b); err != nil {
		return err
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func plusMinus(b bool) string {
	if b {
		return "+"
	}
	return "-"
}

// position returns the 1-based cross reference number of a list member. A
// missing member is a graph consistency violation, never an "unset" value.
func position[T interface {
	Entity
	comparable
}](l *List[T], e T) (int, error) {
	i := l.IndexOf(e)
	if i < 0 {
		return 0, ErrNotInGraph
	}
	return i + 1, nil
}

// txColumn renders the transmit frequency, or the repeater offset when the
// transmit frequency lies below the receive frequency.
func txColumn(ch Channel) string {
	if ch.TXFrequency() < ch.RXFrequency() {
		return formatFrequency(ch.TXFrequency() - ch.RXFrequency())
	}
	return formatFrequency(ch.TXFrequency())
}

func powerColumn(p Power) string {
	if p >= HighPower {
		return "High"
	}
	return "Low"
}

func timeoutColumn(tot uint) string {
	if tot == 0 {
		return "-"
	}
	return strconv.FormatUint(uint64(tot), 10)
}

func (w *ConfWriter) scanColumn(cfg *Config, ch Channel) (string, error) {
	if ch.ScanList() == nil {
		return "-", nil
	}
	n, err := position(&cfg.ScanLists().List, ch.ScanList())
	if err != nil {
		return "", fmt.Errorf("channel %q scan list: %w", ch.Name(), err)
	}
	return strconv.Itoa(n), nil
}

func (w *ConfWriter) writeDigitalChannels(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of digital channels.\n" +
		"# 1) Channel number\n" +
		"# 2) Name in quotes. E.g., \"NAME\"\n" +
		"# 3) Receive frequency in MHz\n" +
		"# 4) Transmit frequency or +/- offset in MHz\n" +
		"# 5) Transmit power: High, Low\n" +
		"# 6) Scan list: - or index in Scanlist table\n" +
		"# 7) Transmit timeout timer in seconds: 0, 15, 30, 45... 555\n" +
		"# 8) Receive only: -, +\n" +
		"# 9) Admit criteria: -, Free, Color\n" +
		"# 10) Color code: 0, 1, 2, 3... 15\n" +
		"# 11) Time slot: 1 or 2\n" +
		"# 12) Receive group list: - or index in Grouplist table\n" +
		"# 13) Contact for transmit: - or index in Contacts table\n" +
		"# 14) GPS System: - or index in GPS table.\n" +
		"#\n" +
		"Digital Name                Receive   Transmit  Power Scan TOT RO Admit  CC TS RxGL TxC GPS\n")
	for i := 0; i < cfg.Channels().Count(); i++ {
		digi, ok := cfg.Channels().Channel(i).(*DigitalChannel)
		if !ok {
			continue
		}
		scan, err := w.scanColumn(cfg, digi)
		if err != nil {
			return err
		}
		admit := "-"
		switch digi.Admit() {
		case DigitalAdmitFree:
			admit = "Free"
		case DigitalAdmitColorCode:
			admit = "Color"
		}
		rxgl := "-"
		if digi.RXGroupList() != nil {
			n, err := position(&cfg.RXGroupLists().List, digi.RXGroupList())
			if err != nil {
				return fmt.Errorf("channel %q rx group list: %w", digi.Name(), err)
			}
			rxgl = strconv.Itoa(n)
		}
		txc := "-"
		if digi.TXContact() != nil {
			n, err := position(&cfg.Contacts().List, Contact(digi.TXContact()))
			if err != nil {
				return fmt.Errorf("channel %q tx contact: %w", digi.Name(), err)
			}
			txc = strconv.Itoa(n)
		}
		gps := "-"
		if digi.GPSSystem() != nil {
			n, err := position(&cfg.GPSSystems().List, digi.GPSSystem())
			if err != nil {
				return fmt.Errorf("channel %q gps system: %w", digi.Name(), err)
			}
			gps = strconv.Itoa(n)
		}
		fmt.Fprintf(b, "%-8d%-20s%-10s%-10s%-6s%-5s%-4s%-3s%-7s%-3d%-3d%-5s%-4s%-4s",
			i+1, quoted(digi.Name()), formatFrequency(digi.RXFrequency()), txColumn(digi),
			powerColumn(digi.Power()), scan, timeoutColumn(digi.TXTimeout()),
			plusMinus(digi.RXOnly()), admit, digi.ColorCode(), digi.TimeSlot(), rxgl, txc, gps)
		if digi.TXContact() != nil {
			fmt.Fprintf(b, "# %s", digi.TXContact().Name())
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return nil
}

func (w *ConfWriter) writeAnalogChannels(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of analog channels.\n" +
		"# 1) Channel number\n" +
		"# 2) Name in quotes.\n" +
		"# 3) Receive frequency in MHz\n" +
		"# 4) Transmit frequency or +/- offset in MHz\n" +
		"# 5) Transmit power: High, Low\n" +
		"# 6) Scan list: - or index\n" +
		"# 7) Transmit timeout timer in seconds: 0, 15, 30, 45... 555\n" +
		"# 8) Receive only: -, +\n" +
		"# 9) Admit criteria: -, Free, Tone\n" +
		"# 10) Squelch level: 0, 1, 2, 3, 4, 5, 6, 7, 8, 9\n" +
		"# 11) Guard tone for receive, or '-' to disable\n" +
		"# 12) Guard tone for transmit, or '-' to disable\n" +
		"# 13) Bandwidth in kHz: 12.5, 25\n" +
		"#\n" +
		"Analog  Name                Receive    Transmit Power Scan TOT RO Admit  Squelch RxTone TxTone Width\n")
	for i := 0; i < cfg.Channels().Count(); i++ {
		analog, ok := cfg.Channels().Channel(i).(*AnalogChannel)
		if !ok {
			continue
		}
		scan, err := w.scanColumn(cfg, analog)
		if err != nil {
			return err
		}
		admit := "-"
		switch analog.Admit() {
		case AnalogAdmitFree:
			admit = "Free"
		case AnalogAdmitTone:
			admit = "Tone"
		}
		width := "12.5"
		if analog.Bandwidth() == BWWide {
			width = "25"
		}
		fmt.Fprintf(b, "%-8d%-20s%-10s%-10s%-6s%-5s%-4s%-3s%-7s%-8d%-7s%-7s%-5s\n",
			i+1, quoted(analog.Name()), formatFrequency(analog.RXFrequency()), txColumn(analog),
			powerColumn(analog.Power()), scan, timeoutColumn(analog.TXTimeout()),
			plusMinus(analog.RXOnly()), admit, analog.Squelch(),
			toneColumn(analog.RXTone()), toneColumn(analog.TXTone()), width)
	}
	b.WriteByte('\n')
	return nil
}

func toneColumn(code float64) string {
	if code == 0 {
		return "-"
	}
	return strconv.FormatFloat(code, 'f', -1, 64)
}

func quoted(s string) string { return "\"" + s + "\"" }

// channelNumbers renders the membership of a channel list as comma
// separated 1-based indices into the configuration's channel table.
func channelNumbers(cfg *Config, members *List[Channel]) (string, error) {
	nums := make([]string, 0, members.Count())
	for i := 0; i < members.Count(); i++ {
		n, err := position(&cfg.Channels().List, members.At(i))
		if err != nil {
			return "", err
		}
		nums = append(nums, strconv.Itoa(n))
	}
	return strings.Join(nums, ","), nil
}

func (w *ConfWriter) writeZones(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of channel zones.\n" +
		"# 1) Zone number\n" +
		"# 2) Name in quotes.\n" +
		"# 3) VFO: Either A or B.\n" +
		"# 4) List of channels: numbers separated by comma\n" +
		"#\n" +
		"Zone    Name                VFO Channels\n")
	for i := 0; i < cfg.Zones().Count(); i++ {
		zone := cfg.Zones().Zone(i)
		for _, side := range []struct {
			vfo     string
			members *List[Channel]
		}{{"A", zone.A()}, {"B", zone.B()}} {
			if side.members.Count() == 0 {
				continue
			}
			channels, err := channelNumbers(cfg, side.members)
			if err != nil {
				return fmt.Errorf("zone %q side %s: %w", zone.Name(), side.vfo, err)
			}
			fmt.Fprintf(b, "%-8d%-20s%-4s%s\n", i+1, quoted(zone.Name()), side.vfo, channels)
		}
	}
	b.WriteByte('\n')
	return nil
}

func (w *ConfWriter) selectorColumn(cfg *Config, sel *ChannelSelector) (string, error) {
	switch {
	case sel.IsSelected():
		return "Sel", nil
	case sel.IsNone():
		return "-", nil
	default:
		n, err := position(&cfg.Channels().List, sel.Channel())
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	}
}

func (w *ConfWriter) writeScanLists(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of scan lists.\n" +
		"# 1) Scan list number\n" +
		"# 2) Name in quotes.\n" +
		"# 3) Priority channel 1 (50% of scans): -, Sel or index\n" +
		"# 4) Priority channel 2 (25% of scans): -, Sel or index\n" +
		"# 5) Designated transmit channel: Sel or index\n" +
		"# 6) List of channels: numbers separated by comma\n" +
		"#\n" +
		"Scanlist Name               PCh1 PCh2 TxCh Channels\n")
	for i := 0; i < cfg.ScanLists().Count(); i++ {
		list := cfg.ScanLists().ScanList(i)
		pch1, err := w.selectorColumn(cfg, list.Priority())
		if err != nil {
			return fmt.Errorf("scan list %q priority channel: %w", list.Name(), err)
		}
		pch2, err := w.selectorColumn(cfg, list.SecondaryPriority())
		if err != nil {
			return fmt.Errorf("scan list %q secondary priority channel: %w", list.Name(), err)
		}
		txch, err := w.selectorColumn(cfg, list.TXChannel())
		if err != nil {
			return fmt.Errorf("scan list %q tx channel: %w", list.Name(), err)
		}
		channels, err := channelNumbers(cfg, list.Channels())
		if err != nil {
			return fmt.Errorf("scan list %q members: %w", list.Name(), err)
		}
		fmt.Fprintf(b, "%-9d%-20s%-5s%-5s%-5s%s\n",
			i+1, quoted(list.Name()), pch1, pch2, txch, channels)
	}
	b.WriteByte('\n')
	return nil
}

func (w *ConfWriter) writeGPSSystems(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of GPS systems.\n" +
		"# 1) GPS system ID\n" +
		"# 2) Name in quotes.\n" +
		"# 3) Destination contact ID.\n" +
		"# 4) Update period in seconds\n" +
		"# 5) Revert channel ID or '-'.\n" +
		"#\n" +
		"GPS  Name                Dest Period Revert\n")
	for i := 0; i < cfg.GPSSystems().Count(); i++ {
		gps := cfg.GPSSystems().GPSSystem(i)
		dest := "-"
		if gps.Contact() != nil {
			n, err := position(&cfg.Contacts().List, Contact(gps.Contact()))
			if err != nil {
				return fmt.Errorf("gps system %q destination: %w", gps.Name(), err)
			}
			dest = strconv.Itoa(n)
		}
		revert := "-"
		if gps.RevertChannel() != nil {
			n, err := position(&cfg.Channels().List, Channel(gps.RevertChannel()))
			if err != nil {
				return fmt.Errorf("gps system %q revert channel: %w", gps.Name(), err)
			}
			revert = strconv.Itoa(n)
		}
		fmt.Fprintf(b, "%-5d%-20s%-5s%-7d%-6s\n",
			i+1, quoted(gps.Name()), dest, gps.Period(), revert)
	}
	b.WriteByte('\n')
	return nil
}

func (w *ConfWriter) writeContacts(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of contacts.\n" +
		"# 1) Contact number\n" +
		"# 2) Name in quotes.\n" +
		"# 3) Call type: Group, Private, All or DTMF\n" +
		"# 4) Call ID: 1...16777215 or string with DTMF number\n" +
		"# 5) Call receive tone: -, +\n" +
		"#\n" +
		"Contact Name                Type    ID          RxTone\n")
	for i := 0; i < cfg.Contacts().Count(); i++ {
		switch contact := cfg.Contacts().Contact(i).(type) {
		case *DigitalContact:
			ctype := "All"
			switch contact.Type() {
			case PrivateCall:
				ctype = "Private"
			case GroupCall:
				ctype = "Group"
			}
			fmt.Fprintf(b, "%-8d%-20s%-8s%-12d%-6s\n",
				i+1, quoted(contact.Name()), ctype, contact.Number(), plusMinus(contact.RXTone()))
		case *DTMFContact:
			fmt.Fprintf(b, "%-8d%-17s%-8s%-12s%-6s\n",
				i+1, quoted(contact.Name()), "DTMF", quoted(contact.Number()), plusMinus(contact.RXTone()))
		}
	}
	b.WriteByte('\n')
	return nil
}

func (w *ConfWriter) writeGroupLists(cfg *Config, b *strings.Builder) error {
	b.WriteString("# Table of group lists.\n" +
		"# 1) Group list number\n" +
		"# 2) Name in quotes.\n" +
		"# 3) List of contacts: numbers separated by comma\n" +
		"#\n" +
		"Grouplist Name                Contacts\n")
	for i := 0; i < cfg.RXGroupLists().Count(); i++ {
		list := cfg.RXGroupLists().GroupList(i)
		nums := make([]string, 0, list.Contacts().Count())
		for j := 0; j < list.Contacts().Count(); j++ {
			n, err := position(&cfg.Contacts().List, Contact(list.Contacts().At(j)))
			if err != nil {
				return fmt.Errorf("group list %q member: %w", list.Name(), err)
			}
			nums = append(nums, strconv.Itoa(n))
		}
		fmt.Fprintf(b, "%-10d%-20s%s\n", i+1, quoted(list.Name()), strings.Join(nums, ","))
	}
	b.WriteByte('\n')
	return nil
}
