package codeplug

import "strings"

// ContactType is the addressing mode of a digital contact.
type ContactType int

const (
	PrivateCall ContactType = iota // unicast
	GroupCall                      // multicast
	AllCall                        // broadcast
)

// maximum DMR call ID, a 24 bit number
const maxCallID = 0xFFFFFF

// Contact is either a DigitalContact or a DTMFContact. The set of variants
// is closed, consumers dispatch with a type switch.
type Contact interface {
	Entity
	Name() string
	RXTone() bool

	isContact()
}

type contactBase struct {
	entityBase
	name   string
	rxTone bool
}

func (c *contactBase) isContact() {}

// Name returns the contact name.
func (c *contactBase) Name() string { return c.name }

// SetName renames the contact. The name must not be empty.
func (c *contactBase) SetName(name string) error {
	if name == "" {
		return validationErr("name", "must not be empty")
	}
	c.name = name
	return nil
}

// RXTone reports whether a tone sounds on incoming calls from the contact.
func (c *contactBase) RXTone() bool { return c.rxTone }

// SetRXTone enables or disables the incoming call tone.
func (c *contactBase) SetRXTone(enable bool) { c.rxTone = enable }

// DigitalContact is a DMR contact addressed by a numeric 24 bit call ID.
type DigitalContact struct {
	contactBase
	ctype  ContactType
	number uint32
}

// NewDigitalContact creates a digital contact.
func NewDigitalContact(name string, ctype ContactType, number uint32) (*DigitalContact, error) {
	c := &DigitalContact{}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetType(ctype); err != nil {
		return nil, err
	}
	if err := c.SetNumber(number); err != nil {
		return nil, err
	}
	return c, nil
}

// Type returns the addressing mode of the contact.
func (c *DigitalContact) Type() ContactType { return c.ctype }

// SetType sets the addressing mode of the contact.
func (c *DigitalContact) SetType(t ContactType) error {
	if t != PrivateCall && t != GroupCall && t != AllCall {
		return validationErr("type", "unknown contact type %d", t)
	}
	c.ctype = t
	return nil
}

// Number returns the call ID of the contact.
func (c *DigitalContact) Number() uint32 { return c.number }

// SetNumber sets the call ID, a 24 bit number.
func (c *DigitalContact) SetNumber(number uint32) error {
	if number == 0 || number > maxCallID {
		return validationErr("number", "call ID must be within [1,%d], got %d", maxCallID, number)
	}
	c.number = number
	return nil
}

// DTMFContact is an analog contact addressed by a DTMF digit string.
type DTMFContact struct {
	contactBase
	number string
}

// NewDTMFContact creates a DTMF contact.
func NewDTMFContact(name, number string) (*DTMFContact, error) {
	c := &DTMFContact{}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	if err := c.SetNumber(number); err != nil {
		return nil, err
	}
	return c, nil
}

// Number returns the DTMF digit string of the contact.
func (c *DTMFContact) Number() string { return c.number }

// SetNumber sets the DTMF digit string. Valid symbols are 0-9, A-D, * and #.
func (c *DTMFContact) SetNumber(number string) error {
	if number == "" {
		return validationErr("number", "must not be empty")
	}
	for _, r := range number {
		if !strings.ContainsRune("0123456789ABCD*#", r) {
			return validationErr("number", "invalid DTMF symbol %q", r)
		}
	}
	c.number = number
	return nil
}

// ContactList is the ordered container of all contacts of a configuration.
type ContactList struct {
	List[Contact]
}

func newContactList(cfg *Config) *ContactList {
	return &ContactList{List: *newList[Contact](ownedBy[Contact](cfg))}
}

// Contact returns the contact at the given position or nil.
func (l *ContactList) Contact(i int) Contact { return l.At(i) }

// FindDigitalContact returns the digital contact with the given call ID or
// nil.
func (l *ContactList) FindDigitalContact(number uint32) *DigitalContact {
	for i := 0; i < l.Count(); i++ {
		if c, ok := l.At(i).(*DigitalContact); ok && c.Number() == number {
			return c
		}
	}
	return nil
}
