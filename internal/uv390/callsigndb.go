// Package uv390 encodes the binary callsign/user database of the TYT
// MD-UV390 and compatible radios. The on-device format is a fixed capacity
// table of 120 byte records sorted ascending by DMR ID, preceded by a
// record count and a 4096 slot sparse index. The radio locates a caller by
// binary searching the index on the high order ID bits and then scanning
// the record table from the indexed offset.
package uv390

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/chemandante/qdmr/internal/userdb"
)

const (
	// DatabaseCapacity is the maximum number of records the device holds.
	DatabaseCapacity = 122197
	// IndexSize is the number of sparse index slots.
	IndexSize = 4096

	// record layout: 3 byte little-endian DMR ID, one 0xff pad byte,
	// 16 byte NUL terminated callsign, 100 byte NUL terminated name
	recordSize   = 120
	callsignSize = 16
	nameSize     = 100

	headerSize   = 3 // 24 bit big-endian record count
	indexOffset  = headerSize
	recordOffset = indexOffset + 4*IndexSize

	// ImageSize is the total size of an encoded database image.
	ImageSize = recordOffset + DatabaseCapacity*recordSize

	// An index slot packs the high 12 bits of the sampled DMR ID and a
	// 20 bit record offset into one big-endian 32 bit value. 20 bits
	// cover the full record table, 122197 < 2^20.
	indexIDShift    = 20
	indexOffsetMask = 1<<indexIDShift - 1

	invalidID = 0xFFFFFF
)

// Record is one decoded callsign database entry.
type Record struct {
	ID       uint32
	Callsign string
	Name     string
}

// Result describes the outcome of an encode pass. Truncation is a partial
// success, not a failure: callers should warn about dropped records.
type Result struct {
	Encoded   int
	Dropped   int
	Truncated bool
}

// Selection limits how many records of the priority ordered source are
// encoded. A zero or negative limit means device capacity only.
type Selection struct {
	Limit int
}

// Encode builds the device image from the priority ordered source view.
// The source must be validated and de-duplicated (see userdb.Prepare), a
// duplicate or zero ID is a precondition violation and fails the encode.
func Encode(src userdb.Source, sel Selection) ([]byte, Result, error) {
	if src.Len() == 0 {
		return nil, Result{}, fmt.Errorf("no valid records to encode")
	}

	limit := DatabaseCapacity
	if sel.Limit > 0 && sel.Limit < limit {
		limit = sel.Limit
	}

	count := src.Len()
	result := Result{}
	if count > limit {
		result.Truncated = true
		result.Dropped = count - limit
		count = limit
	}
	result.Encoded = count

	records := make([]userdb.User, count)
	for i := 0; i < count; i++ {
		records[i] = src.User(i)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	for i, r := range records {
		if r.ID == 0 || r.ID >= invalidID {
			return nil, Result{}, fmt.Errorf("record %d: invalid DMR ID %d", i, r.ID)
		}
		if i > 0 && records[i-1].ID == r.ID {
			return nil, Result{}, fmt.Errorf("duplicate DMR ID %d, source must be de-duplicated", r.ID)
		}
	}

	image := make([]byte, ImageSize)
	for i := range image {
		image[i] = 0xFF
	}

	// 24 bit big-endian record count
	image[0] = byte(count >> 16)
	image[1] = byte(count >> 8)
	image[2] = byte(count)

	for i, r := range records {
		writeRecord(image[recordOffset+i*recordSize:], r)
	}

	// Sample the sorted table at a regular stride. Sampled IDs and record
	// offsets both increase monotonically, which the reader's binary
	// search relies on.
	stride := (count + IndexSize - 1) / IndexSize
	if stride < 1 {
		stride = 1
	}
	slot := 0
	for i := 0; i < count && slot < IndexSize; i += stride {
		packed := records[i].ID>>12<<indexIDShift | uint32(i)
		binary.BigEndian.PutUint32(image[indexOffset+4*slot:], packed)
		slot++
	}

	return image, result, nil
}

// writeRecord packs one record: 24 bit little-endian ID, a 0xff pad byte,
// then the zero padded callsign and name fields. Overlong strings are
// truncated to the field width minus the NUL terminator.
func writeRecord(buf []byte, r userdb.User) {
	buf[0] = byte(r.ID)
	buf[1] = byte(r.ID >> 8)
	buf[2] = byte(r.ID >> 16)
	buf[3] = 0xFF
	writeString(buf[4:4+callsignSize], r.Callsign)
	writeString(buf[4+callsignSize:4+callsignSize+nameSize], r.Name)
}

func writeString(field []byte, s string) {
	for i := range field {
		field[i] = 0
	}
	n := len(s)
	if n > len(field)-1 {
		n = len(field) - 1
	}
	copy(field, s[:n])
}

// RecordCount reads the record count of an encoded image.
func RecordCount(image []byte) int {
	return int(image[0])<<16 | int(image[1])<<8 | int(image[2])
}

// ReadRecord decodes the record at the given table position.
func ReadRecord(image []byte, i int) Record {
	buf := image[recordOffset+i*recordSize:]
	return Record{
		ID:       uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16,
		Callsign: readString(buf[4 : 4+callsignSize]),
		Name:     readString(buf[4+callsignSize : 4+callsignSize+nameSize]),
	}
}

func readString(field []byte) string {
	for i, b := range field {
		if b == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}

// Lookup finds a record by DMR ID the way the device reader does: binary
// search the sparse index for the tightest slot whose sampled ID high bits
// do not exceed the target, then scan the sorted record table from the
// indexed offset.
func Lookup(image []byte, id uint32) (Record, bool) {
	count := RecordCount(image)
	if count == 0 {
		return Record{}, false
	}

	// number of populated index slots
	stride := (count + IndexSize - 1) / IndexSize
	slots := (count + stride - 1) / stride
	if slots > IndexSize {
		slots = IndexSize
	}

	// The index keys only hold the high 12 bits of the sampled IDs, so
	// records sharing those bits may precede the sampled offset. Start at
	// the last slot whose key lies strictly below the target's high bits.
	target := id >> 12
	lower := sort.Search(slots, func(i int) bool {
		packed := binary.BigEndian.Uint32(image[indexOffset+4*i:])
		return packed>>indexIDShift >= target
	})
	start := 0
	if lower > 0 {
		packed := binary.BigEndian.Uint32(image[indexOffset+4*(lower-1):])
		start = int(packed & indexOffsetMask)
	}

	for i := start; i < count; i++ {
		r := ReadRecord(image, i)
		if r.ID == id {
			return r, true
		}
		if r.ID > id {
			break
		}
	}
	return Record{}, false
}
