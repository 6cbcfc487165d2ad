package uv390

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemandante/qdmr/internal/userdb"
)

func testSource() userdb.StaticSource {
	return userdb.StaticSource{
		{ID: 5, Callsign: "DL5EEE", Name: "Eve"},
		{ID: 1, Callsign: "DL1AAA", Name: "Alice"},
		{ID: 3, Callsign: "DL3CCC", Name: "Carol"},
		{ID: 2, Callsign: "DL2BBB", Name: "Bob"},
		{ID: 4, Callsign: "DL4DDD", Name: "Dan"},
	}
}

func TestEncodeSortsByID(t *testing.T) {
	image, result, err := Encode(testSource(), Selection{})
	require.NoError(t, err)
	assert.Equal(t, Result{Encoded: 5}, result)
	require.Len(t, image, ImageSize)

	require.Equal(t, 5, RecordCount(image))
	for i, want := range []uint32{1, 2, 3, 4, 5} {
		assert.Equal(t, want, ReadRecord(image, i).ID)
	}
	assert.Equal(t, "DL1AAA", ReadRecord(image, 0).Callsign)
	assert.Equal(t, "Eve", ReadRecord(image, 4).Name)
}

func TestEncodeDeterministic(t *testing.T) {
	a, _, err := Encode(testSource(), Selection{})
	require.NoError(t, err)
	b, _, err := Encode(testSource(), Selection{})
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

func TestEncodeRecordLayout(t *testing.T) {
	src := userdb.StaticSource{{ID: 0x123456, Callsign: "DM3MAT", Name: "Hannes"}}
	image, _, err := Encode(src, Selection{})
	require.NoError(t, err)

	// 24 bit big-endian record count
	assert.Equal(t, []byte{0x00, 0x00, 0x01}, image[:3])

	rec := image[recordOffset : recordOffset+recordSize]
	// 24 bit little-endian ID followed by a 0xff pad byte
	assert.Equal(t, []byte{0x56, 0x34, 0x12, 0xFF}, rec[:4])
	// NUL terminated, zero padded callsign and name fields
	assert.Equal(t, append([]byte("DM3MAT"), make([]byte, callsignSize-6)...), rec[4:4+callsignSize])
	assert.Equal(t, append([]byte("Hannes"), make([]byte, nameSize-6)...), rec[4+callsignSize:])

	// unused table space stays filled with 0xff
	assert.Equal(t, byte(0xFF), image[recordOffset+recordSize])
	assert.Equal(t, byte(0xFF), image[ImageSize-1])
}

func TestEncodeTruncatesOverlongStrings(t *testing.T) {
	long := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	src := userdb.StaticSource{{ID: 1, Callsign: long, Name: long}}
	image, _, err := Encode(src, Selection{})
	require.NoError(t, err)

	rec := ReadRecord(image, 0)
	assert.Equal(t, long[:callsignSize-1], rec.Callsign)
	assert.Equal(t, long, rec.Name)
}

func TestEncodeLimitKeepsPriorityOrder(t *testing.T) {
	// the source is priority ordered, the limit cuts its tail before the
	// survivors are sorted by ID
	image, result, err := Encode(testSource(), Selection{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, Result{Encoded: 3, Dropped: 2, Truncated: true}, result)

	require.Equal(t, 3, RecordCount(image))
	for i, want := range []uint32{1, 3, 5} {
		assert.Equal(t, want, ReadRecord(image, i).ID)
	}
}

func TestEncodeDeviceCapacity(t *testing.T) {
	const extra = 3
	users := make(userdb.StaticSource, DatabaseCapacity+extra)
	for i := range users {
		users[i] = userdb.User{ID: uint32(i + 1), Callsign: "CALL"}
	}

	image, result, err := Encode(users, Selection{})
	require.NoError(t, err)
	assert.Equal(t, Result{Encoded: DatabaseCapacity, Dropped: extra, Truncated: true}, result)
	assert.Equal(t, DatabaseCapacity, RecordCount(image))

	// exactly capacity survives and the table stays sorted
	assert.Equal(t, uint32(1), ReadRecord(image, 0).ID)
	assert.Equal(t, uint32(DatabaseCapacity), ReadRecord(image, DatabaseCapacity-1).ID)
}

func TestEncodeEmptySourceFails(t *testing.T) {
	_, _, err := Encode(userdb.StaticSource{}, Selection{})
	require.Error(t, err)
}

func TestEncodeRejectsInvalidIDs(t *testing.T) {
	_, _, err := Encode(userdb.StaticSource{{ID: 0}}, Selection{})
	require.Error(t, err)

	_, _, err = Encode(userdb.StaticSource{{ID: 0xFFFFFF}}, Selection{})
	require.Error(t, err)
}

func TestEncodeRejectsDuplicates(t *testing.T) {
	src := userdb.StaticSource{{ID: 7, Callsign: "A"}, {ID: 7, Callsign: "B"}}
	_, _, err := Encode(src, Selection{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLookup(t *testing.T) {
	image, _, err := Encode(testSource(), Selection{})
	require.NoError(t, err)

	for _, id := range []uint32{1, 2, 3, 4, 5} {
		rec, ok := Lookup(image, id)
		require.True(t, ok, "ID %d", id)
		assert.Equal(t, id, rec.ID)
	}

	_, ok := Lookup(image, 6)
	assert.False(t, ok)
	_, ok = Lookup(image, 0x654321)
	assert.False(t, ok)
}

func TestLookupWithDenseIndex(t *testing.T) {
	// more records than index slots forces a stride above one, the lookup
	// then scans from the sampled offset. IDs are spread so that many of
	// them share the high 12 bits the index keys hold.
	const n = 3 * IndexSize
	users := make(userdb.StaticSource, n)
	for i := range users {
		users[i] = userdb.User{ID: uint32(1000 + i*7), Callsign: "CALL"}
	}
	image, result, err := Encode(users, Selection{})
	require.NoError(t, err)
	require.Equal(t, n, result.Encoded)

	for _, i := range []int{0, 1, n / 3, n/3 + 1, n - 2, n - 1} {
		rec, ok := Lookup(image, users[i].ID)
		require.True(t, ok, "record %d", i)
		assert.Equal(t, users[i].ID, rec.ID)
	}

	// IDs between two records are not found
	_, ok := Lookup(image, 1001)
	assert.False(t, ok)
}

func TestLookupEveryEncodedID(t *testing.T) {
	const n = 500
	users := make(userdb.StaticSource, n)
	for i := range users {
		users[i] = userdb.User{ID: uint32((i + 1) * 4099), Callsign: "CALL"}
	}
	image, _, err := Encode(users, Selection{})
	require.NoError(t, err)

	for i := range users {
		rec, ok := Lookup(image, users[i].ID)
		require.True(t, ok, "ID %d", users[i].ID)
		assert.Equal(t, users[i].ID, rec.ID)
	}
}
