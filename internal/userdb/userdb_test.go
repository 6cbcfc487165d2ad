package userdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	src := `{"users":[
		{"id":2621370,"callsign":"DM3MAT","fname":"Hannes","surname":"Matuschek","city":"Berlin","state":"Berlin","country":"Germany"},
		{"id":2621001,"callsign":"DL1XYZ","fname":"Jörg","surname":"Müller","country":"Germany"}
	]}`

	users, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, uint32(2621370), users[0].ID)
	assert.Equal(t, "DM3MAT", users[0].Callsign)
	assert.Equal(t, "Hannes Matuschek, Berlin, Berlin, Germany", users[0].Name)

	// diacritics are folded away, empty address parts are skipped
	assert.Equal(t, "Jorg Muller, Germany", users[1].Name)
}

func TestReadInvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader("not json"))
	require.Error(t, err)
}

func TestFoldASCII(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"DM3MAT", "DM3MAT"},
		{"Müller", "Muller"},
		{"Renée", "Renee"},
		{"Åsa Ørsted", "Asa rsted"}, // Ø has no combining decomposition
		{"東京", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldASCII(tt.in), "FoldASCII(%q)", tt.in)
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	for name, want := range map[string]DuplicatePolicy{
		"first": FirstWins, "last": LastWins, "reject": Reject,
	} {
		got, err := ParseDuplicatePolicy(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseDuplicatePolicy("keep")
	assert.Error(t, err)
}

func TestPrepareDropsInvalidIDs(t *testing.T) {
	users := []User{
		{ID: 0, Callsign: "N0ONE"},
		{ID: 2621370, Callsign: "DM3MAT"},
		{ID: 0x1000000, Callsign: "TOOBIG"},
	}
	out, err := Prepare(users, FirstWins)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "DM3MAT", out[0].Callsign)
}

func TestPrepareDuplicates(t *testing.T) {
	users := []User{
		{ID: 1, Callsign: "A"},
		{ID: 2, Callsign: "B"},
		{ID: 1, Callsign: "C"},
	}

	out, err := Prepare(users, FirstWins)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Callsign)
	assert.Equal(t, "B", out[1].Callsign)

	out, err = Prepare(users, LastWins)
	require.NoError(t, err)
	require.Len(t, out, 2)
	// last occurrence wins but keeps the first occurrence's position
	assert.Equal(t, "C", out[0].Callsign)
	assert.Equal(t, "B", out[1].Callsign)

	_, err = Prepare(users, Reject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate DMR ID 1")
}

func TestCallDistance(t *testing.T) {
	// same length, plain difference
	assert.Equal(t, uint64(0), callDistance(2621370, 2621370))
	assert.Equal(t, uint64(10), callDistance(2621370, 2621380))
	// shorter number is padded with trailing zeros, a shared decimal
	// prefix keeps the distance small
	assert.Equal(t, uint64(1370), callDistance(262, 2621370))
	assert.Equal(t, callDistance(262, 2621370), callDistance(2621370, 262))
}

func TestOrderByCloseness(t *testing.T) {
	users := []User{
		{ID: 3141592, Callsign: "FAR"},
		{ID: 2621380, Callsign: "NEAR"},
		{ID: 2621370, Callsign: "SELF"},
		{ID: 2629999, Callsign: "REGION"},
	}
	OrderByCloseness(users, 2621370)

	got := make([]string, len(users))
	for i, u := range users {
		got[i] = u.Callsign
	}
	assert.Equal(t, []string{"SELF", "NEAR", "REGION", "FAR"}, got)
}

func TestOrderByClosenessDeterministicTies(t *testing.T) {
	// both IDs are 5 away from the own ID, the smaller one sorts first
	users := []User{{ID: 205}, {ID: 195}}
	OrderByCloseness(users, 200)
	assert.Equal(t, uint32(195), users[0].ID)
	assert.Equal(t, uint32(205), users[1].ID)
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{{ID: 1, Callsign: "A"}, {ID: 2, Callsign: "B"}}
	assert.Equal(t, 2, src.Len())
	assert.Equal(t, "B", src.User(1).Callsign)
}
