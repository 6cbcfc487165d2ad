// Package userdb loads and prepares the DMR user database that backs the
// on-device callsign lookup. It turns an arbitrary size source database
// into the validated, de-duplicated, priority ordered view the binary
// encoder consumes.
package userdb

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maximum DMR ID, a 24 bit number; 0 is reserved invalid
const maxID = 0xFFFFFF

// User is a single entry of the DMR user database.
type User struct {
	ID       uint32
	Callsign string
	Name     string
}

// jsonUser mirrors the radioid.net user database records.
type jsonUser struct {
	ID       uint32 `json:"id"`
	Callsign string `json:"callsign"`
	Surname  string `json:"surname"`
	FName    string `json:"fname"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
}

type jsonDatabase struct {
	Users []jsonUser `json:"users"`
}

// Read parses a radioid.net style user database. Callsigns and names are
// folded to plain ASCII, the encoding target stores ASCII only.
func Read(r io.Reader) ([]User, error) {
	var db jsonDatabase
	if err := json.NewDecoder(r).Decode(&db); err != nil {
		return nil, fmt.Errorf("failed to parse user database: %w", err)
	}
	users := make([]User, 0, len(db.Users))
	for _, u := range db.Users {
		name := strings.TrimSpace(u.FName + " " + u.Surname)
		for _, part := range []string{u.City, u.State, u.Country} {
			if part != "" {
				if name != "" {
					name += ", "
				}
				name += part
			}
		}
		users = append(users, User{
			ID:       u.ID,
			Callsign: FoldASCII(u.Callsign),
			Name:     FoldASCII(name),
		})
	}
	return users, nil
}

// FoldASCII strips diacritics and drops any remaining non ASCII runes.
func FoldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DuplicatePolicy decides what happens when the source database contains
// several records with the same DMR ID.
type DuplicatePolicy int

const (
	FirstWins DuplicatePolicy = iota // keep the first occurrence
	LastWins                         // keep the last occurrence
	Reject                           // fail on the first duplicate
)

// ParseDuplicatePolicy maps a policy name to its value.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "first":
		return FirstWins, nil
	case "last":
		return LastWins, nil
	case "reject":
		return Reject, nil
	}
	return 0, fmt.Errorf("unknown duplicate policy %q, expected first, last or reject", s)
}

// Prepare validates and de-duplicates the source records. Records with an
// invalid ID (0 or beyond 24 bit) are dropped, duplicate IDs are resolved
// according to the policy. Input order is preserved.
func Prepare(users []User, policy DuplicatePolicy) ([]User, error) {
	seen := make(map[uint32]int, len(users))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.ID == 0 || u.ID > maxID {
			continue
		}
		if at, dup := seen[u.ID]; dup {
			switch policy {
			case FirstWins:
				continue
			case LastWins:
				out[at] = u
				continue
			case Reject:
				return nil, fmt.Errorf("duplicate DMR ID %d", u.ID)
			}
		}
		seen[u.ID] = len(out)
		out = append(out, u)
	}
	return out, nil
}

// callDistance is the priority metric between two DMR IDs. The shorter
// decimal number is padded with trailing zeros to the length of the longer
// one, the distance is the absolute difference. IDs sharing leading decimal
// digits (same region prefix) therefore end up close to each other.
func callDistance(a, b uint32) uint64 {
	x, y := uint64(a), uint64(b)
	for decimalDigits(x) < decimalDigits(y) {
		x *= 10
	}
	for decimalDigits(y) < decimalDigits(x) {
		y *= 10
	}
	if x > y {
		return x - y
	}
	return y - x
}

func decimalDigits(v uint64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// OrderByCloseness sorts the records by the distance of their ID to the
// operator's own DMR ID, closest first. Ties break towards the smaller ID
// so the ordering stays deterministic.
func OrderByCloseness(users []User, ownID uint32) {
	sort.SliceStable(users, func(i, j int) bool {
		di, dj := callDistance(users[i].ID, ownID), callDistance(users[j].ID, ownID)
		if di != dj {
			return di < dj
		}
		return users[i].ID < users[j].ID
	})
}

// Source is a priority ordered, validated view over a user database. The
// binary encoder only needs the record count and indexed access in priority
// order.
type Source interface {
	Len() int
	User(i int) User
}

// StaticSource serves records in slice order.
type StaticSource []User

// Len returns the record count.
func (s StaticSource) Len() int { return len(s) }

// User returns the record at the given priority position.
func (s StaticSource) User(i int) User { return s[i] }
