package codeplug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTestConfig assembles a small but fully cross referenced codeplug.
func buildTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewConfig()
	require.NoError(t, cfg.SetID(2621370))
	cfg.SetName("DM3MAT")
	cfg.SetIntroLine1("qdmr")
	require.NoError(t, cfg.SetMICLevel(2))

	world, err := NewDigitalContact("WW", GroupCall, 91)
	require.NoError(t, err)
	regional, err := NewDigitalContact("Regional", GroupCall, 2629)
	require.NoError(t, err)
	aprs, err := NewDigitalContact("APRS", PrivateCall, 262999)
	require.NoError(t, err)
	gate, err := NewDTMFContact("Gate", "*123#")
	require.NoError(t, err)
	for _, c := range []Contact{world, regional, aprs, gate} {
		require.GreaterOrEqual(t, cfg.Contacts().Add(c), 0)
	}

	group, err := NewRXGroupList("Default")
	require.NoError(t, err)
	cfg.RXGroupLists().Add(group)
	group.AddContact(world)
	group.AddContact(regional)

	gps, err := NewGPSSystem("Tracker", aprs, 300)
	require.NoError(t, err)
	cfg.GPSSystems().Add(gps)

	digi, err := NewDigitalChannel("DB0ABC TS1", 439.5625, 431.9625, group)
	require.NoError(t, err)
	require.NoError(t, digi.SetColorCode(1))
	require.NoError(t, digi.SetTimeSlot(TimeSlot1))
	digi.SetAdmit(DigitalAdmitColorCode)
	require.NoError(t, digi.SetTXContact(regional))
	cfg.Channels().Add(digi)
	require.NoError(t, digi.SetGPSSystem(gps))

	analog, err := NewAnalogChannel("DB0DEF", 145.675, 145.075)
	require.NoError(t, err)
	require.NoError(t, analog.SetSquelch(3))
	require.NoError(t, analog.SetRXTone(67))
	analog.SetAdmit(AnalogAdmitTone)
	analog.SetBandwidth(BWWide)
	cfg.Channels().Add(analog)

	simplex, err := NewAnalogChannel("Call", 433.5, 433.5)
	require.NoError(t, err)
	cfg.Channels().Add(simplex)

	scan, err := NewScanList("Home")
	require.NoError(t, err)
	cfg.ScanLists().Add(scan)
	scan.AddChannel(digi)
	scan.AddChannel(analog)
	scan.Priority().SetChannel(digi)
	require.NoError(t, digi.SetScanList(scan))

	zone, err := NewZone("Local")
	require.NoError(t, err)
	cfg.Zones().Add(zone)
	zone.A().Add(digi)
	zone.A().Add(analog)
	zone.A().Add(simplex)

	return cfg
}

func export(t *testing.T, cfg *Config) string {
	t.Helper()
	var buf bytes.Buffer
	w := &ConfWriter{}
	require.NoError(t, w.Write(cfg, &buf))
	return buf.String()
}

func TestConfWriterIdempotent(t *testing.T) {
	cfg := buildTestConfig(t)
	first := export(t, cfg)
	second := export(t, cfg)
	assert.Equal(t, first, second, "unchanged graph must export byte identical")
}

func TestConfWriterCrossReferences(t *testing.T) {
	cfg := buildTestConfig(t)
	out := export(t, cfg)

	assert.Contains(t, out, "ID: 2621370\n")
	assert.Contains(t, out, "Name: \"DM3MAT\"\n")
	assert.Contains(t, out, "Speech: Off\n")

	// digital channel row: position 1, scan list 1, group list 1,
	// contact 2, gps 1, followed by the contact name comment. The TX
	// frequency lies below RX, so the repeater offset is printed.
	digitalRow := findRow(t, out, "\"DB0ABC TS1\"")
	assert.Regexp(t, `^1\s+"DB0ABC TS1"\s+439\.5625\s+-7\.6000\s+High\s+1\s+-\s+-\s+Color\s+1\s+1\s+1\s+2\s+1\s+# Regional$`, digitalRow)

	// repeater shift: TX below RX renders the signed offset
	analogRow := findRow(t, out, "\"DB0DEF\"")
	assert.Contains(t, analogRow, "-0.6000")
	assert.Contains(t, analogRow, "Tone")
	assert.Contains(t, analogRow, "25")

	// simplex channel prints the plain TX frequency
	simplexRow := findRow(t, out, "\"Call\"")
	assert.Regexp(t, `433\.5000\s+433\.5000`, simplexRow)
}

func findRow(t *testing.T, out, needle string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, needle) && !strings.HasPrefix(line, "#") {
			return line
		}
	}
	t.Fatalf("no row containing %q", needle)
	return ""
}

func TestConfWriterZoneRows(t *testing.T) {
	cfg := buildTestConfig(t)
	out := export(t, cfg)

	// zone with 3 channels on side A and none on side B exports exactly
	// one row
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "\"Local\"") && !strings.HasPrefix(line, "#") {
			rows++
			assert.Regexp(t, `^1\s+"Local"\s+A\s+1,2,3$`, line)
		}
	}
	assert.Equal(t, 1, rows)
}

func TestConfWriterZoneBothSides(t *testing.T) {
	cfg := buildTestConfig(t)
	zone := cfg.Zones().Zone(0)
	zone.B().Add(cfg.Channels().Channel(2))

	out := export(t, cfg)
	assert.Contains(t, out, "A   1,2,3\n")
	assert.Contains(t, out, "B   3\n")
}

func TestConfWriterScanListRow(t *testing.T) {
	cfg := buildTestConfig(t)
	out := export(t, cfg)

	row := findRow(t, out, "\"Home\"")
	// priority channel 1, no secondary, transmit on selected channel
	assert.Regexp(t, `^1\s+"Home"\s+1\s+-\s+Sel\s+1,2$`, row)
}

func TestConfWriterContactRows(t *testing.T) {
	cfg := buildTestConfig(t)
	out := export(t, cfg)

	assert.Regexp(t, `1\s+"WW"\s+Group\s+91\s+-`, out)
	assert.Regexp(t, `3\s+"APRS"\s+Private\s+262999\s+-`, out)
	assert.Regexp(t, `4\s+"Gate"\s+DTMF\s+"\*123#"\s+-`, out)
}

func TestConfWriterGroupListRow(t *testing.T) {
	cfg := buildTestConfig(t)
	out := export(t, cfg)

	row := findRow(t, out, "\"Default\"")
	assert.Regexp(t, `^1\s+"Default"\s+1,2$`, row)
}

func TestConfWriterDoesNotMutate(t *testing.T) {
	cfg := buildTestConfig(t)
	before := cfg.Channels().Count()
	_ = export(t, cfg)
	assert.Equal(t, before, cfg.Channels().Count())
	// positions unchanged
	for i := 0; i < cfg.Channels().Count(); i++ {
		assert.Equal(t, i, cfg.Channels().IndexOf(cfg.Channels().Channel(i)))
	}
}

func TestConfWriterDetectsForeignReference(t *testing.T) {
	cfg := buildTestConfig(t)

	// force a stale reference: a scan list removed from the owning list
	// but still referenced by a channel
	scan := cfg.ScanLists().ScanList(0)
	cfg.ScanLists().Remove(scan)

	var buf bytes.Buffer
	w := &ConfWriter{}
	err := w.Write(cfg, &buf)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInGraph)
}
