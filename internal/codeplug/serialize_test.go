package codeplug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSerializeIsPureProjection(t *testing.T) {
	cfg := buildTestConfig(t)

	var first, second bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&first))
	require.NoError(t, cfg.WriteYAML(&second))
	assert.Equal(t, first.String(), second.String())
}

func TestContactSerializeNode(t *testing.T) {
	cfg := NewConfig()
	contact, err := NewDigitalContact("Regional", GroupCall, 2629)
	require.NoError(t, err)
	cfg.Contacts().Add(contact)

	node, err := contact.Serialize(NewContext(cfg))
	require.NoError(t, err)

	var dto contactYAML
	require.NoError(t, node.Decode(&dto))
	require.NotNil(t, dto.Digital)
	assert.Equal(t, "cont1", dto.Digital.ID)
	assert.Equal(t, "group", dto.Digital.Type)
	assert.Equal(t, uint32(2629), dto.Digital.Number)
}

func TestSerializeUnownedEntityFails(t *testing.T) {
	cfg := NewConfig()
	contact, err := NewDigitalContact("Orphan", GroupCall, 9)
	require.NoError(t, err)

	_, err = contact.Serialize(NewContext(cfg))
	assert.ErrorIs(t, err, ErrNotInGraph)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := buildTestConfig(t)

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))

	parsed, err := ReadYAML(&buf)
	require.NoError(t, err)

	assert.Equal(t, cfg.ID(), parsed.ID())
	assert.Equal(t, cfg.Name(), parsed.Name())
	assert.Equal(t, cfg.Channels().Count(), parsed.Channels().Count())
	assert.Equal(t, cfg.Contacts().Count(), parsed.Contacts().Count())
	assert.Equal(t, cfg.Zones().Count(), parsed.Zones().Count())

	// the text export of the round tripped graph is identical, both
	// renditions resolve their cross references to the same numbers
	assert.Equal(t, export(t, cfg), export(t, parsed))
}

func TestParseRejectsDanglingReference(t *testing.T) {
	src := `
id: 2621370
micLevel: 2
groupLists:
  - id: grp1
    name: Default
    contacts: [cont9]
`
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	_, err := ParseNode(&node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cont9")
}

func TestParseRejectsDuplicateIdentifiers(t *testing.T) {
	// a digital and an analog channel sharing one identifier must fail the
	// parse, not silently shadow each other
	src := `
id: 2621370
micLevel: 2
groupLists:
  - id: grp1
    name: Default
    contacts: []
channels:
  - digital:
      id: ch1
      name: TS1
      rxFrequency: 439.5625
      txFrequency: 431.9625
      power: High
      timeSlot: 1
      groupList: grp1
  - analog:
      id: ch1
      name: FM
      rxFrequency: 145.575
      txFrequency: 145.575
      power: High
      bandwidth: narrow
`
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	_, err := ParseNode(&node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate identifier")
	assert.Contains(t, err.Error(), "ch1")
}

func TestParseRejectsDuplicateContactIdentifiers(t *testing.T) {
	src := `
id: 2621370
micLevel: 2
contacts:
  - dmr:
      id: cont1
      name: WW
      type: group
      number: 91
  - dtmf:
      id: cont1
      name: Gate
      number: "*123#"
`
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	_, err := ParseNode(&node)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate identifier")
}

func TestParseRejectsInvalidFields(t *testing.T) {
	src := `
id: 2621370
contacts:
  - dmr:
      id: cont1
      name: Broken
      type: group
      number: 0
`
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &node))
	_, err := ParseNode(&node)
	require.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
