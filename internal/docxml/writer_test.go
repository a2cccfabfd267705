package docxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEmptyDocsIsUnchanged(t *testing.T) {
	res := Write(nil)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, res.DocCount)
	assert.Nil(t, res.Bytes)
}

func TestWriteRoundTripWhenNothingChanged(t *testing.T) {
	body := []byte(`<add><doc><field name="url">a</field><field name="seed_id">x</field></doc></add>`)
	docs, err := Read(body)
	require.NoError(t, err)

	res := Write(docs)
	assert.False(t, res.Changed)
	assert.Equal(t, 1, res.DocCount)
}

func TestWriteFidelityOnUnchangedDocsWithinChangedEnvelope(t *testing.T) {
	body := []byte(`<add>` +
		`<doc><field name="url">a</field><field name="seed_id">already</field></doc>` +
		`<doc><field name="url">b</field></doc>` +
		`</add>`)
	docs, err := Read(body)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Mutate only the second doc, as the enrichment driver would.
	docs[1].Fields.PushOwned("seed_id", "new-id")

	res := Write(docs)
	require.True(t, res.Changed)

	out := string(res.Bytes)
	assert.Contains(t, out, `<doc><field name="url">a</field><field name="seed_id">already</field></doc>`)
	assert.Contains(t, out, `<field name="seed_id">new-id</field>`)
}

func TestWriteEscapesOwnedValues(t *testing.T) {
	f := NewDocField(1)
	f.PushOwned("seed_id", `a & b < c`)
	doc := Doc{Fields: f, Raw: []byte(`<doc></doc>`)}

	res := Write([]Doc{doc})
	require.True(t, res.Changed)
	assert.Contains(t, string(res.Bytes), "a &amp; b &lt; c")
}

func TestWriteTwoSeedIDValuesDocIsUnchanged(t *testing.T) {
	body := []byte(`<add><doc><field name="seed_id">one</field><field name="seed_id">two</field></doc></add>`)
	docs, err := Read(body)
	require.NoError(t, err)

	// Not changed: enrichment never touched this doc, so Write reports
	// Unchanged and the caller forwards the original bytes, both seed_id
	// values included.
	res := Write(docs)
	assert.False(t, res.Changed)
}
