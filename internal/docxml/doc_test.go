package docxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocFieldChangedOnlyOnOwnedInsert(t *testing.T) {
	f := NewDocField(4)
	assert.False(t, f.Changed)

	f.PushBorrowed([]byte("url"), []byte("http://a.example/"))
	assert.False(t, f.Changed)

	f.PushOwned("seed_id", "abc-123")
	assert.True(t, f.Changed)
}

func TestDocFieldPreservesInsertionOrderAcrossKeys(t *testing.T) {
	f := NewDocField(4)
	f.PushBorrowed([]byte("b"), []byte("1"))
	f.PushBorrowed([]byte("a"), []byte("2"))
	f.PushOwned("c", "3")

	assert.Equal(t, []string{"b", "a", "c"}, f.Names())
}

func TestDocFieldKeyIdentityIsByteEqual(t *testing.T) {
	f := NewDocField(2)
	f.PushBorrowed([]byte("Url"), []byte("1"))
	f.PushBorrowed([]byte("url"), []byte("2"))

	assert.True(t, f.Has("Url"))
	assert.True(t, f.Has("url"))
	assert.Equal(t, 2, f.Len())
}

func TestDocValidateSlice(t *testing.T) {
	good := Doc{Fields: NewDocField(1), Raw: []byte("<doc></doc>")}
	assert.NoError(t, good.ValidateSlice())

	bad := Doc{Fields: NewDocField(1), Raw: []byte("<doc>oops")}
	assert.Error(t, bad.ValidateSlice())
}

func TestBytesOrStrText(t *testing.T) {
	b := BorrowedValue([]byte("raw&amp;"))
	assert.Equal(t, "raw&amp;", b.Text())
	assert.False(t, b.IsOwned())

	o := OwnedValue("fresh")
	assert.Equal(t, "fresh", o.Text())
	assert.True(t, o.IsOwned())
}
