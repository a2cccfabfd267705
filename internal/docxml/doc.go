package docxml

import "bytes"

// BytesOrStr is one value carried by a field. A Doc's field map only ever
// holds values of this type so the writer can tell, per value, whether the
// original request bytes may be reused verbatim or whether fresh text must
// be entity-encoded.
type BytesOrStr struct {
	// Borrowed is set for a value taken directly from the request body: the
	// original text event bytes, entity references included. The writer
	// emits these bytes unchanged.
	Borrowed []byte

	// Owned is set for a value injected by the enrichment stage (currently
	// only seed_id). It is already in literal form and must be
	// entity-encoded on write.
	Owned string
	isOwned bool

	// Replaced optionally retains the borrowed slice an owned value
	// superseded. Nothing in this implementation reads it back; it exists
	// so a future rewrite rule (e.g. "restore the original seed_id on
	// retry") has somewhere to put the old bytes without changing the
	// type. See SPEC_FULL.md §9.
	Replaced []byte
}

// BorrowedValue returns a BytesOrStr wrapping a slice of the original
// request bytes.
func BorrowedValue(b []byte) BytesOrStr {
	return BytesOrStr{Borrowed: b}
}

// OwnedValue returns a BytesOrStr wrapping a freshly computed string.
func OwnedValue(s string) BytesOrStr {
	return BytesOrStr{Owned: s, isOwned: true}
}

// IsOwned reports whether this value was injected by enrichment rather than
// taken verbatim from the request.
func (v BytesOrStr) IsOwned() bool {
	return v.isOwned
}

// Text returns the value's text form: the borrowed bytes as a string, or
// the owned string directly.
func (v BytesOrStr) Text() string {
	if v.isOwned {
		return v.Owned
	}
	return string(v.Borrowed)
}

// fieldEntry holds every value pushed under one field name, in push order.
type fieldEntry struct {
	name   []byte
	values []BytesOrStr
}

// DocField is the ordered multimap from field name to a vector of values
// carried by a Doc. Key identity is byte equality of the name (case
// sensitive); iteration order follows first-insertion order of each key,
// not the order fields appeared in the original document once any value
// has been appended (see SPEC_FULL.md §9 on the original multimap not
// being insertion-ordered across rewrites upstream — this implementation
// keeps it insertion-ordered throughout, closing that open question).
type DocField struct {
	order   []string
	entries map[string]*fieldEntry
	// Changed is true iff at least one owned value has ever been appended
	// to any key.
	Changed bool
}

// NewDocField returns an empty field map with room for approximately n
// fields, mirroring the reader's per-doc capacity hint.
func NewDocField(n int) *DocField {
	return &DocField{
		entries: make(map[string]*fieldEntry, n),
	}
}

// PushBorrowed appends a borrowed value under name, taken verbatim from the
// request body. It never sets Changed.
func (f *DocField) PushBorrowed(name []byte, value []byte) {
	f.push(name, BorrowedValue(value))
}

// PushOwned appends an owned value under name, injected by enrichment. It
// always sets Changed.
func (f *DocField) PushOwned(name string, value string) {
	f.push([]byte(name), OwnedValue(value))
	f.Changed = true
}

func (f *DocField) push(name []byte, v BytesOrStr) {
	key := string(name)
	entry, ok := f.entries[key]
	if !ok {
		entry = &fieldEntry{name: append([]byte(nil), name...)}
		f.entries[key] = entry
		f.order = append(f.order, key)
	}
	entry.values = append(entry.values, v)
}

// Has reports whether name has at least one value.
func (f *DocField) Has(name string) bool {
	_, ok := f.entries[name]
	return ok
}

// Values returns the values under name in push order, or nil if absent.
func (f *DocField) Values(name string) []BytesOrStr {
	entry, ok := f.entries[name]
	if !ok {
		return nil
	}
	return entry.values
}

// First returns the first value under name and true, or the zero value and
// false if name is absent or has no values.
func (f *DocField) First(name string) (BytesOrStr, bool) {
	vs := f.Values(name)
	if len(vs) == 0 {
		return BytesOrStr{}, false
	}
	return vs[0], true
}

// Names returns field names in first-insertion order.
func (f *DocField) Names() []string {
	return f.order
}

// Len returns the number of distinct field names.
func (f *DocField) Len() int {
	return len(f.order)
}

// RawName returns the original byte slice recorded for a field name, or nil
// if absent.
func (f *DocField) RawName(name string) []byte {
	entry, ok := f.entries[name]
	if !ok {
		return nil
	}
	return entry.name
}

// Doc is a parsed <doc> element: its field multimap plus the exact original
// byte slice spanning from the opening "<doc" through the closing "</doc>".
type Doc struct {
	Fields *DocField
	Raw    []byte
}

// ValidateSlice enforces the Doc slice invariant: Raw must begin with
// "<doc" and end with "</doc>".
func (d *Doc) ValidateSlice() error {
	if !bytes.HasPrefix(d.Raw, []byte("<doc")) || !bytes.HasSuffix(d.Raw, []byte("</doc>")) {
		return wrapParseErr("doc slice does not start with <doc and end with </doc>", nil)
	}
	return nil
}
