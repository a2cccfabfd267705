package docxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// WriteResult is the outcome of Write. When Changed is false, the caller
// must forward the original request body verbatim; DocCount is still
// populated for counters. When Changed is true, Bytes holds a freshly
// materialized <add>...</add> envelope to forward instead.
type WriteResult struct {
	Changed  bool
	DocCount int
	Bytes    []byte
}

// Write reconstructs an <add>...</add> buffer from docs in input order. A
// doc whose Fields.Changed is false is emitted byte-for-byte from its
// original Raw slice; a changed doc is synthesized from its field map,
// whose entity-decoded owned values are re-encoded and whose borrowed
// values are emitted exactly as captured by the reader. If no doc changed,
// or the aggregate original length is zero, Write returns Unchanged and
// does no allocation beyond the result struct.
func Write(docs []Doc) WriteResult {
	anyChanged := false
	totalLen := 0
	for _, d := range docs {
		if d.Fields.Changed {
			anyChanged = true
		}
		totalLen += len(d.Raw)
	}
	if !anyChanged || totalLen == 0 {
		return WriteResult{DocCount: len(docs)}
	}

	buf := bytes.NewBuffer(make([]byte, 0, totalLen*2))
	buf.WriteString("<add>")
	for _, d := range docs {
		if !d.Fields.Changed {
			buf.Write(d.Raw)
			continue
		}
		writeChangedDoc(buf, d.Fields)
	}
	buf.WriteString("</add>")

	return WriteResult{Changed: true, DocCount: len(docs), Bytes: buf.Bytes()}
}

// writeChangedDoc emits a single <doc> from its field map. Field iteration
// follows DocField's insertion order, not necessarily the original
// document's field order (SPEC_FULL.md §9) — the backend accepts this.
func writeChangedDoc(buf *bytes.Buffer, f *DocField) {
	buf.WriteString("<doc>")
	for _, name := range f.Names() {
		for _, v := range f.Values(name) {
			fmt.Fprintf(buf, `<field name="%s">`, name)
			if v.IsOwned() {
				xml.EscapeText(buf, []byte(v.Owned))
			} else {
				buf.Write(v.Borrowed)
			}
			buf.WriteString("</field>")
		}
	}
	buf.WriteString("</doc>")
}
