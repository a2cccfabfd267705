package docxml

import (
	"bytes"
	"encoding/xml"
	"io"
)

// docFieldCapacityHint is the empirical field-count estimate used to size
// each Doc's field map up front. Tunable, not a contract (SPEC_FULL.md §9).
const docFieldCapacityHint = 36

// Read parses body — the raw bytes of an <add>...</add> envelope — into an
// ordered sequence of Doc values. Every Doc's Fields values borrow directly
// from body; the returned slice must not outlive body.
//
// Read is a thin state machine over encoding/xml's token stream: it uses
// the stream only to find tag and text-event boundaries, then re-slices
// body at those boundaries so every borrowed byte — including un-decoded
// entity references inside field text — is the exact original byte run,
// never a copy or a re-encoding.
func Read(body []byte) ([]Doc, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Strict = false

	var (
		docs        []Doc
		inDoc       bool
		docStart    int64
		fields      *DocField
		pendingName []byte
	)

	for {
		tokStart := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			if inDoc {
				return nil, wrapParseErr("unexpected EOF: <doc> left open", nil)
			}
			return docs, nil
		}
		if err != nil {
			return nil, wrapParseErr("malformed update XML", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "doc":
				inDoc = true
				docStart = tokStart
				fields = NewDocField(docFieldCapacityHint)
				pendingName = nil
			case "field":
				pendingName = nil
				if inDoc {
					if name, ok := fieldNameFromRawTag(body, tokStart, dec.InputOffset()); ok {
						pendingName = name
					}
				}
			default:
				pendingName = nil
			}

		case xml.CharData:
			if inDoc && pendingName != nil {
				// Re-slice the raw source bytes for this text event instead
				// of trusting t, which encoding/xml has already entity-
				// decoded — the borrowed value must keep entities intact.
				raw := body[tokStart:dec.InputOffset()]
				fields.PushBorrowed(pendingName, raw)
				pendingName = nil
			}

		case xml.EndElement:
			if !inDoc {
				continue
			}
			if t.Name.Local == "doc" {
				raw := body[docStart:dec.InputOffset()]
				doc := Doc{Fields: fields, Raw: raw}
				if err := doc.ValidateSlice(); err != nil {
					return nil, err
				}
				docs = append(docs, doc)
				inDoc = false
				fields = nil
			}
			pendingName = nil
		}
	}
}

// fieldNameFromRawTag locates the "name" attribute of a <field ...> start
// tag whose source bytes span body[start:end], and returns its value as a
// slice borrowed from body.
func fieldNameFromRawTag(body []byte, start, end int64) ([]byte, bool) {
	raw := body[start:end]
	if len(raw) < 2 || raw[0] != '<' {
		return nil, false
	}

	i := 1
	for i < len(raw) && !isAttrSpace(raw[i]) && raw[i] != '>' && raw[i] != '/' {
		i++
	}

	tail := len(raw)
	if tail > 0 && raw[tail-1] == '>' {
		tail--
	}
	if tail > 0 && raw[tail-1] == '/' {
		tail--
	}
	if i > tail {
		return nil, false
	}

	return FindAttr(raw[i:tail], "name")
}
