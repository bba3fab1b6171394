// Package workbook is the in-memory document the depot engine reads and
// writes: named sections of A1-addressed cells, appended row by row.
package workbook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrMalformedDocument marks a stored document that cannot be decoded.
var ErrMalformedDocument = errors.New("malformed workbook document")

const formatVersion = 1

// Document is a set of named sections.
type Document struct {
	sections map[string]*Section
	order    []string
}

// NewDocument returns a document without sections.
func NewDocument() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// Section returns the named section, creating it when missing.
func (d *Document) Section(name string) *Section {
	if s, ok := d.sections[name]; ok {
		return s
	}
	s := newSection(name)
	d.sections[name] = s
	d.order = append(d.order, name)
	return s
}

// Lookup returns the named section without creating it.
func (d *Document) Lookup(name string) (*Section, bool) {
	s, ok := d.sections[name]
	return s, ok
}

// Sections lists sections in creation order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.sections[name])
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for _, name := range d.order {
		src := d.sections[name]
		dst := c.Section(name)
		for k, v := range src.cells {
			dst.cells[k] = v
		}
		for k, v := range src.styles {
			dst.styles[k] = v
		}
		dst.rows, dst.cols = src.rows, src.cols
	}
	return c
}

type encodedCell struct {
	Value Cell  `json:"v"`
	Style Style `json:"s,omitempty"`
}

type encodedSection struct {
	Name  string                 `json:"name"`
	Rows  int                    `json:"rows"`
	Cols  int                    `json:"cols"`
	Cells map[string]encodedCell `json:"cells"`
}

type encodedDocument struct {
	Version  int              `json:"version"`
	Sections []encodedSection `json:"sections"`
}

// MarshalJSON encodes the document for blob storage.
func (d *Document) MarshalJSON() ([]byte, error) {
	doc := encodedDocument{Version: formatVersion}
	for _, s := range d.Sections() {
		es := encodedSection{Name: s.name, Rows: s.rows, Cols: s.cols, Cells: make(map[string]encodedCell)}
		for key, c := range s.cells {
			es.Cells[Address(key.col, key.row)] = encodedCell{Value: c, Style: s.styles[key]}
		}
		for key, style := range s.styles {
			addr := Address(key.col, key.row)
			if _, ok := es.Cells[addr]; !ok {
				es.Cells[addr] = encodedCell{Style: style}
			}
		}
		doc.Sections = append(doc.Sections, es)
	}
	return json.Marshal(doc)
}

// Encode writes the document as JSON.
func (d *Document) Encode(w io.Writer) error {
	raw, err := d.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

// Decode reads a document produced by Encode. Any structural problem is
// reported as ErrMalformedDocument.
func Decode(r io.Reader) (*Document, error) {
	var doc encodedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedDocument, doc.Version)
	}

	out := NewDocument()
	for _, es := range doc.Sections {
		if es.Name == "" {
			return nil, fmt.Errorf("%w: unnamed section", ErrMalformedDocument)
		}
		if _, dup := out.sections[es.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate section %s", ErrMalformedDocument, es.Name)
		}
		s := out.Section(es.Name)

		addrs := make([]string, 0, len(es.Cells))
		for addr := range es.Cells {
			addrs = append(addrs, addr)
		}
		sort.Strings(addrs)
		for _, addr := range addrs {
			col, row, err := ParseAddress(addr)
			if err != nil {
				return nil, fmt.Errorf("%w: section %s: %v", ErrMalformedDocument, es.Name, err)
			}
			ec := es.Cells[addr]
			s.SetAt(col, row, ec.Value, ec.Style)
		}
		s.Reserve(es.Rows, es.Cols)
	}
	return out, nil
}

// Unmarshal decodes a document from bytes.
func Unmarshal(raw []byte) (*Document, error) {
	return Decode(bytes.NewReader(raw))
}
