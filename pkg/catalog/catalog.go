// Package catalog reads and builds Singer catalogs.
//
// A catalog lists the streams a tap can emit together with their schemas.
// Streams are synced only when their top level metadata entry carries
// `selected: true`. Catalogs are accepted as JSON or YAML.
package catalog

import (
	"github.com/gnames/tapadyen/pkg/stream"
	"gopkg.in/yaml.v3"
)

// Catalog is a list of stream entries.
type Catalog struct {
	Streams []Entry `json:"streams" yaml:"streams"`
}

// Entry describes one stream of the catalog.
type Entry struct {
	TapStreamID   string         `json:"tap_stream_id" yaml:"tap_stream_id"`
	Stream        string         `json:"stream" yaml:"stream"`
	KeyProperties []string       `json:"key_properties" yaml:"key_properties"`
	Schema        map[string]any `json:"schema" yaml:"schema"`
	Metadata      []Metadata     `json:"metadata" yaml:"metadata"`
	// LegacySelected is the stream level "selected" flag of older catalogs.
	LegacySelected bool `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Metadata is a Singer metadata entry. The empty breadcrumb addresses the
// stream itself.
type Metadata struct {
	Breadcrumb []string       `json:"breadcrumb" yaml:"breadcrumb"`
	Metadata   map[string]any `json:"metadata" yaml:"metadata"`
}

// Selected reports whether the stream is selected for sync, either by
// its metadata or by the legacy stream level flag.
func (e Entry) Selected() bool {
	if e.LegacySelected {
		return true
	}
	for _, m := range e.Metadata {
		if len(m.Breadcrumb) != 0 {
			continue
		}
		sel, _ := m.Metadata["selected"].(bool)
		return sel
	}
	return false
}

// Select sets the selection flag of the stream.
func (e *Entry) Select(selected bool) {
	if !selected {
		e.LegacySelected = false
	}
	for i := range e.Metadata {
		if len(e.Metadata[i].Breadcrumb) != 0 {
			continue
		}
		if e.Metadata[i].Metadata == nil {
			e.Metadata[i].Metadata = make(map[string]any)
		}
		e.Metadata[i].Metadata["selected"] = selected
		return
	}
	e.Metadata = append(e.Metadata, Metadata{
		Breadcrumb: []string{},
		Metadata:   map[string]any{"selected": selected},
	})
}

// Kind returns the stream kind of the entry.
func (e Entry) Kind() (stream.Kind, error) {
	return stream.ParseKind(e.TapStreamID)
}

// Discover builds the catalog of every known stream. When schemaless is
// true, schemas describe raw report rows. No stream is selected.
func Discover(schemaless bool) Catalog {
	all := stream.All()
	res := Catalog{Streams: make([]Entry, 0, len(all))}
	for _, d := range all {
		sch := d.Schema()
		if schemaless {
			sch = d.RawSchema()
		}
		e := Entry{
			TapStreamID:   d.ID,
			Stream:        d.ID,
			KeyProperties: d.KeyProperties,
			Schema:        sch,
			Metadata: []Metadata{
				{
					Breadcrumb: []string{},
					Metadata: map[string]any{
						"selected":                  false,
						"table-key-properties":      d.KeyProperties,
						"forced-replication-method": "INCREMENTAL",
						"valid-replication-keys":    []string{d.Bookmark},
						"inclusion":                 "available",
					},
				},
			},
		}
		res.Streams = append(res.Streams, e)
	}
	return res
}

// Parse reads a catalog document. JSON documents are valid YAML, so a
// single decoder serves both.
func Parse(data []byte) (Catalog, error) {
	var res Catalog
	if err := yaml.Unmarshal(data, &res); err != nil {
		return Catalog{}, ParseError(err)
	}
	for i := range res.Streams {
		if res.Streams[i].Stream == "" {
			res.Streams[i].Stream = res.Streams[i].TapStreamID
		}
	}
	return res, nil
}

// Validate makes sure every stream of the catalog is known.
func (c Catalog) Validate() error {
	for _, e := range c.Streams {
		if _, err := e.Kind(); err != nil {
			return UnknownStreamError(e.TapStreamID, err)
		}
	}
	return nil
}

// SelectedStreams returns selected entries in catalog order.
func (c Catalog) SelectedStreams() []Entry {
	var res []Entry
	for _, e := range c.Streams {
		if e.Selected() {
			res = append(res, e)
		}
	}
	return res
}

// SelectOnly selects the streams named in ids and deselects the rest.
// An empty ids list keeps the catalog selection.
func (c *Catalog) SelectOnly(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, err := stream.ParseKind(id); err != nil {
			return UnknownStreamError(id, err)
		}
		want[id] = true
	}
	for i := range c.Streams {
		c.Streams[i].Select(want[c.Streams[i].TapStreamID])
	}
	return nil
}
