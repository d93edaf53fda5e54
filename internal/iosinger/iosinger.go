// Package iosinger writes Singer messages as JSON lines.
// This is an impure I/O package.
package iosinger

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/tapadyen/pkg/clean"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/tap"
)

type schemaMessage struct {
	Type          string         `json:"type"`
	Stream        string         `json:"stream"`
	Schema        map[string]any `json:"schema"`
	KeyProperties []string       `json:"key_properties"`
}

type recordMessage struct {
	Type          string       `json:"type"`
	Stream        string       `json:"stream"`
	Record        clean.Record `json:"record"`
	TimeExtracted string       `json:"time_extracted,omitempty"`
}

type stateMessage struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type writer struct {
	w   *bufio.Writer
	enc gnfmt.Encoder
}

// New returns a tap.Sink writing to w, usually STDOUT. Every message is
// flushed right away, so a downstream target sees state only after the
// records it covers.
func New(w io.Writer) tap.Sink {
	return &writer{w: bufio.NewWriter(w), enc: gnfmt.GNjson{}}
}

func (s *writer) WriteSchema(
	_ context.Context,
	streamID string,
	schema map[string]any,
	keys []string,
) error {
	if keys == nil {
		keys = []string{}
	}
	msg := schemaMessage{
		Type:          "SCHEMA",
		Stream:        streamID,
		Schema:        schema,
		KeyProperties: keys,
	}
	return s.write(msg)
}

func (s *writer) WriteRecord(
	_ context.Context,
	streamID string,
	rec clean.Record,
	extractedAt time.Time,
) error {
	msg := recordMessage{
		Type:   "RECORD",
		Stream: streamID,
		Record: rec,
	}
	if !extractedAt.IsZero() {
		msg.TimeExtracted = extractedAt.UTC().Format(time.RFC3339Nano)
	}
	return s.write(msg)
}

func (s *writer) WriteState(_ context.Context, st *state.State) error {
	msg := stateMessage{Type: "STATE", Value: st.Document()}
	return s.write(msg)
}

func (s *writer) write(msg any) error {
	data, err := s.enc.Encode(msg)
	if err != nil {
		return EncodeError(err)
	}
	if _, err = s.w.Write(data); err != nil {
		return WriteError(err)
	}
	if err = s.w.WriteByte('\n'); err != nil {
		return WriteError(err)
	}
	if err = s.w.Flush(); err != nil {
		return WriteError(err)
	}
	return nil
}
