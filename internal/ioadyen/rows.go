package ioadyen

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/gnames/tapadyen/pkg/clean"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Rows downloads a report and yields its rows keyed by the trimmed
// header of the report. Short lines leave trailing columns absent.
func (c *Client) Rows(
	ctx context.Context,
	loc string,
) iter.Seq2[clean.Row, error] {
	return func(yield func(clean.Row, error) bool) {
		resp, err := c.request(ctx, http.MethodGet, loc)
		if err != nil {
			yield(nil, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield(nil, ReportStatusError(loc, resp.StatusCode))
			return
		}

		r := csv.NewReader(skipBOM(resp.Body))
		r.FieldsPerRecord = -1

		header, err := r.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, ReportCSVError(loc, err))
			return
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}

		for {
			line, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, ReportCSVError(loc, err))
				return
			}

			row := make(clean.Row, len(header))
			for i, v := range line {
				if i >= len(header) {
					break
				}
				row[header[i]] = v
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// skipBOM drops the UTF-8 byte order mark that spreadsheet exports put
// in front of the header.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(bom)); err == nil && bytes.Equal(b, bom) {
		_, _ = br.Discard(len(bom))
	}
	return br
}
