package ioadyen

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/tapadyen/pkg/config"
	"github.com/gnames/tapadyen/pkg/locator"
	"github.com/gnames/tapadyen/pkg/state"
	"github.com/gnames/tapadyen/pkg/stream"
)

// Locators yields URLs of existing daily reports of a stream. The first
// day is the bookmark day, or the day after it once the stream finished
// its first pass. Today is never probed, its report is still growing.
func (c *Client) Locators(
	ctx context.Context,
	kind stream.Kind,
	ss state.StreamState,
) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		d, err := stream.Lookup(kind)
		if err != nil {
			yield("", err)
			return
		}

		day, err := parseDay(ss.Bookmark(d.Bookmark).String())
		if err != nil {
			yield("", err)
			return
		}
		if ss.InitialFullTableComplete() {
			day = day.AddDate(0, 0, 1)
		}

		today := startOfDay(c.now().UTC())
		for ; day.Before(today); day = day.AddDate(0, 0, 1) {
			if err = ctx.Err(); err != nil {
				yield("", err)
				return
			}

			loc := locator.Build(c.base, d.ReportPrefix, dateOf(day))
			ok, err := c.exists(ctx, loc)
			if err != nil {
				yield("", err)
				return
			}
			if !ok {
				slog.Debug("No report", "stream", d.ID, "locator", loc)
				continue
			}
			if !yield(loc, nil) {
				return
			}
		}
	}
}

func (c *Client) exists(ctx context.Context, loc string) (bool, error) {
	resp, err := c.request(ctx, http.MethodHead, loc)
	if err != nil {
		return false, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, ReportStatusError(loc, resp.StatusCode)
	}
}

// parseDay reads the calendar day of a date bookmark. The day is taken
// in the offset the bookmark was written with.
func parseDay(s string) (time.Time, error) {
	for _, layout := range config.DateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, BookmarkParseError(s)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOf(t time.Time) locator.Date {
	return locator.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}
