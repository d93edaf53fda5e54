// Package locator reads the report date and report name encoded in a
// report download URL such as
//
//	https://ca-live.adyen.com/reports/download/MerchantAccount/Shop/dispute_report_2024_02_29.csv
//
// The date token is taken literally. It is never validated against the
// calendar or shifted to another timezone, so identifiers built from it
// are stable.
package locator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// datePattern matches YYYY_MM_DD right before the file extensions, as in
// report_2024_02_29.csv or report_2024_02_29.csv.gz. The token must start
// the file name or follow an underscore, so report2024_02_29.csv does not
// match. Query strings and fragments after the extensions are ignored.
var datePattern = regexp.MustCompile(
	`(?:^|[/_])(\d{4})_(\d{2})_(\d{2})(?:\.[A-Za-z0-9]+)+(?:[?#].*)?$`,
)

// Date is the literal calendar date of a locator token.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Compact returns the date as YYYYMMDD.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// ISO returns the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Token returns the date as YYYY_MM_DD, the way it appears in locators.
func (d Date) Token() string {
	return fmt.Sprintf("%04d_%02d_%02d", d.Year, d.Month, d.Day)
}

// ExtractDate returns the date token of a locator.
func ExtractDate(loc string) (Date, error) {
	m := datePattern.FindStringSubmatch(loc)
	if m == nil {
		return Date{}, MalformedLocatorError(loc)
	}

	// the pattern guarantees digits
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return Date{Year: y, Month: mo, Day: d}, nil
}

// ReportName returns the report kind of a locator, which is the file
// name without the date token and the extension. For locators without a
// date token the file name without extension is returned.
func ReportName(loc string) string {
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	name := loc[strings.LastIndex(loc, "/")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if m := datePattern.FindStringIndex(name + ".x"); m != nil {
		name = strings.TrimSuffix(name[:m[0]], "_")
	}
	return name
}

// Build returns the locator of a report with the given prefix and date.
func Build(base, prefix string, d Date) string {
	base = strings.TrimSuffix(base, "/")
	return fmt.Sprintf("%s/%s_%s.csv", base, prefix, d.Token())
}
