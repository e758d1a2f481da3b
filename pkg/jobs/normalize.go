// Package jobs resolves canonical display values from scraped job records and
// implements the client-side filtering and sorting that the dashboard applies
// on top of the remote service's listings.
//
// Every accessor is total: malformed or missing sub-fields degrade to an empty
// value or a safe default, never an error. Two backend conventions exist for
// most fields (nested objects vs. flat fields) and the resolution order is
// fixed here so the rest of the codebase never branches on record shape.
package jobs

import (
	"strings"
	"time"

	"scrapedash/pkg/models"
)

// UnknownCompany is the display default for records missing both employer
// fields.
const UnknownCompany = "Unknown Company"

// ID returns the canonical identifier: id, then _id, then the job URL.
func ID(j models.Job) string {
	if j.ID != "" {
		return j.ID
	}
	if j.MongoID != "" {
		return j.MongoID
	}
	return j.URL
}

// CompanyName resolves the employer name, defaulting to UnknownCompany.
func CompanyName(j models.Job) string {
	if j.Company != "" {
		return j.Company
	}
	if j.CompanyName != "" {
		return j.CompanyName
	}
	return UnknownCompany
}

// LocationString resolves a displayable location, or "" when the record has
// none. A plain-string location wins, then the address field, then a
// comma-joined city/region/country.
func LocationString(j models.Job) string {
	if j.Location == nil {
		return ""
	}
	if j.Location.Raw != "" {
		return j.Location.Raw
	}
	if j.Location.Address != "" {
		return j.Location.Address
	}

	var parts []string
	for _, p := range []string{j.Location.City, j.Location.Region, j.Location.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SalaryInfo is the normalized compensation view over both conventions.
type SalaryInfo struct {
	Min      *float64
	Max      *float64
	Currency string
	Period   string
}

// HasData reports whether the record carries any usable salary bound. A zero
// bound counts as absent, matching how the rest of the pipeline treats it.
func (s SalaryInfo) HasData() bool {
	return (s.Min != nil && *s.Min != 0) || (s.Max != nil && *s.Max != 0)
}

// CompareValue is the single number used for salary filtering and sorting:
// the upper bound when present, else the lower bound, else zero.
func (s SalaryInfo) CompareValue() float64 {
	if s.Max != nil && *s.Max != 0 {
		return *s.Max
	}
	if s.Min != nil && *s.Min != 0 {
		return *s.Min
	}
	return 0
}

// Salary resolves compensation. The nested salary object takes precedence
// when the backend actually sent an object; otherwise the flat fields apply.
func Salary(j models.Job) SalaryInfo {
	if j.Salary.Object() {
		return SalaryInfo{
			Min:      j.Salary.Min,
			Max:      j.Salary.Max,
			Currency: j.Salary.Currency,
			Period:   j.Salary.Period,
		}
	}
	return SalaryInfo{
		Min:      j.SalaryMin,
		Max:      j.SalaryMax,
		Currency: j.SalaryCurrency,
		Period:   j.SalaryPeriod,
	}
}

// dateLayouts covers the ISO-ish strings both producers emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PostedDate resolves the posting date string: posted_date first, then the
// nested post_date.iso_format. Strings that do not parse as dates resolve to
// "" so callers never render garbage.
func PostedDate(j models.Job) string {
	if j.PostedDate != "" {
		if _, ok := parseDate(j.PostedDate); ok {
			return j.PostedDate
		}
		return ""
	}
	if j.PostDate != nil && j.PostDate.ISOFormat != "" {
		if _, ok := parseDate(j.PostDate.ISOFormat); ok {
			return j.PostDate.ISOFormat
		}
	}
	return ""
}

// PostedTime is PostedDate parsed to a time, for ordering.
func PostedTime(j models.Job) (time.Time, bool) {
	return parseDate(PostedDate(j))
}

// ScrapedAt resolves the scrape timestamp, defaulting to now when missing or
// unparseable.
func ScrapedAt(j models.Job) time.Time {
	if t, ok := parseDate(j.ScrapedAt); ok {
		return t
	}
	return time.Now()
}

// ATSDetected reports whether either ATS flag is set.
func ATSDetected(j models.Job) bool {
	return j.ATSDetected || j.IsATS
}

// ATSSystem resolves the ATS system name, or "" when neither field is set.
func ATSSystem(j models.Job) string {
	if j.ATSSystem != "" {
		return j.ATSSystem
	}
	return j.ATSProvider
}

// SeeJobPosting is the fallback when an application method object carries no
// usable detail.
const SeeJobPosting = "See job posting"

// ApplicationMethod resolves the how-to-apply text: a string form verbatim,
// else the object's type, else its instructions, else SeeJobPosting for an
// object with neither. A missing field resolves to "".
func ApplicationMethod(j models.Job) string {
	m := j.ApplicationMethod
	if m == nil {
		return ""
	}
	if !m.Object() {
		return m.Raw
	}
	if m.Type != "" {
		return m.Type
	}
	if m.Instructions != "" {
		return m.Instructions
	}
	return SeeJobPosting
}
