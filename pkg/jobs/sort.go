package jobs

import (
	"sort"
	"strings"

	"scrapedash/pkg/models"
)

// Column identifies a sortable jobs-table column.
type Column string

const (
	ColumnTitle      Column = "title"
	ColumnCompany    Column = "company"
	ColumnLocation   Column = "location"
	ColumnPostedDate Column = "posted_date"
	ColumnSalary     Column = "salary"
)

// ParseColumn validates a column name from a query parameter.
func ParseColumn(s string) (Column, bool) {
	switch Column(s) {
	case ColumnTitle, ColumnCompany, ColumnLocation, ColumnPostedDate, ColumnSalary:
		return Column(s), true
	}
	return "", false
}

// Direction is a sort direction. The empty value means "no sort".
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortConfig pairs the active column with its direction. At most one column
// is active at a time; the zero value means unsorted.
type SortConfig struct {
	Column    Column    `json:"column"`
	Direction Direction `json:"direction"`
}

// sortKey is the derived comparison key for one job under one column.
// missing keys always order after present ones, in both directions.
type sortKey struct {
	text    string
	num     float64
	numeric bool
	missing bool
}

func keyFor(j models.Job, col Column) sortKey {
	switch col {
	case ColumnTitle:
		return textKey(j.Title)
	case ColumnCompany:
		return textKey(CompanyName(j))
	case ColumnLocation:
		return textKey(LocationString(j))
	case ColumnPostedDate:
		t, ok := PostedTime(j)
		if !ok {
			return sortKey{numeric: true, missing: true}
		}
		return sortKey{numeric: true, num: float64(t.UnixMilli())}
	case ColumnSalary:
		s := Salary(j)
		if !s.HasData() {
			return sortKey{numeric: true, missing: true}
		}
		return sortKey{numeric: true, num: s.CompareValue()}
	}
	return sortKey{missing: true}
}

func textKey(s string) sortKey {
	if s == "" {
		return sortKey{missing: true}
	}
	return sortKey{text: strings.ToLower(s)}
}

// less orders a before b under the given direction. The missing-last rule is
// applied before the direction is consulted, so a descending sort never pulls
// empty values to the front.
func (a sortKey) less(b sortKey, dir Direction) (isLess, tie bool) {
	if a.missing != b.missing {
		return !a.missing, false
	}
	if a.missing {
		return false, true
	}

	var cmp int
	if a.numeric {
		switch {
		case a.num < b.num:
			cmp = -1
		case a.num > b.num:
			cmp = 1
		}
	} else {
		cmp = strings.Compare(a.text, b.text)
	}

	if cmp == 0 {
		return false, true
	}
	if dir == Descending {
		cmp = -cmp
	}
	return cmp < 0, false
}

// Sort returns the jobs ordered by the configured column and direction. With
// no active column the input slice is returned verbatim. Otherwise a new
// slice is produced; ties and missing-key runs preserve input order.
func Sort(jobs []models.Job, cfg SortConfig) []models.Job {
	if cfg.Column == "" || cfg.Direction == "" {
		return jobs
	}

	keys := make([]sortKey, len(jobs))
	for i, j := range jobs {
		keys[i] = keyFor(j, cfg.Column)
	}

	order := make([]int, len(jobs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		isLess, tie := keys[order[x]].less(keys[order[y]], cfg.Direction)
		if tie {
			return false
		}
		return isLess
	})

	out := make([]models.Job, len(jobs))
	for i, idx := range order {
		out[i] = jobs[idx]
	}
	return out
}

// NextDirection implements the tri-state cycle for repeated header clicks:
// a freshly clicked column starts ascending, the same column cycles
// ascending, descending, then none.
func NextDirection(currentColumn Column, currentDirection Direction, clickedColumn Column) Direction {
	if currentColumn != clickedColumn {
		return Ascending
	}
	switch currentDirection {
	case Ascending:
		return Descending
	case Descending:
		return ""
	default:
		return Ascending
	}
}
