// Package dashboard defines the resource views of the fitness dashboard and
// keeps track of the views mounted by browsers.
package dashboard

import (
	"html/template"

	"github.com/octofit/dashboard/internal/collection"
)

// Column is a table header.
type Column struct {
	Title  string
	Center bool
}

// Cell is one rendered table cell. HTML, when set, is trusted markup and takes
// precedence over Text. A non-empty Badge wraps the content in a badge of that class.
type Cell struct {
	Text   string
	HTML   template.HTML
	Badge  string
	Strong bool
	Center bool
}

// Row is one rendered table row.
type Row struct {
	RecordID string
	Class    string
	Cells    []Cell
}

// RowRenderer maps the record at position index to a table row.
type RowRenderer func(index int, rec collection.Record) Row

// Definition describes one resource view: where its data lives and how its rows look.
type Definition struct {
	Resource    string
	Title       string
	Icon        string
	Blurb       string
	HeaderClass string
	ButtonClass string
	Columns     []Column
	EmptyText   string
	// Editable views carry the user edit flow and an Actions column.
	Editable bool
	Row      RowRenderer
}

// Rows renders records in order.
func (d Definition) Rows(records []collection.Record) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		row := d.Row(i, rec)
		row.RecordID = rec.ID()
		rows = append(rows, row)
	}
	return rows
}

// ColumnCount is the number of table columns including the Actions column.
func (d Definition) ColumnCount() int {
	if d.Editable {
		return len(d.Columns) + 1
	}
	return len(d.Columns)
}

// Definitions returns every resource view in navigation order.
func Definitions() []Definition {
	return []Definition{Users, Activities, Leaderboard, Teams, Workouts}
}

// Lookup returns the definition of resource.
func Lookup(resource string) (Definition, bool) {
	for _, d := range Definitions() {
		if d.Resource == resource {
			return d, true
		}
	}
	return Definition{}, false
}
