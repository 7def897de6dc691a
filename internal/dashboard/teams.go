package dashboard

import "github.com/octofit/dashboard/internal/collection"

// Teams lists teams with their size and creation date.
var Teams = Definition{
	Resource:    "teams",
	Title:       "Teams",
	Icon:        "👫",
	Blurb:       "Create and join teams for group challenges.",
	HeaderClass: "bg-info text-white",
	ButtonClass: "btn-info",
	Columns: []Column{
		{Title: "Team Name"},
		{Title: "Description"},
		{Title: "Members", Center: true},
		{Title: "Created"},
	},
	EmptyText: "No teams found",
	Row:       teamRow,
}

func teamRow(_ int, rec collection.Record) Row {
	return Row{Cells: []Cell{
		{Text: rec.String("name"), Strong: true},
		{HTML: markdown(rec.String("description"))},
		{Text: rec.StringOr("member_count", "0"), Badge: "bg-info", Center: true},
		{Text: formatDate(rec, "created_at", numericDate)},
	}}
}
