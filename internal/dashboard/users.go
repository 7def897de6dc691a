package dashboard

import "github.com/octofit/dashboard/internal/collection"

// Users lists accounts with their team and hosts the edit flow.
var Users = Definition{
	Resource:    "users",
	Title:       "Users",
	Icon:        "👥",
	Blurb:       "Manage and browse every fitness enthusiast.",
	HeaderClass: "bg-primary text-white",
	ButtonClass: "btn-primary",
	Columns: []Column{
		{Title: "Name"},
		{Title: "Email"},
		{Title: "Team"},
	},
	EmptyText: "No users found",
	Editable:  true,
	Row:       userRow,
}

func userRow(_ int, rec collection.Record) Row {
	team := Cell{Text: "No Team", Badge: "bg-secondary"}
	if rec.Truthy("team_name") {
		team = Cell{Text: rec.String("team_name"), Badge: "bg-info"}
	}

	return Row{Cells: []Cell{
		{Text: rec.String("name"), Strong: true},
		{Text: rec.String("email")},
		team,
	}}
}
