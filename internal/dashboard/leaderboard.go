package dashboard

import (
	"strconv"

	"github.com/octofit/dashboard/internal/collection"
)

var medals = [...]string{"🥇", "🥈", "🥉"}

// Leaderboard ranks entries by their position in the backend's ordering.
var Leaderboard = Definition{
	Resource:    "leaderboard",
	Title:       "Leaderboard",
	Icon:        "🏆",
	Blurb:       "See the top performers and compete.",
	HeaderClass: "bg-warning text-dark",
	ButtonClass: "btn-warning",
	Columns: []Column{
		{Title: "Rank", Center: true},
		{Title: "Username"},
		{Title: "Team"},
		{Title: "Total Activities", Center: true},
		{Title: "Total Duration (min)", Center: true},
		{Title: "Total Distance (km)", Center: true},
		{Title: "Total Calories", Center: true},
	},
	EmptyText: "No leaderboard data found",
	Row:       leaderboardRow,
}

func rankCell(index int) Cell {
	if index < len(medals) {
		return Cell{Text: medals[index], Center: true}
	}
	return Cell{Text: strconv.Itoa(index + 1), Badge: "bg-secondary", Center: true}
}

func leaderboardRow(index int, rec collection.Record) Row {
	row := Row{Cells: []Cell{
		rankCell(index),
		{Text: rec.String("username"), Strong: true},
		{Text: rec.StringOr("team_name", notAvailable)},
		{Text: rec.StringOr("total_activities", "0"), Badge: "bg-primary", Center: true},
		{Text: rec.StringOr("total_duration", "0"), Center: true},
		{Text: rec.StringOr("total_distance", "0"), Center: true},
		{Text: rec.StringOr("total_calories", "0"), Badge: "bg-danger", Center: true},
	}}
	if index < len(medals) {
		row.Class = "table-warning"
	}
	return row
}
