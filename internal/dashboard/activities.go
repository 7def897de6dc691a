package dashboard

import "github.com/octofit/dashboard/internal/collection"

// Activities lists logged workout sessions per user.
var Activities = Definition{
	Resource:    "activities",
	Title:       "Activities",
	Icon:        "🏃",
	Blurb:       "Log and follow your physical activities.",
	HeaderClass: "bg-success text-white",
	ButtonClass: "btn-success",
	Columns: []Column{
		{Title: "User"},
		{Title: "Activity Type"},
		{Title: "Duration (min)"},
		{Title: "Distance (km)"},
		{Title: "Calories"},
		{Title: "Date"},
	},
	EmptyText: "No activities found",
	Row:       activityRow,
}

func activityRow(_ int, rec collection.Record) Row {
	return Row{Cells: []Cell{
		{Text: rec.String("user_username"), Strong: true},
		{Text: rec.String("activity_type"), Badge: "bg-primary"},
		{Text: rec.String("duration")},
		{Text: rec.String("distance")},
		{Text: rec.String("calories_burned")},
		{Text: formatDate(rec, "date", shortDate)},
	}}
}
