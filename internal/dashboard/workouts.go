package dashboard

import "github.com/octofit/dashboard/internal/collection"

// Workouts lists workout suggestions with a difficulty badge.
var Workouts = Definition{
	Resource:    "workouts",
	Title:       "Workout Suggestions",
	Icon:        "💪",
	Blurb:       "Get personalised workout suggestions.",
	HeaderClass: "bg-danger text-white",
	ButtonClass: "btn-danger",
	Columns: []Column{
		{Title: "User"},
		{Title: "Workout Name"},
		{Title: "Description"},
		{Title: "Category"},
		{Title: "Difficulty", Center: true},
		{Title: "Suggested Date"},
	},
	EmptyText: "No workouts found",
	Row:       workoutRow,
}

// difficultyBadge matches the level exactly; anything unknown is styled as hardest.
func difficultyBadge(level string) string {
	switch level {
	case "Beginner":
		return "bg-success"
	case "Intermediate":
		return "bg-warning text-dark"
	default:
		return "bg-danger"
	}
}

func workoutRow(_ int, rec collection.Record) Row {
	level := rec.String("difficulty_level")
	if _, ok := rec.Field("difficulty_level"); !ok {
		level = rec.String("difficulty")
	}

	return Row{Cells: []Cell{
		{Text: rec.String("user_username"), Strong: true},
		{Text: rec.String("name")},
		{HTML: markdown(rec.String("description"))},
		{Text: rec.String("category"), Badge: "bg-secondary"},
		{Text: level, Badge: difficultyBadge(level), Center: true},
		{Text: formatDate(rec, "suggested_date", numericDate)},
	}}
}
