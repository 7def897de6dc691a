package dashboard

import (
	"bytes"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/octofit/dashboard/internal/collection"
)

// Raw HTML inside descriptions is escaped: WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const (
	numericDate  = "1/2/2006"
	shortDate    = "Jan 2, 2006"
	notAvailable = "N/A"
)

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate renders a date field in local time, or N/A when it is absent or unparseable.
func formatDate(rec collection.Record, field, layout string) string {
	t, ok := parseDate(rec.String(field))
	if !ok {
		return notAvailable
	}
	return t.In(time.Local).Format(layout)
}

func markdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}
