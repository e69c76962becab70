package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Format string

const (
	FormatTable Format = "table"
	FormatText  Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (use 'table' or 'text')", s)
	}
}

// WriteText prints v for a terminal. It writes nothing for a view with
// neither an error nor reviews, same as the page.
func WriteText(w io.Writer, v View, f Format) error {
	if v.Error != "" {
		_, err := fmt.Fprintln(w, v.Error)
		return err
	}
	if !v.ShowReviews {
		return nil
	}
	if f == FormatTable {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(v.Heading)
		t.AppendHeader(table.Row{"#", "Title", "Rating", "Reviewer", "Body"})
		for i, e := range v.Entries {
			t.AppendRow(table.Row{i + 1, e.Title, e.Rating, e.Reviewer, e.Body})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	}

	var b strings.Builder
	b.WriteString(v.Heading + "\n")
	for i, e := range v.Entries {
		b.WriteString(strconv.Itoa(i+1) + ". " + e.Title + "\n")
		b.WriteString("   " + e.Body + "\n")
		b.WriteString("   Rating: " + e.Rating + "\n")
		b.WriteString("   Reviewer: " + e.Reviewer + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
