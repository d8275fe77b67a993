// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders blocks as plain text. Cross-references are shown as
// "Title [id]" and external links as "text <href>".
func WriteText(w io.Writer, blocks []Block) error {
	for i, b := range blocks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

func writeBlock(w io.Writer, b Block) error {
	var err error
	switch b.Kind {
	case KindHeading:
		text := spansText(b.Spans)
		_, err = fmt.Fprintf(w, "%s\n%s\n", text, strings.Repeat("-", len([]rune(text))))
	case KindQuestion:
		_, err = fmt.Fprintf(w, "> %s\n", spansText(b.Spans))
	case KindList:
		for i, item := range b.Items {
			bullet := "-"
			if b.Ordered {
				bullet = fmt.Sprintf("%d.", i+1)
			}
			if _, err = fmt.Fprintf(w, "  %s %s\n", bullet, spansText(item)); err != nil {
				return err
			}
		}
	case KindDefinitions:
		for _, d := range b.Definitions {
			if _, err = fmt.Fprintf(w, "  %s: %s\n", d.Term, spansText(d.Description)); err != nil {
				return err
			}
		}
	case KindTable:
		if b.Header != nil {
			if _, err = fmt.Fprintf(w, "| %s |\n", cellsText(b.Header)); err != nil {
				return err
			}
		}
		for _, row := range b.Rows {
			if _, err = fmt.Fprintf(w, "| %s |\n", cellsText(row)); err != nil {
				return err
			}
		}
	default:
		_, err = fmt.Fprintln(w, spansText(b.Spans))
	}
	return err
}

func cellsText(cells [][]Span) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = spansText(c)
	}
	return strings.Join(parts, " | ")
}

func spansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch {
		case s.Ref != nil:
			fmt.Fprintf(&sb, "%s [%s]", s.Text, s.Ref.TopicID)
		case s.Href != "":
			fmt.Fprintf(&sb, "%s <%s>", s.Text, s.Href)
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
