package table

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	sortAscMarker  = " ▲"
	sortDescMarker = " ▼"
	cellPadding    = " | "
)

// Render writes the visible rows as a text table followed by the pagination
// footer. An empty table renders one row spanning all columns with the empty
// message; the footer is omitted when there is at most one page.
func (t *Table) Render(w io.Writer) error {
	rows := t.Visible()

	headers := make([]string, len(t.columns))
	for i, c := range t.columns {
		headers[i] = c.Label
		if t.sort.Key == c.Key && t.sort.Active() {
			if t.sort.Direction == Descending {
				headers[i] += sortDescMarker
			} else {
				headers[i] += sortAscMarker
			}
		}
	}

	cells := make([][]string, len(rows))
	for r, row := range rows {
		cells[r] = make([]string, len(t.columns))
		for i, c := range t.columns {
			cells[r][i] = truncate(CellText(row, c), c.Width)
		}
	}

	widths := make([]int, len(t.columns))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, line := range cells {
		for i, cell := range line {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var b strings.Builder
	writeLine(&b, headers, widths, nil)
	b.WriteString(separator(widths))
	b.WriteByte('\n')

	if len(rows) == 0 {
		total := 0
		for _, width := range widths {
			total += width
		}
		total += len(cellPadding) * max(len(widths)-1, 0)
		b.WriteString(strings.TrimRight(pad(t.emptyMessage, total, AlignCenter), " "))
		b.WriteByte('\n')
	}
	for _, line := range cells {
		writeLine(&b, line, widths, t.columns)
	}

	if footer := t.footer(); footer != "" {
		b.WriteByte('\n')
		b.WriteString(footer)
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Table) footer() string {
	info := t.Pagination()
	if info.TotalPages <= 1 {
		return ""
	}

	links := make([]string, 0, info.TotalPages)
	for _, p := range PageNumbers(info.CurrentPage, info.TotalPages) {
		switch {
		case p == Ellipsis:
			links = append(links, "…")
		case p == info.CurrentPage:
			links = append(links, fmt.Sprintf("[%d]", p))
		default:
			links = append(links, fmt.Sprint(p))
		}
	}

	first := (info.CurrentPage-1)*info.PageSize + 1
	last := min(info.CurrentPage*info.PageSize, info.TotalItems)
	return fmt.Sprintf("Showing %d-%d of %d  Page %d of %d  %s",
		first, last, info.TotalItems, info.CurrentPage, info.TotalPages, strings.Join(links, " "))
}

func writeLine(b *strings.Builder, cells []string, widths []int, columns []Column) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		align := AlignLeft
		if columns != nil {
			align = columns[i].Align
		}
		parts[i] = pad(cell, widths[i], align)
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, cellPadding), " "))
	b.WriteByte('\n')
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	return strings.Join(parts, "-+-")
}

func pad(s string, width int, align Align) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
