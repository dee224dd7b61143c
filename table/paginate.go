package table

// Mode says who slices rows into pages.
type Mode int

const (
	// ClientPaged rows are the whole collection; the table slices them.
	ClientPaged Mode = iota
	// ServerPaged rows are already one page; totals come from the server.
	ServerPaged
)

// Ellipsis marks a gap in the list returned by PageNumbers.
const Ellipsis = 0

const pageWindow = 2

// PageInfo is the pagination state shown under a table.
type PageInfo struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
}

// TotalPages is ceil(totalItems / pageSize).
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Paginate returns rows[(page-1)*pageSize : page*pageSize], clipped to the slice.
func Paginate(rows []Row, page, pageSize int) []Row {
	if pageSize <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []Row{}
	}
	end := min(start+pageSize, len(rows))
	return rows[start:end]
}

// PageNumbers lists the page links to show: the first and last page, up to two
// pages either side of current, and Ellipsis where pages are skipped.
// Short page counts are listed in full.
func PageNumbers(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 2*pageWindow+1 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}
	current = max(1, min(current, total))

	first := max(2, current-pageWindow)
	last := min(total-1, current+pageWindow)

	pages := []int{1}
	if first > 2 {
		pages = append(pages, Ellipsis)
	}
	for p := first; p <= last; p++ {
		pages = append(pages, p)
	}
	if last < total-1 {
		pages = append(pages, Ellipsis)
	}
	return append(pages, total)
}
