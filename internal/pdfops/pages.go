package pdfops

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePages parses a 1-based page selection such as "1-3,5,8-6" against a
// document of pageCount pages. Order and duplicates are kept; a descending
// range ("8-6") yields 8, 7, 6. "" and "all" select every page in order.
func ParsePages(sel string, pageCount int) ([]int, error) {
	if pageCount <= 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidPageSelection)
	}

	sel = strings.TrimSpace(sel)
	if sel == "" || strings.EqualFold(sel, "all") {
		return seq(1, pageCount), nil
	}

	var pages []int
	for _, part := range strings.Split(sel, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty item in %q", ErrInvalidPageSelection, sel)
		}

		from, to, isRange := strings.Cut(part, "-")
		first, err := parsePage(from, pageCount)
		if err != nil {
			return nil, err
		}
		if !isRange {
			pages = append(pages, first)
			continue
		}
		last, err := parsePage(to, pageCount)
		if err != nil {
			return nil, err
		}
		pages = append(pages, seq(first, last)...)
	}
	return pages, nil
}

// parsePage parses one page number and checks it is within [1, pageCount].
func parsePage(s string, pageCount int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "end" {
		return pageCount, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a page number", ErrInvalidPageSelection, s)
	}
	if n < 1 || n > pageCount {
		return 0, fmt.Errorf("%w: page %d out of range 1-%d", ErrInvalidPageSelection, n, pageCount)
	}
	return n, nil
}

// FormatPages renders pages back into a compact selection ("1-3,5").
func FormatPages(pages []int) string {
	var b strings.Builder
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		if j > i {
			fmt.Fprintf(&b, "%d-%d", pages[i], pages[j])
		} else {
			b.WriteString(strconv.Itoa(pages[i]))
		}
		i = j + 1
	}
	return b.String()
}

// seq returns from..to inclusive, descending when from > to.
func seq(from, to int) []int {
	step := 1
	if from > to {
		step = -1
	}
	out := make([]int, 0, (to-from)*step+1)
	for n := from; ; n += step {
		out = append(out, n)
		if n == to {
			return out
		}
	}
}

// toSelection converts page numbers to pdfcpu's selection strings.
func toSelection(pages []int) []string {
	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = strconv.Itoa(p)
	}
	return out
}
