// Package paginate implements fixed-size pagination with a forgiving page
// parameter policy: a page that fails to parse resolves to the first page,
// and a page that is out of range (in either direction) resolves to the last
// valid page. An empty result set still has one (empty) page.
package paginate

import "strconv"

// Page describes one page of a result set.
type Page struct {
	Number     int   `json:"number"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	Count      int64 `json:"count"`
	Offset     int   `json:"-"`
	Limit      int   `json:"-"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// TotalPages returns ceil(count/perPage), minimum 1.
func TotalPages(count int64, perPage int) int {
	if perPage <= 0 {
		perPage = 1
	}
	pages := int((count + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// GetPage resolves a raw page parameter against a result count.
func GetPage(raw string, count int64, perPage int) Page {
	total := TotalPages(count, perPage)

	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > total:
		number = total
	}

	return Page{
		Number:     number,
		PerPage:    perPage,
		TotalPages: total,
		Count:      count,
		Offset:     (number - 1) * perPage,
		Limit:      perPage,
		HasNext:    number < total,
		HasPrev:    number > 1,
	}
}
