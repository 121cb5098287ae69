package catalog

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/eduverse/core"
)

// AllCategories is the category sentinel that disables the category filter.
const AllCategories = "All"

// suggestion similarity threshold
const suggestMinRatio = 0.5

type QueryFilter struct {
	Search   string `query:"search" json:"search"`
	Category string `query:"category" json:"category"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && (qf.Category == "" || qf.Category == AllCategories)
}

func (qf *QueryFilter) matches(c Course) bool {
	if qf.Category != "" && qf.Category != AllCategories && c.Category != qf.Category {
		return false
	}
	return core.ContainsFold(c.Title, qf.Search) || core.ContainsFold(c.Description, qf.Search)
}

// Filter keeps the courses whose title or description contains the search text (case-insensitive)
// and whose category matches. Input order is preserved.
func Filter(courses []Course, filter QueryFilter) []Course {
	res := make([]Course, 0, len(courses))
	for _, c := range courses {
		if filter.matches(c) {
			res = append(res, c)
		}
	}
	return res
}

// Categories returns AllCategories followed by the distinct course categories in first-seen order.
func Categories(courses []Course) []string {
	seen := make(map[string]struct{}, len(courses))
	cats := make([]string, 0, len(courses)+1)
	cats = append(cats, AllCategories)
	for _, c := range courses {
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		cats = append(cats, c.Category)
	}
	return cats
}

// Suggest ranks course titles by similarity to query. Used when a search has no result.
// Each title word is compared to the query and the best ratio counts for the title.
func Suggest(courses []Course, query string, n int) []string {
	query = core.CleanString(query, true /* lower */)
	if query == "" || n <= 0 {
		return nil
	}
	type scored struct {
		title string
		ratio float64
	}
	qChars := strings.Split(query, "")
	matcher := difflib.NewMatcher(qChars, nil)

	candidates := make([]scored, 0, len(courses))
	for _, c := range courses {
		var best float64
		for _, word := range strings.Fields(strings.ToLower(c.Title)) {
			matcher.SetSeq2(strings.Split(word, ""))
			if r := matcher.Ratio(); r > best {
				best = r
			}
		}
		if best >= suggestMinRatio {
			candidates = append(candidates, scored{title: c.Title, ratio: best})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	titles := make([]string, 0, len(candidates))
	for _, s := range candidates {
		titles = append(titles, s.title)
	}
	return titles
}
