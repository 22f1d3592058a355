package lookup

import (
	"cmp"
	"slices"

	"github.com/starford/devcase/internal/models"
)

// CountBy counts articles per group key. An article contributes once to every
// key returned by key, so multi-valued dimensions such as keywords do not
// partition the articles. Empty keys are skipped.
func CountBy(articles []models.Article, key func(models.Article) []string) map[string]int {
	out := make(map[string]int)
	for _, a := range articles {
		for _, k := range key(a) {
			if k != "" {
				out[k]++
			}
		}
	}
	return out
}

func single(s string) []string { return []string{s} }

// CountByCategory counts articles per derived category id.
func (l *Lookup) CountByCategory(articles []models.Article) map[string]int {
	return CountBy(articles, func(a models.Article) []string { return single(l.cat.CategoryIDOf(a)) })
}

// CountBySystem counts articles per system id.
func CountBySystem(articles []models.Article) map[string]int {
	return CountBy(articles, func(a models.Article) []string { return single(a.SystemID) })
}

// CountByPrefecture counts articles per company prefecture code.
func (l *Lookup) CountByPrefecture(articles []models.Article) map[string]int {
	return CountBy(articles, func(a models.Article) []string {
		co, ok := l.cat.CompanyOf(a)
		if !ok {
			return nil
		}
		return single(co.PrefectureCode)
	})
}

// CountByArticleType counts articles per two-digit type id.
func CountByArticleType(articles []models.Article) map[string]int {
	return CountBy(articles, func(a models.Article) []string { return single(a.ArticleType.TypeID()) })
}

// CountByTag counts articles per keyword.
func CountByTag(articles []models.Article) map[string]int {
	return CountBy(articles, func(a models.Article) []string { return a.Keywords })
}

// CountCompaniesByPrefecture counts companies per prefecture code.
func CountCompaniesByPrefecture(companies []models.Company) map[string]int {
	out := make(map[string]int)
	for _, c := range companies {
		out[c.PrefectureCode]++
	}
	return out
}

// TagCount is one keyword with the number of articles carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// TagCounts returns keyword counts, most used first, ties by tag name.
func TagCounts(articles []models.Article) []TagCount {
	counts := CountByTag(articles)
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	slices.SortFunc(out, func(x, y TagCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Tag, y.Tag)
	})
	return out
}
