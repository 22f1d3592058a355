package route

import (
	"net/url"
	"strconv"
)

// Public page paths. The HTTP API mirrors them under /api.
const (
	HomePath      = "/"
	ArticlesPath  = "/articles"
	CompaniesPath = "/companies"
)

// ArticlePath is the canonical page of one article.
func ArticlePath(prefSlug, topicSlug string, id int) string {
	return ArticlesPath + "/" + esc(prefSlug) + "/" + esc(topicSlug) + "/" + strconv.Itoa(id)
}

// CategoryPath lists the articles of a category.
func CategoryPath(slug string) string { return ArticlesPath + "/category/" + esc(slug) }

// SystemPath lists the articles of a system.
func SystemPath(slug string) string { return ArticlesPath + "/system/" + esc(slug) }

// PrefecturePath lists the articles published by companies of a prefecture.
func PrefecturePath(slug string) string { return ArticlesPath + "/prefecture/" + esc(slug) }

// PrefectureTopicPath lists a prefecture's articles narrowed to a category or
// system.
func PrefectureTopicPath(prefSlug, topicSlug string) string {
	return ArticlesPath + "/" + esc(prefSlug) + "/" + esc(topicSlug)
}

// CompanyListPath lists the companies of a prefecture.
func CompanyListPath(prefSlug string) string { return CompaniesPath + "/" + esc(prefSlug) }

// CompanyPath is the profile page of a company.
func CompanyPath(prefSlug string, id int) string {
	return CompanyListPath(prefSlug) + "/" + strconv.Itoa(id)
}

func esc(s string) string { return url.PathEscape(s) }
