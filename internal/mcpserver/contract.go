package mcpserver

// URLScheme documents the site's page paths and listing query parameters
// for LLM consumers.
const URLScheme = `# devcase URL Scheme

All slugs are lowercase roman (` + "`" + `[a-z0-9]+(-[a-z0-9]+)*` + "`" + `) and match exactly.

## Pages

| Path | Page |
|------|------|
| ` + "`" + `/` + "`" + ` | Home |
| ` + "`" + `/articles` + "`" + ` | Article search (query parameters below) |
| ` + "`" + `/articles/category/{category}` + "`" + ` | Category listing |
| ` + "`" + `/articles/system/{system}` + "`" + ` | System listing |
| ` + "`" + `/articles/prefecture/{prefecture}` + "`" + ` | Prefecture listing |
| ` + "`" + `/articles/{prefecture}/{category-or-system}` + "`" + ` | Prefecture × topic listing |
| ` + "`" + `/articles/{prefecture}/{category}/{id}` + "`" + ` | Article (canonical) |
| ` + "`" + `/companies` + "`" + ` | Company index |
| ` + "`" + `/companies/{prefecture}` + "`" + ` | Companies in a prefecture |
| ` + "`" + `/companies/{prefecture}/{id}` + "`" + ` | Company profile |

The canonical article path uses the prefecture of the article's company and
the category derived from its system. Any other valid combination of
segments redirects (301) to it.

## Query parameters of /articles

- ` + "`" + `keyword` + "`" + ` – case-insensitive substring of the title.
- ` + "`" + `category` + "`" + `, ` + "`" + `system` + "`" + `, ` + "`" + `type` + "`" + `, ` + "`" + `prefecture` + "`" + ` – slugs, repeatable. Values of one
  parameter are ORed; different parameters are ANDed.
- ` + "`" + `company` + "`" + ` – case-insensitive substring of the company name.
- ` + "`" + `sort` + "`" + ` – ` + "`" + `publishedAt` + "`" + ` (default, newest first) or ` + "`" + `viewCount` + "`" + `.
- ` + "`" + `page` + "`" + ` – 1-based page number.

Unknown slugs are ignored and reported back in the ` + "`" + `ignored` + "`" + ` field.

## Slug resolution

A bare slug is looked up in categories, then systems, then prefectures; the
first table that contains it wins.
`
