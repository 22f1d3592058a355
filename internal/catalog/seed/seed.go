// Package seed embeds the default catalog data shipped with the binary.
package seed

import "embed"

// Files holds master.yaml, companies.yaml and articles.yaml.
//
//go:embed *.yaml
var Files embed.FS
