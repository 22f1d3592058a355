package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/starford/devcase/internal/checksum"
	"github.com/starford/devcase/internal/models"
	"github.com/starford/devcase/internal/storage"
)

// Dataset is the on-disk shape of catalog data. A data directory may split
// it across several YAML files; they are merged in path order.
type Dataset struct {
	Areas        []models.Area        `yaml:"areas"`
	Prefectures  []models.Prefecture  `yaml:"prefectures"`
	Categories   []models.Category    `yaml:"categories"`
	Systems      []models.SystemName  `yaml:"systems"`
	Purposes     []models.Purpose     `yaml:"purposes"`
	ArticleTypes []models.ArticleType `yaml:"article_types"`
	Companies    []models.Company     `yaml:"companies"`
	Articles     []models.Article     `yaml:"articles"`
}

// Merge appends every table of o to d.
func (d *Dataset) Merge(o Dataset) {
	d.Areas = append(d.Areas, o.Areas...)
	d.Prefectures = append(d.Prefectures, o.Prefectures...)
	d.Categories = append(d.Categories, o.Categories...)
	d.Systems = append(d.Systems, o.Systems...)
	d.Purposes = append(d.Purposes, o.Purposes...)
	d.ArticleTypes = append(d.ArticleTypes, o.ArticleTypes...)
	d.Companies = append(d.Companies, o.Companies...)
	d.Articles = append(d.Articles, o.Articles...)
}

// Decode parses one YAML data file. Unknown keys are rejected so that a typo
// in a field name does not silently drop data. A file may hold several YAML
// documents.
func Decode(data []byte) (Dataset, error) {
	var out Dataset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	for {
		var doc Dataset
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, err
		}
		out.Merge(doc)
	}
	return out, nil
}

// LoadDataset reads and merges every data file from p. The returned version
// identifies the exact file contents.
func LoadDataset(p storage.Provider) (Dataset, string, error) {
	files, err := p.List("")
	if err != nil {
		return Dataset{}, "", fmt.Errorf("catalog: list data files: %w", err)
	}
	if len(files) == 0 {
		return Dataset{}, "", fmt.Errorf("catalog: no data files found")
	}

	var ds Dataset
	sums := make([]string, 0, len(files))
	for _, f := range files {
		data, err := p.Read(f.Path)
		if err != nil {
			return Dataset{}, "", fmt.Errorf("catalog: %w", err)
		}
		part, err := Decode(data)
		if err != nil {
			return Dataset{}, "", fmt.Errorf("catalog: decode %s: %w", f.Path, err)
		}
		ds.Merge(part)
		sums = append(sums, f.Path+":"+f.Checksum)
	}
	return ds, checksum.Combine(sums...), nil
}

// Load reads the data files from p and builds a Catalog.
func Load(p storage.Provider, opts Options) (*Catalog, error) {
	ds, version, err := LoadDataset(p)
	if err != nil {
		return nil, err
	}
	opts.Version = version
	return Build(ds, opts)
}
