package departures

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed brands.yaml
var defaultBrandsYAML []byte

type BrandTable struct {
	Categories     map[Category]Brand `yaml:"categories"`
	RegionalBrands []string           `yaml:"regional_brands"`
}

type Brand struct {
	Text   string `yaml:"text"`
	Logo   string `yaml:"logo"`
	Family string `yaml:"family"`
}

func ParseBrandTable(data []byte) (BrandTable, error) {
	bt := BrandTable{}
	if err := yaml.Unmarshal(data, &bt); err != nil {
		return BrandTable{}, fmt.Errorf("problem parsing brand table: %w", err)
	}
	for _, c := range allCategories {
		if _, ok := bt.Categories[c]; !ok {
			return BrandTable{}, fmt.Errorf("brand table has no entry for category %s", c)
		}
	}
	return bt, nil
}

// LoadBrandTable reads a brand table from path, or returns the embedded one when path is empty.
func LoadBrandTable(path string) (BrandTable, error) {
	if path == "" {
		return DefaultBrandTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return BrandTable{}, fmt.Errorf("problem reading brand table %s: %w", path, err)
	}
	return ParseBrandTable(data)
}

func DefaultBrandTable() BrandTable {
	bt, err := ParseBrandTable(defaultBrandsYAML)
	if err != nil {
		panic(err)
	}
	return bt
}

func (bt BrandTable) brand(c Category) Brand {
	b, ok := bt.Categories[c]
	if !ok {
		return Brand{Text: string(c), Family: string(c)}
	}
	return b
}
