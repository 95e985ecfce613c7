package classify

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var taxonomyYAML []byte

type DepartmentRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is the fixed department-keyword table plus the critical-keyword
// list. Department order is the routing evaluation order.
type Taxonomy struct {
	Departments      []DepartmentRule `yaml:"departments"`
	CriticalKeywords []string         `yaml:"critical_keywords"`
}

// LoadTaxonomy parses the embedded taxonomy table.
func LoadTaxonomy() (Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(taxonomyYAML, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(t.Departments) == 0 {
		return Taxonomy{}, fmt.Errorf("taxonomy has no departments")
	}
	if len(t.CriticalKeywords) == 0 {
		return Taxonomy{}, fmt.Errorf("taxonomy has no critical keywords")
	}
	return t, nil
}

// DepartmentNames returns the taxonomy department names in table order.
func (t Taxonomy) DepartmentNames() []string {
	names := make([]string, 0, len(t.Departments))
	for _, d := range t.Departments {
		names = append(names, d.Name)
	}
	return names
}
