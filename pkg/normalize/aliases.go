package normalize

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// aliasEntry is one long-form building name and the short code the CRM
// location list uses for it. Substitution is one-directional: long form in,
// short code out.
type aliasEntry struct {
	Long  string `yaml:"long"`
	Short string `yaml:"short"`
}

// buildingAliases holds the substitutions applied by Location, in file
// order so substitution is deterministic.
var buildingAliases []aliasEntry

func init() {
	var doc struct {
		Aliases []aliasEntry `yaml:"aliases"`
	}
	if err := yaml.Unmarshal(aliasesYAML, &doc); err != nil {
		panic(fmt.Sprintf("normalize: embedded aliases.yaml is malformed: %v", err))
	}
	buildingAliases = doc.Aliases
}
