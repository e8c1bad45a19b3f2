package theme

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// PalettesFileName is the optional user palette file in the config
// directory.
const PalettesFileName = "palettes.yaml"

// palettesFile is the on-disk shape of palettes.yaml:
//
//	accents:
//	  - name: lava
//	    hex: "#ff4500"
type palettesFile struct {
	Accents []struct {
		Name string `yaml:"name"`
		Hex  string `yaml:"hex"`
	} `yaml:"accents"`
}

// LoadUserAccents reads extra accents from path. A missing file is not
// an error; a malformed one is. Entries without a name or with an
// unparseable hex value are skipped.
func LoadUserAccents(path string) ([]Accent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading palettes file: %w", err)
	}

	var pf palettesFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing palettes file: %w", err)
	}

	var accents []Accent
	for _, entry := range pf.Accents {
		if entry.Name == "" {
			continue
		}
		if _, _, _, ok := parseHex(entry.Hex); !ok {
			continue
		}
		accents = append(accents, Accent{Name: entry.Name, Hex: entry.Hex})
	}
	return accents, nil
}
