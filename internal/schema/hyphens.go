package schema

import (
	"encoding/json"
	"os"

	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

// HyphenFile is the file name of the correction table inside the cache dir
const HyphenFile = "hyphens.json"

// HyphenTable maps stored species and ability names, which lost their
// hyphens on the way in, to their display form (for example
// "porygonz" -> "porygon-z").
type HyphenTable map[string]string

// LoadHyphenTable reads a correction table. A missing file is an empty table.
func LoadHyphenTable(path string) (HyphenTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return HyphenTable{}, nil
		}
		return nil, errors.Wrap(err, "failed to read hyphen table").WithMeta("path", path)
	}

	table := HyphenTable{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "hyphen table is not a JSON object").
			WithMeta("path", path)
	}
	return table, nil
}

// Display returns the capitalized corrected form of name, or name itself
// when the table has no entry for it.
func (t HyphenTable) Display(name string) string {
	if fixed, ok := t[name]; ok {
		return Capitalize(fixed)
	}
	return name
}
