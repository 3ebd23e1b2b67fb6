package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/andri/asteria/pkg/library"
)

// Listing is a library directory and the games in it.
type Listing struct {
	Dir   string          `json:"dir" yaml:"dir"`
	Games []library.Entry `json:"games" yaml:"games"`
}

// RenderGames renders a library listing. The script format has no meaning
// for a listing and is rejected.
func RenderGames(w io.Writer, listing Listing, format Format) error {
	if listing.Games == nil {
		listing.Games = []library.Entry{}
	}
	switch format {
	case FormatText:
		NewTableWriter(w).WriteGames(listing.Dir, listing.Games)
		return nil
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(listing)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(listing); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("output format %s is not supported for game listings (valid formats: text, json, yaml)", format)
	}
}
