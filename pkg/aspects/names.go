package aspects

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Names holds the display names of one aspect. It decodes from either a
// single string or a list of strings and remembers which form it came from.
type Names struct {
	Values []string
	List   bool
}

// Name returns a single-name translation.
func Name(s string) Names { return Names{Values: []string{s}} }

// NameList returns a list translation.
func NameList(s ...string) Names { return Names{Values: s, List: true} }

// String formats the names for display. A single name is returned as-is;
// list entries are title-cased word by word and joined with ", ".
func (n Names) String() string {
	if !n.List {
		return strings.Join(n.Values, ", ")
	}
	caser := cases.Title(language.English)
	out := make([]string, len(n.Values))
	for i, v := range n.Values {
		out[i] = caser.String(v)
	}
	return strings.Join(out, ", ")
}

func (n Names) MarshalJSON() ([]byte, error) {
	if !n.List && len(n.Values) == 1 {
		return json.Marshal(n.Values[0])
	}
	return json.Marshal(n.Values)
}

func (n *Names) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Name(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("translation must be a string or a list of strings")
	}
	*n = NameList(list...)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (n *Names) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*n = Name(v)
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("translation list entry %v is not a string", item)
			}
			list = append(list, s)
		}
		*n = NameList(list...)
	default:
		return fmt.Errorf("translation must be a string or a list of strings, got %T", v)
	}
	return nil
}

// Title returns the display name of an aspect, falling back to its identifier.
func (d *Data) Title(aspect string) string {
	if n, ok := d.Translations[aspect]; ok && len(n.Values) > 0 {
		return n.String()
	}
	return aspect
}

// Titles returns [Data.Title] for every aspect with a translation.
func (d *Data) Titles() map[string]string {
	out := make(map[string]string, len(d.Translations))
	for a := range d.Translations {
		out[a] = d.Title(a)
	}
	return out
}
