package aspects

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

const sampleJSON = `{
  "primal": ["aer", "ignis"],
  "compound": ["lux"],
  "combinations": {"lux": ["aer", "ignis"]},
  "translations": {"aer": "Air", "lux": ["light", "bright glow"]}
}`

const sampleTOML = `
primal = ["aer", "ignis"]
compound = ["lux"]

[combinations]
lux = ["aer", "ignis"]

[translations]
aer = "Air"
lux = ["light", "bright glow"]
`

func TestRead(t *testing.T) {
	for name, read := range map[string]func() (*Data, error){
		"json": func() (*Data, error) { return Read(strings.NewReader(sampleJSON)) },
		"toml": func() (*Data, error) { return ReadTOML(strings.NewReader(sampleTOML)) },
	} {
		t.Run(name, func(t *testing.T) {
			d, err := read()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got := strings.Join(d.Aspects(), ","); got != "aer,ignis,lux" {
				t.Errorf("Aspects() = %s", got)
			}
			if got := d.Title("lux"); got != "Light, Bright Glow" {
				t.Errorf("Title(lux) = %q", got)
			}
			if got := d.Title("aer"); got != "Air" {
				t.Errorf("Title(aer) = %q", got)
			}
			if got := d.Title("ignis"); got != "ignis" {
				t.Errorf("Title(ignis) = %q, want identifier fallback", got)
			}
		})
	}
}

func TestReadSameHashAcrossFormats(t *testing.T) {
	j, err := Read(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	tm, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	if j.Hash() != tm.Hash() {
		t.Error("equal datasets should hash equally")
	}
	tm.Combinations["lux"] = []string{"ignis", "aer"}
	if j.Hash() == tm.Hash() {
		t.Error("different recipes should hash differently")
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  apperrors.Code
	}{
		{"malformed", `{"primal": [`, apperrors.ErrCodeInvalidFormat},
		{"bad translation", `{"primal": [], "compound": [], "translations": {"a": 1}}`, apperrors.ErrCodeInvalidFormat},
		{"missing primal", `{"compound": []}`, apperrors.ErrCodeInvalidRecipeData},
		{"missing compound", `{"primal": []}`, apperrors.ErrCodeInvalidRecipeData},
		{"empty id", `{"primal": [""], "compound": []}`, apperrors.ErrCodeInvalidRecipeData},
		{"empty recipe", `{"primal": [], "compound": ["a"], "combinations": {"a": []}}`, apperrors.ErrCodeInvalidRecipeData},
		{"empty component", `{"primal": [], "compound": ["a"], "combinations": {"a": ["b", " "]}}`, apperrors.ErrCodeInvalidRecipeData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			if !apperrors.Is(err, tt.code) {
				t.Errorf("Read() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadAcceptsUndeclaredComponents(t *testing.T) {
	d, err := Read(strings.NewReader(`{"primal": ["a"], "compound": ["c"], "combinations": {"c": ["a", "x"]}}`))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	g := d.Graph()
	if g.IsValid("x") {
		t.Error("undeclared component should not be a valid endpoint")
	}
	if len(g.Neighbors("x")) != 1 {
		t.Errorf("Neighbors(x) = %v, want [c]", g.Neighbors("x"))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "data.json")
	tomlPath := filepath.Join(dir, "data.TOML")
	if err := os.WriteFile(jsonPath, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{jsonPath, tomlPath} {
		d, err := Load(p)
		if err != nil {
			t.Fatalf("Load(%s): %v", p, err)
		}
		if len(d.Compound) != 1 {
			t.Errorf("Load(%s) compound = %v", p, d.Compound)
		}
	}

	_, err := Load(filepath.Join(dir, "missing.json"))
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestNamesJSONForm(t *testing.T) {
	d, err := Read(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Translations["aer"].MarshalJSON()
	if err != nil || string(b) != `"Air"` {
		t.Errorf("single name marshals to %s (%v)", b, err)
	}
	b, err = d.Translations["lux"].MarshalJSON()
	if err != nil || string(b) != `["light","bright glow"]` {
		t.Errorf("name list marshals to %s (%v)", b, err)
	}
}
