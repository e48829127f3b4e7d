package aspects

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
	"github.com/matzehuels/aspectpath/pkg/solver"
)

// Data is a decoded recipe dataset.
type Data struct {
	Primal       []string            `json:"primal" toml:"primal"`
	Compound     []string            `json:"compound" toml:"compound"`
	Combinations map[string][]string `json:"combinations" toml:"combinations"`
	Translations map[string]Names    `json:"translations,omitempty" toml:"translations,omitempty"`
}

// Read decodes a JSON dataset from r and validates it. Read does not close r.
func Read(r io.Reader) (*Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode recipe data")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ReadTOML decodes a TOML dataset from r and validates it.
func ReadTOML(r io.Reader) (*Data, error) {
	var d Data
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode recipe data")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads the dataset at path. Files ending in .toml are decoded as
// TOML; everything else is decoded as JSON.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "recipe data %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if isTOML(path) {
		return ReadTOML(f)
	}
	return Read(f)
}

func isTOML(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".toml")
}

// Validate performs load-time structural checks.
func (d *Data) Validate() error {
	if d.Primal == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRecipeData, "missing primal aspect list")
	}
	if d.Compound == nil {
		return apperrors.New(apperrors.ErrCodeInvalidRecipeData, "missing compound aspect list")
	}
	for _, list := range [][]string{d.Primal, d.Compound} {
		for i, a := range list {
			if strings.TrimSpace(a) == "" {
				return apperrors.New(apperrors.ErrCodeInvalidRecipeData, "empty aspect identifier at index %d", i)
			}
		}
	}
	for _, key := range sortedKeys(d.Combinations) {
		parts := d.Combinations[key]
		if strings.TrimSpace(key) == "" {
			return apperrors.New(apperrors.ErrCodeInvalidRecipeData, "recipe with empty aspect identifier")
		}
		if len(parts) == 0 {
			return apperrors.New(apperrors.ErrCodeInvalidRecipeData, "recipe for %q has no components", key)
		}
		if slices.ContainsFunc(parts, func(p string) bool { return strings.TrimSpace(p) == "" }) {
			return apperrors.New(apperrors.ErrCodeInvalidRecipeData, "recipe for %q has an empty component", key)
		}
	}
	return nil
}

// Graph builds the solver graph for this dataset.
func (d *Data) Graph() *solver.Graph {
	return solver.Build(solver.Recipes(d.Combinations), d.Primal, d.Compound)
}

// Aspects returns the declared aspects, primal first.
func (d *Data) Aspects() []string {
	return slices.Concat(d.Primal, d.Compound)
}

// Hash returns a stable digest of the dataset, used to scope cached solutions.
func (d *Data) Hash() string {
	// Maps marshal with sorted keys, so equal datasets hash equally.
	b, _ := json.Marshal(d)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
