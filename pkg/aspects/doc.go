// Package aspects loads the recipe data the path solver is built from.
//
// # Overview
//
// A dataset lists the primal aspects, the compound aspects, the recipe of
// each compound (its two components) and optional display names:
//
//	{
//	  "primal": ["aer", "ignis"],
//	  "compound": ["lux"],
//	  "combinations": {"lux": ["aer", "ignis"]},
//	  "translations": {"lux": ["light"]}
//	}
//
// The same structure can be written as TOML:
//
//	primal = ["aer", "ignis"]
//	compound = ["lux"]
//
//	[combinations]
//	lux = ["aer", "ignis"]
//
// # Sources
//
//   - [Read] and [ReadTOML] decode from a reader
//   - [Load] reads a file, choosing the format by extension
//   - [Fetch] downloads a dataset over HTTP with retries
//   - [Default] returns the embedded game dataset
//   - [Open] dispatches between the above from a single string
//
// # Validation
//
// Every loader calls [Data.Validate], which performs structural checks only:
// the primal and compound lists must be present, identifiers must be
// non-empty and recipes must name at least one component. Components that
// are referenced but never declared are accepted; the graph builder gives
// them a weight and connects them, but they cannot be used as endpoints.
//
// # Translations
//
// A translation is either a single display name, used as-is, or a list of
// names that [Data.Title] title-cases and joins with ", ".
package aspects
