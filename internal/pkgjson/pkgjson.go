// Package pkgjson decodes the package.json and tsconfig.json subsets
// spec.md §6.3/§6.4 consume: dependency maps, typings/exports for module
// resolution, and the handful of tsconfig compiler options that steer
// stdlib/types-root selection. Grounded on the teacher's
// internal/config.LoadProjectConfig (strict, optional-file JSON/YAML
// loading over a plain struct).
package pkgjson

import (
	"encoding/json"
	"fmt"
	"os"
)

// StringOrSlice decodes a JSON field that is either a single string or an
// array of strings, as package.json's `typings`/`types` field allows.
type StringOrSlice []string

func (s *StringOrSlice) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrSlice{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = many
	return nil
}

// ExportsEntry is one `exports` map leaf: either a bare types path, or an
// object whose own `types` field names it, or a nested map of further
// entries (conditions/subpaths).
type ExportsEntry struct {
	Types   string
	Nested  map[string]ExportsEntry
}

func (e *ExportsEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Types = s
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if raw, ok := obj["types"]; ok {
		var t string
		if err := json.Unmarshal(raw, &t); err == nil {
			e.Types = t
			return nil
		}
	}
	e.Nested = map[string]ExportsEntry{}
	for k, raw := range obj {
		var child ExportsEntry
		if err := json.Unmarshal(raw, &child); err != nil {
			continue
		}
		e.Nested[k] = child
	}
	return nil
}

// Flatten walks an `exports` map (name -> entry, possibly nested) into a
// flat name -> types-path table per spec.md §4.8.3.
func Flatten(exports map[string]ExportsEntry) map[string]string {
	out := map[string]string{}
	var walk func(prefix string, entries map[string]ExportsEntry)
	walk = func(prefix string, entries map[string]ExportsEntry) {
		for name, entry := range entries {
			key := name
			if prefix != "" {
				key = prefix + name
			}
			if entry.Types != "" {
				out[key] = entry.Types
				continue
			}
			walk(key, entry.Nested)
		}
	}
	walk("", exports)
	return out
}

// PackageJSON is the spec.md §6.3 subset of package.json.
type PackageJSON struct {
	Version          string            `json:"version"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	Typings          StringOrSlice     `json:"typings"`
	Types            StringOrSlice     `json:"types"`
	Module           json.RawMessage   `json:"module"`
	Files            []string          `json:"files"`
	Dist             struct {
		Tarball string `json:"tarball"`
	} `json:"dist"`
	Exports map[string]ExportsEntry `json:"exports"`
}

// TypingsPaths returns every candidate entrypoint named by typings/types,
// in the order package.json conventionally prefers them.
func (p *PackageJSON) TypingsPaths() []string {
	out := append([]string{}, p.Typings...)
	out = append(out, p.Types...)
	return out
}

// ModuleMap decodes the `module` field, which is either a single string
// (the package's own ESM entrypoint) or an object mapping source file to
// ESM replacement.
func (p *PackageJSON) ModuleMap() map[string]string {
	if len(p.Module) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(p.Module, &single); err == nil {
		return map[string]string{".": single}
	}
	var obj map[string]string
	if err := json.Unmarshal(p.Module, &obj); err == nil {
		return obj
	}
	return nil
}

// Load reads and decodes package.json at path.
func Load(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read package.json %s: %w", path, err)
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parse package.json %s: %w", path, err)
	}
	return &pkg, nil
}

// TsConfig is the spec.md §6.4 subset of tsconfig.json's compilerOptions.
type TsConfig struct {
	CompilerOptions struct {
		Module                           string   `json:"module"`
		Lib                               []string `json:"lib"`
		NoImplicitAny                     bool     `json:"noImplicitAny"`
		NoImplicitThis                    bool     `json:"noImplicitThis"`
		StrictNullChecks                  bool     `json:"strictNullChecks"`
		BaseUrl                           string   `json:"baseUrl"`
		TypeRoots                         []string `json:"typeRoots"`
		Types                             []string `json:"types"`
		NoEmit                            bool     `json:"noEmit"`
		ForceConsistentCasingInFileNames  bool     `json:"forceConsistentCasingInFileNames"`
	} `json:"compilerOptions"`
}

// LoadTsConfig reads and decodes tsconfig.json at path. A missing file is
// not an error: tsconfig.json is optional, and the zero TsConfig carries
// sensible defaults (no lib/types overrides).
func LoadTsConfig(path string) (*TsConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &TsConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tsconfig.json %s: %w", path, err)
	}
	var cfg TsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse tsconfig.json %s: %w", path, err)
	}
	return &cfg, nil
}
