// Package alias loads tsconfig.json / jsconfig.json path mappings and
// resolves aliased script specifiers against the project file index.
package alias

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/memo"
)

// ErrConfigParse marks an alias configuration file that could not be parsed.
var ErrConfigParse = errors.New("alias config parse failure")

var errExtendsDepth = errors.New("extends chain too deep")

const maxExtendsDepth = 5

// configNames are checked in order in every directory.
var configNames = []string{"tsconfig.json", "jsconfig.json"}

// Result is the outcome of resolving a specifier through alias rules.
type Result int

const (
	// NoMatch means no rule applies; the specifier is treated as a package.
	NoMatch Result = iota
	// Resolved means a rule matched and one of its targets exists.
	Resolved
	// Missing means a rule matched but none of its targets exists.
	Missing
)

func (r Result) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case Missing:
		return "missing"
	default:
		return "no-match"
	}
}

// Rule is one compilerOptions.paths entry.
type Rule struct {
	Key      string
	Wildcard bool
	Prefix   string
	Suffix   string
	Targets  []string
}

// Match reports whether spec matches the rule and returns the text captured
// by the wildcard.
func (r Rule) Match(spec string) (string, bool) {
	if !r.Wildcard {
		return "", spec == r.Key
	}

	if len(spec) < len(r.Prefix)+len(r.Suffix) ||
		!strings.HasPrefix(spec, r.Prefix) || !strings.HasSuffix(spec, r.Suffix) {
		return "", false
	}

	return spec[len(r.Prefix) : len(spec)-len(r.Suffix)], true
}

// Config is the effective alias configuration for a directory.
type Config struct {
	// File is the project-relative configuration file.
	File string
	// BaseDir is the project-relative directory targets are resolved against.
	BaseDir string
	// BaseURL is the project-relative compilerOptions.baseUrl, if set.
	BaseURL    string
	HasBaseURL bool
	Rules      []Rule
}

// Index answers whether a project-relative file exists.
type Index interface {
	Contains(rel string) bool
}

// Resolver finds and caches alias configuration per directory.
type Resolver struct {
	root   string
	index  Index
	logger *slog.Logger

	dirs  memo.Table[string, *Config]
	files memo.Table[string, *Config]
}

// NewResolver creates a resolver for the project at root (absolute path).
func NewResolver(root string, index Index, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{root: root, index: index, logger: logger}
}

// Resolve rewrites spec through the first matching rule of the nearest
// configuration for dir and reports whether any expanded target exists.
// Later rules are never tried once one has matched.
func (r *Resolver) Resolve(dir, spec string) Result {
	cfg := r.ConfigFor(dir)
	if cfg == nil {
		return NoMatch
	}

	for _, rule := range cfg.Rules {
		captured, ok := rule.Match(spec)
		if !ok {
			continue
		}

		for _, target := range rule.Targets {
			expanded := path.Join(cfg.BaseDir, strings.Replace(target, "*", captured, 1))
			if r.exists(expanded) {
				return Resolved
			}
		}

		return Missing
	}

	return NoMatch
}

// BaseURL returns the project-relative baseUrl in effect for dir.
func (r *Resolver) BaseURL(dir string) (string, bool) {
	cfg := r.ConfigFor(dir)
	if cfg == nil || !cfg.HasBaseURL {
		return "", false
	}

	return cfg.BaseURL, true
}

// ConfigFor returns the nearest configuration at or above dir, or nil.
// A malformed nearest configuration yields nil rather than an outer one.
func (r *Resolver) ConfigFor(dir string) *Config {
	dir = cleanDir(dir)

	return r.dirs.Get(dir, func() *Config {
		for _, name := range configNames {
			file := join(dir, name)
			if !r.fileExists(file) {
				continue
			}

			return r.files.Get(file, func() *Config { return r.loadFile(file) })
		}

		if dir == "" {
			return nil
		}

		return r.ConfigFor(parentDir(dir))
	})
}

func (r *Resolver) exists(p string) bool {
	for _, candidate := range ecosystem.ScriptCandidates(p) {
		if r.index.Contains(candidate) {
			return true
		}
	}

	return false
}

type compilerOptions struct {
	BaseURL *string         `json:"baseUrl"`
	Paths   json.RawMessage `json:"paths"`
}

type configDocument struct {
	Extends         json.RawMessage `json:"extends"`
	CompilerOptions compilerOptions `json:"compilerOptions"`
}

func (r *Resolver) loadFile(file string) *Config {
	cfg, err := r.load(file, 0)
	if err != nil {
		r.logger.Warn("ignoring alias configuration", "file", file, "error", fmt.Errorf("%w: %w", ErrConfigParse, err))

		return nil
	}

	cfg.File = file

	return cfg
}

// load parses file and merges inherited settings from its extends chain.
// The child's baseUrl and paths take precedence over the parent's.
func (r *Resolver) load(file string, depth int) (*Config, error) {
	if depth > maxExtendsDepth {
		return nil, errExtendsDepth
	}

	data, err := os.ReadFile(filepath.Join(r.root, filepath.FromSlash(file)))
	if err != nil {
		return nil, err
	}

	var doc configDocument

	err = json.Unmarshal(StripJSONC(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})), &doc)
	if err != nil {
		return nil, err
	}

	dir := parentDir(file)
	cfg := &Config{BaseDir: dir}

	if parent := r.extendsTarget(dir, doc.Extends); parent != "" {
		inherited, parentErr := r.load(parent, depth+1)
		if parentErr != nil && !errors.Is(parentErr, fs.ErrNotExist) {
			return nil, parentErr
		}

		if inherited != nil {
			*cfg = *inherited
		}
	}

	if doc.CompilerOptions.BaseURL != nil {
		cfg.BaseURL = path.Join(dir, *doc.CompilerOptions.BaseURL)
		cfg.HasBaseURL = true
	}

	if len(doc.CompilerOptions.Paths) > 0 && !bytes.Equal(doc.CompilerOptions.Paths, []byte("null")) {
		rules, rulesErr := parseRules(doc.CompilerOptions.Paths)
		if rulesErr != nil {
			return nil, rulesErr
		}

		cfg.Rules = rules
		cfg.BaseDir = dir
	}

	if cfg.HasBaseURL {
		cfg.BaseDir = cfg.BaseURL
	}

	return cfg, nil
}

// extendsTarget returns the project-relative file a relative "extends"
// points at. Package references and arrays are not followed.
func (r *Resolver) extendsTarget(dir string, raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var ref string

	err := json.Unmarshal(raw, &ref)
	if err != nil {
		return ""
	}

	if !strings.HasPrefix(ref, "./") && !strings.HasPrefix(ref, "../") {
		r.logger.Debug("not following non-relative extends", "dir", dir, "extends", ref)

		return ""
	}

	if !strings.HasSuffix(ref, ".json") {
		ref += ".json"
	}

	return path.Join(dir, ref)
}

// parseRules decodes the paths object preserving key order, since the first
// matching key wins.
func parseRules(raw json.RawMessage) ([]Rule, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("paths: expected object, got %v", tok)
	}

	var rules []Rule

	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return nil, keyErr
		}

		key, _ := keyTok.(string)

		var targets []string

		err = dec.Decode(&targets)
		if err != nil {
			return nil, fmt.Errorf("paths[%q]: %w", key, err)
		}

		rule := Rule{Key: key, Targets: targets}
		if prefix, suffix, ok := strings.Cut(key, "*"); ok {
			rule.Wildcard = true
			rule.Prefix = prefix
			rule.Suffix = suffix
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func (r *Resolver) fileExists(rel string) bool {
	info, err := os.Stat(filepath.Join(r.root, filepath.FromSlash(rel)))

	return err == nil && !info.IsDir()
}

func cleanDir(dir string) string {
	dir = strings.Trim(filepath.ToSlash(dir), "/")
	if dir == "" || dir == "." {
		return ""
	}

	return path.Clean(dir)
}

func parentDir(p string) string {
	parent := path.Dir(p)
	if parent == "." || parent == "/" {
		return ""
	}

	return parent
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}

	return dir + "/" + name
}
