package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// DefaultLanguage is consulted when a language lacks a key.
const DefaultLanguage = "en"

//go:embed labels/*.toml
var labels embed.FS

// Catalog maps (language, key) to a label or fmt template. It is immutable
// once built and safe for concurrent use.
type Catalog struct {
	langs map[string]map[string]string
}

// New builds a catalog from every <lang>.toml file at the root of fsys.
func New(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return nil, err
	}
	c := &Catalog{langs: make(map[string]map[string]string, len(files))}
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		entries := map[string]string{}
		if _, err := toml.Decode(string(data), &entries); err != nil {
			return nil, fmt.Errorf("labels %s: %w", f, err)
		}
		c.langs[strings.TrimSuffix(path.Base(f), ".toml")] = entries
	}
	if _, ok := c.langs[DefaultLanguage]; !ok {
		return nil, fmt.Errorf("labels: no %s.toml", DefaultLanguage)
	}
	return c, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	sub, err := fs.Sub(labels, "labels")
	if err != nil {
		return nil, err
	}
	return New(sub)
})

// Default returns the catalog of the bundled labels, loaded once.
func Default() (*Catalog, error) { return builtin() }

// Lookup returns the label for key in lang, falling back to the default
// language and then to the key itself.
func (c *Catalog) Lookup(lang, key string) string {
	if v, ok := c.langs[lang][key]; ok {
		return v
	}
	if v, ok := c.langs[DefaultLanguage][key]; ok {
		return v
	}
	return key
}

// Format looks up a template and applies args to it.
func (c *Catalog) Format(lang, key string, args ...any) string {
	return fmt.Sprintf(c.Lookup(lang, key), args...)
}

// Has reports whether lang has its own labels.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.langs[lang]
	return ok
}

// Languages lists the available language codes, sorted.
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.langs))
	for l := range c.langs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
