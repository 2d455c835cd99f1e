// Package catalog holds the static, read-only collection of physics formulas
// grouped by topic.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/phrazzld/physref/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Topic is a subject area and its formulas in display order.
type Topic struct {
	Key      string
	Title    string
	Formulas []domain.FormulaEntry
}

// Catalog maps topic keys to ordered formula lists. It is immutable after Load.
type Catalog struct {
	order  []string
	topics map[string]Topic
}

type document struct {
	Topics []struct {
		Key      string                `yaml:"key"`
		Formulas []domain.FormulaEntry `yaml:"formulas"`
	} `yaml:"topics"`
}

var defaultCatalog = MustLoad(catalogYAML)

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	return defaultCatalog
}

// Load parses a YAML catalog document.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Topics) == 0 {
		return nil, errors.New("catalog has no topics")
	}

	title := cases.Title(language.English)
	c := &Catalog{topics: make(map[string]Topic, len(doc.Topics))}
	for _, t := range doc.Topics {
		if t.Key == "" {
			return nil, errors.New("catalog topic without a key")
		}
		if _, dup := c.topics[t.Key]; dup {
			return nil, fmt.Errorf("duplicate catalog topic %q", t.Key)
		}
		c.order = append(c.order, t.Key)
		c.topics[t.Key] = Topic{
			Key:      t.Key,
			Title:    title.String(t.Key),
			Formulas: t.Formulas,
		}
	}

	return c, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the formulas for a topic, or domain.ErrTopicNotFound.
// The returned slice is a copy and may be modified by the caller.
func (c *Catalog) Get(topic string) ([]domain.FormulaEntry, error) {
	t, err := c.Topic(topic)
	if err != nil {
		return nil, err
	}
	return t.Formulas, nil
}

// Topic returns a copy of the named topic, or domain.ErrTopicNotFound.
func (c *Catalog) Topic(key string) (Topic, error) {
	t, ok := c.topics[key]
	if !ok {
		return Topic{}, fmt.Errorf("%w: %q", domain.ErrTopicNotFound, key)
	}
	t.Formulas = append([]domain.FormulaEntry(nil), t.Formulas...)
	return t, nil
}

// Topics returns every topic in display order.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, 0, len(c.order))
	for _, key := range c.order {
		t, _ := c.Topic(key)
		out = append(out, t)
	}
	return out
}
