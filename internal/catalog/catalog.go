// Package catalog serves the built-in question set that backs every
// category when nothing better is available.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizbuddy/internal/quizgen"
)

// catalogPathEnv points at a YAML file that replaces the embedded catalog.
const catalogPathEnv = "QUIZ_CATALOG_YAML"

//go:embed catalog.yaml
var catalogFS embed.FS

// Category is one menu entry.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Catalog is a read-only set of questions per category.
type Catalog struct {
	order     []Category
	questions map[string][]quizgen.Question
}

type yamlCatalog struct {
	Categories []yamlCategory `yaml:"categories"`
}

type yamlCategory struct {
	Key       string         `yaml:"key"`
	Label     string         `yaml:"label"`
	Questions []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	Q         string       `yaml:"q"`
	A         yamlOption   `yaml:"a"`
	B         yamlOption   `yaml:"b"`
	Correct   string       `yaml:"correct"`
	Display   string       `yaml:"display"`
	SpeakText string       `yaml:"speakText"`
	Pattern   []string     `yaml:"pattern"`
	Options   []yamlOption `yaml:"options"`
}

type yamlOption struct {
	Text string `yaml:"txt"`
	Icon string `yaml:"icon"`
}

func (o yamlOption) option() quizgen.Option {
	return quizgen.Option{Text: o.Text, Icon: o.Icon}
}

// Parse builds a Catalog from YAML. Every question must pass the
// structural validator and prompts must be unique within a category.
func Parse(data []byte) (*Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(raw.Categories) == 0 {
		return nil, errors.New("catalog has no categories")
	}

	c := &Catalog{questions: make(map[string][]quizgen.Question, len(raw.Categories))}
	structural := &quizgen.StructuralValidator{}

	for _, yc := range raw.Categories {
		key := strings.TrimSpace(yc.Key)
		if key == "" {
			return nil, errors.New("catalog category without key")
		}
		if _, dup := c.questions[key]; dup {
			return nil, fmt.Errorf("catalog category %q listed twice", key)
		}

		seen := make(map[string]struct{}, len(yc.Questions))
		qs := make([]quizgen.Question, 0, len(yc.Questions))
		for i, yq := range yc.Questions {
			q := yq.question()
			if verr := structural.Validate(&q, quizgen.Request{Category: key}); verr != nil {
				return nil, fmt.Errorf("catalog %s[%d]: %w", key, i, verr)
			}
			if _, dup := seen[q.Key()]; dup {
				return nil, fmt.Errorf("catalog %s: duplicate prompt %q", key, q.Q)
			}
			seen[q.Key()] = struct{}{}
			qs = append(qs, q)
		}

		label := yc.Label
		if label == "" {
			label = key
		}
		c.order = append(c.order, Category{Key: key, Label: label})
		c.questions[key] = qs
	}
	return c, nil
}

func (yq yamlQuestion) question() quizgen.Question {
	q := quizgen.Question{
		Q:         yq.Q,
		A:         yq.A.option(),
		B:         yq.B.option(),
		Correct:   quizgen.Answer(yq.Correct),
		Display:   yq.Display,
		SpeakText: yq.SpeakText,
		Pattern:   yq.Pattern,
	}
	for _, o := range yq.Options {
		q.Options = append(q.Options, o.option())
	}
	return q
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog, or the file named by
// QUIZ_CATALOG_YAML when that is set. It is loaded once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		data, err := readCatalog()
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Parse(data)
	})
	return defaultCatalog, defaultErr
}

func readCatalog() ([]byte, error) {
	if path := strings.TrimSpace(os.Getenv(catalogPathEnv)); path != "" {
		return os.ReadFile(path)
	}
	return catalogFS.ReadFile("catalog.yaml")
}

// Questions returns a copy of the built-in questions of category, or nil
// if the category is unknown.
func (c *Catalog) Questions(category string) []quizgen.Question {
	qs, ok := c.questions[category]
	if !ok {
		return nil
	}
	return append([]quizgen.Question(nil), qs...)
}

// Has reports whether category has built-in questions.
func (c *Catalog) Has(category string) bool {
	return len(c.questions[category]) > 0
}

// Categories lists the categories in menu order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.order...)
}
