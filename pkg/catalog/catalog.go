// Package catalog loads the form definitions of the site from YAML.
//
// A catalog is read once at startup and never changes afterwards. Sections
// that are missing leave the matching component disabled.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nkinsurance/quoteflow/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Form names used for leads, events and metrics.
const (
	FormQuote      = "quote"
	FormContact    = "contact"
	FormNewsletter = "newsletter"
)

// ErrInvalidCatalog is returned when a catalog fails its structural checks.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog groups every form definition of the site.
type Catalog struct {
	Quote      domain.WizardDefinition `yaml:"quote"`
	Contact    domain.FormDefinition   `yaml:"contact"`
	Newsletter domain.FormDefinition   `yaml:"newsletter"`
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is broken: %v", err))
	}
	return c
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and checks a catalog.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for i := range c.Quote.Steps {
		c.Quote.Steps[i].Number = i + 1
	}
	c.Contact.Name = FormContact
	c.Newsletter.Name = FormNewsletter

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field names, kinds and uniqueness.
func (c *Catalog) Validate() error {
	var problems []error

	seen := make(map[string]int)
	for _, step := range c.Quote.Steps {
		for _, f := range step.Fields {
			if prev, dup := seen[f.Name]; dup {
				problems = append(problems, fmt.Errorf("quote: field %q appears in steps %d and %d", f.Name, prev, step.Number))
			}
			seen[f.Name] = step.Number
			problems = append(problems, checkField(fmt.Sprintf("quote step %d", step.Number), f)...)
		}
	}
	for _, form := range []domain.FormDefinition{c.Contact, c.Newsletter} {
		names := make(map[string]bool)
		for _, f := range form.Fields {
			if names[f.Name] {
				problems = append(problems, fmt.Errorf("%s: duplicate field %q", form.Name, f.Name))
			}
			names[f.Name] = true
			problems = append(problems, checkField(form.Name, f)...)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(problems...))
	}
	return nil
}

func checkField(where string, f domain.FieldDescriptor) []error {
	var problems []error
	if f.Name == "" {
		problems = append(problems, fmt.Errorf("%s: field without a name", where))
	}
	if !f.Kind.Valid() {
		problems = append(problems, fmt.Errorf("%s: field %q has unknown kind %q", where, f.Name, f.Kind))
	}
	if f.Kind == domain.FieldSelect && len(f.Options) == 0 {
		problems = append(problems, fmt.Errorf("%s: select %q has no options", where, f.Name))
	}
	if f.MinLength < 0 {
		problems = append(problems, fmt.Errorf("%s: field %q has a negative min_length", where, f.Name))
	}
	return problems
}
