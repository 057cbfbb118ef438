package http

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"math"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/nkinsurance/quoteflow/pkg/domain"
	"github.com/nkinsurance/quoteflow/pkg/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

// PageView is the JSON form of a page.
type PageView struct {
	PageID     string          `json:"page_id"`
	Wizard     domain.StepView `json:"wizard"`
	Contact    domain.FormView `json:"contact"`
	Newsletter domain.FormView `json:"newsletter"`
	Banners    []domain.Banner `json:"banners,omitempty"`
}

func viewOf(p *session.Page) PageView {
	return PageView{
		PageID:     p.ID,
		Wizard:     p.Wizard.View(),
		Contact:    p.Contact.View(),
		Newsletter: p.Newsletter.View(),
		Banners:    p.Notices.Banners(),
	}
}

// Template models. Kinds are plain strings so the templates can compare them.

type fieldData struct {
	Name        string
	Label       string
	Kind        string
	Value       string
	Error       string
	Placeholder string
	Required    bool
	MinLength   int
	Options     []string
}

type wizardData struct {
	Enabled      bool
	Title        string
	Step         int
	Progress     int
	ProgressText string
	Fields       []fieldData
	Summary      []domain.SummaryRow
	Controls     domain.Controls
}

type formData struct {
	Name     string
	Label    string
	Disabled bool
	Fields   []fieldData
}

type pageData struct {
	PageID  string
	Wizard  wizardData
	Forms   []formData
	Banners []domain.Banner
}

func fieldsOf(descs []domain.FieldDescriptor, values domain.FieldValues, errs map[string]string) []fieldData {
	out := make([]fieldData, len(descs))
	for i, d := range descs {
		out[i] = fieldData{
			Name:        d.Name,
			Label:       d.Label,
			Kind:        string(d.Kind),
			Value:       values.Get(d.Name),
			Error:       errs[d.Name],
			Placeholder: d.Placeholder,
			Required:    d.Required,
			MinLength:   d.MinLength,
			Options:     d.Options,
		}
	}
	return out
}

func formDataOf(v domain.FormView) formData {
	return formData{
		Name:     v.Form.Name,
		Label:    v.Label,
		Disabled: v.Disabled,
		Fields:   fieldsOf(v.Form.Fields, v.Values, v.Errors),
	}
}

func dataOf(v PageView) pageData {
	w := v.Wizard
	return pageData{
		PageID: v.PageID,
		Wizard: wizardData{
			Enabled:      w.Enabled,
			Title:        w.Panel.Title,
			Step:         w.Step,
			Progress:     int(math.Round(w.Progress)),
			ProgressText: w.ProgressText,
			Fields:       fieldsOf(w.Panel.Fields, w.Values, w.Errors),
			Summary:      w.Summary,
			Controls:     w.Controls,
		},
		Forms:   []formData{formDataOf(v.Contact), formDataOf(v.Newsletter)},
		Banners: v.Banners,
	}
}

// templates renders the site pages. Templates are parsed on first use.
type templates struct {
	once sync.Once
	page *pongo2.Template
	err  error
}

func (t *templates) load() (*pongo2.Template, error) {
	t.once.Do(func() {
		sub, err := fs.Sub(templatesFS, "templates")
		if err != nil {
			t.err = err
			return
		}
		set := pongo2.NewSet("quoteflow", pongo2.NewFSLoader(sub))
		t.page, t.err = set.FromFile("page.html")
		if t.err != nil {
			t.err = fmt.Errorf("failed to parse page template: %w", t.err)
		}
	})
	return t.page, t.err
}

func (t *templates) render(w io.Writer, v PageView) error {
	tpl, err := t.load()
	if err != nil {
		return err
	}
	return tpl.ExecuteWriter(pongo2.Context{"page": dataOf(v)}, w)
}
