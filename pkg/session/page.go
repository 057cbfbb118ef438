package session

import (
	"sync"
	"time"

	"github.com/nkinsurance/quoteflow/internal/runtime"
	"github.com/nkinsurance/quoteflow/pkg/notify"
)

// Page is one loaded instance of the site.
type Page struct {
	ID         string
	Wizard     *runtime.Wizard
	Contact    *runtime.Form
	Newsletter *runtime.Form
	Notices    *notify.Presenter
	CreatedAt  time.Time

	closeOnce sync.Once
}

// Close cancels every pending submission and banner timer of the page.
func (p *Page) Close() {
	p.closeOnce.Do(func() {
		if p.Wizard != nil {
			p.Wizard.Close()
		}
		if p.Contact != nil {
			p.Contact.Close()
		}
		if p.Newsletter != nil {
			p.Newsletter.Close()
		}
		if p.Notices != nil {
			p.Notices.Close()
		}
	})
}
