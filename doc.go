/*
Package quoteflow runs the lead capture forms of an insurance marketing site.

The centerpiece is the quote wizard: a form split into numbered steps, shown
one at a time, where moving forward requires the visible step to pass
validation and the final step hands the collected lead to a submission sink.
Next to it live the contact and newsletter forms and the notification
presenter that shows transient success and error banners.

# Pages

Every page load gets a fresh Page with its own wizard, forms and presenter.
Nothing is kept across reloads.

	eng, err := quoteflow.New()
	if err != nil {
		log.Fatal(err)
	}

	page := eng.NewPage(ctx)
	defer page.Close()

	_ = page.Wizard.SetValues(ctx, map[string]string{
		"firstName": "Ana",
		"lastName":  "Silva",
		"email":     "ana@example.com",
		"phone":     "5551234567",
	})
	if !page.Wizard.Next(ctx) {
		fmt.Println(page.Wizard.View().Errors)
	}

# Submissions

Submit returns a Submission that completes in the background. While it is
pending the wizard refuses to move or submit again. On success it shows a
success banner, clears the values and returns to step 1; on failure it shows
an error banner and keeps everything for a retry.

	sub, err := page.Wizard.Submit(ctx)
	if err != nil {
		return err
	}
	res, err := sub.Wait(ctx)

# Transports

The wizard never renders anything itself. Its View is consumed by the HTTP
server in pkg/adapters/http and by the terminal runner in pkg/runner.
*/
package quoteflow
