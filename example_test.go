package quoteflow_test

import (
	"context"
	"fmt"
	"log"

	"github.com/nkinsurance/quoteflow"
)

// ExampleEngine_NewPage walks the first step of the quote wizard.
func ExampleEngine_NewPage() {
	ctx := context.Background()
	eng, err := quoteflow.New()
	if err != nil {
		log.Fatal(err)
	}

	page := eng.NewPage(ctx)
	defer page.Close()

	w := page.Wizard
	fmt.Println(w.View().ProgressText)

	// Required fields block the way forward.
	fmt.Println(w.Next(ctx), w.View().Errors["email"])

	_ = w.SetValues(ctx, map[string]string{
		"firstName": "Ana",
		"lastName":  "Silva",
		"email":     "ana@example.com",
		"phone":     "5551234567",
	})
	fmt.Println(w.Next(ctx), w.View().ProgressText)
	fmt.Println(w.Values()["phone"])

	// Output:
	// Step 1 of 4
	// false This field is required
	// true Step 2 of 4
	// (555) 123-4567
}
