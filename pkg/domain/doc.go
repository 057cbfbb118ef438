/*
Package domain contains the core models of the quote flow.

It defines the wizard state, the step and field definitions read from the
catalog, the values a visitor enters and the view handed to renderers. The
package is kept pure: no I/O, no timers, no persistence.

# Key Entities

  - WizardState: current step, step count and the transient submitting flag.
  - StepDefinition: one panel of the multi-step form and its fields.
  - FieldValues: what the visitor typed, keyed by field name.
  - StepView: everything a renderer needs to draw the current panel.
  - Banner: a transient notification shown on top of the page.
*/
package domain
