// Package validator builds declarative validation rules.
//
// Each helper returns a Rule pairing a Check with the error reported when the
// check fails. Apply evaluates rules and collects failures into
// ValidationErrors, which implements error.
//
//	err := validator.Apply(
//		validator.RequiredString("url", sub.URL),
//		validator.ValidURLWithScheme("url", sub.URL, []string{"http", "https"}),
//		validator.OneOfString("validationType", vt, []string{"FULL", "NONE"}),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//		// verrs.Get("url")
//	}
package validator
