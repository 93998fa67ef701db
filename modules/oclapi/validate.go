package oclapi

import (
	"strings"

	"github.com/dmitrymomot/ocladmin/handler"
	"github.com/dmitrymomot/ocladmin/pkg/ocl"
	"github.com/dmitrymomot/ocladmin/pkg/validator"
)

var (
	urlSchemes      = []string{"http", "https"}
	validationTypes = []string{string(ocl.ValidationFull), string(ocl.ValidationNone)}
)

// normalize checks a subscription received from a client.
// An empty validationType defaults to FULL; case is ignored.
// Failures are returned as handler.ValidationError.
func normalize(sub ocl.Subscription) (ocl.Subscription, error) {
	sub.URL = strings.TrimSpace(sub.URL)
	vt := strings.ToUpper(strings.TrimSpace(string(sub.ValidationType)))
	if vt == "" {
		vt = string(ocl.ValidationFull)
	}

	urlRule := validator.RequiredString("url", sub.URL)
	if sub.URL != "" {
		urlRule = validator.ValidURLWithScheme("url", sub.URL, urlSchemes)
	}
	if err := validator.Apply(
		urlRule,
		validator.OneOfString("validationType", vt, validationTypes),
	); err != nil {
		return sub, toValidationError(err)
	}

	sub.ValidationType = ocl.ValidationType(vt)
	return sub, nil
}

func toValidationError(err error) error {
	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		return err
	}
	out := handler.ValidationError{}
	for _, e := range verrs {
		out.Add(e.Field, e.Message)
	}
	return out
}
