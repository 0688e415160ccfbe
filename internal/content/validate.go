package content

import (
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

var linkPrefixes = []string{"/", "#", "http://", "https://", "mailto:", "tel:"}

// Validator checks decoded content entries before they reach a page.
type Validator struct {
	v *validator.Validate
}

// NewValidator returns a Validator with the site's custom rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// sitelink accepts in-site routes, fragments and absolute web, mail or phone links.
	_ = v.RegisterValidation("sitelink", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, p := range linkPrefixes {
			if strings.HasPrefix(s, p) {
				return true
			}
		}
		return false
	})
	return &Validator{v: v}
}

// Struct validates a single entry.
func (v *Validator) Struct(s any) error {
	return v.v.Struct(s)
}

// keepValid returns the entries of items that pass validation, logging the
// ones it drops.
func keepValid[T any](v *Validator, log *slog.Logger, kind string, items []T) []T {
	if len(items) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for i := range items {
		if err := v.Struct(&items[i]); err != nil {
			log.Warn("dropping invalid content entry", "kind", kind, "index", i, "error", err)
			continue
		}
		out = append(out, items[i])
	}
	return out
}

// validCTA returns c when it is usable, nil otherwise.
func validCTA(v *Validator, log *slog.Logger, c *CTA) *CTA {
	if c == nil {
		return nil
	}
	if err := v.Struct(c); err != nil {
		log.Warn("dropping invalid call to action", "text", c.Text, "error", err)
		return nil
	}
	return c
}
