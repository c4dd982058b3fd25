package badgekit

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("badgecolor", func(fl validator.FieldLevel) bool {
		_, err := ParseColor(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the structural invariants of t. It returns nil or
// ValidationErrors listing every violation with its element index and field.
// Geometry outside the page is not an error; see BoundsWarnings.
func Validate(t *Template) error {
	if t == nil {
		return ValidationErrors{{Index: PageLevel, Field: "template", Reason: "is required"}}
	}

	var verrs ValidationErrors
	verrs = append(verrs, structErrors(PageLevel, "page.", t.Page)...)
	if len(verrs) == 0 {
		if _, err := t.Page.Transform(); err != nil {
			verrs = append(verrs, &ValidationError{Index: PageLevel, Field: "page", Reason: err.Error()})
		}
	}

	if t.Elements == nil {
		verrs = append(verrs, &ValidationError{Index: PageLevel, Field: "elements", Reason: "is required"})
	}
	for i, e := range t.Elements {
		if e == nil {
			verrs = append(verrs, &ValidationError{Index: i, Field: "type", Reason: "is required"})
			continue
		}
		e = normalize(e)
		switch e.(type) {
		case TextElement, TextAreaElement, CheckboxElement, ImageElement,
			LineElement, SquareElement, BarcodeElement:
		default:
			verrs = append(verrs, &ValidationError{Index: i, Field: "type", Reason: fmt.Sprintf("%T is not a known element type", e)})
			continue
		}
		verrs = append(verrs, structErrors(i, "", e)...)
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

func structErrors(index int, prefix string, v any) ValidationErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return ValidationErrors{{Index: index, Field: strings.TrimSuffix(prefix, "."), Reason: err.Error()}}
	}
	out := make(ValidationErrors, 0, len(fes))
	for _, fe := range fes {
		out = append(out, &ValidationError{
			Index:  index,
			Field:  prefix + fe.Field(),
			Reason: reasonFor(fe),
		})
	}
	return out
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "badgecolor":
		return fmt.Sprintf("%q is not a valid color", fmt.Sprint(fe.Value()))
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}

// BoundsWarnings lists elements whose box does not lie entirely on the page.
// Such elements still render and simply overflow the page edge.
func BoundsWarnings(t *Template) []*ValidationError {
	if t == nil {
		return nil
	}
	tr, err := t.Page.Transform()
	if err != nil {
		return nil
	}
	var out []*ValidationError
	for i, e := range t.Elements {
		if e == nil {
			continue
		}
		if !tr.InBounds(e.Bounds().Box()) {
			out = append(out, &ValidationError{Index: i, Field: "bounds", Reason: "extends beyond the page"})
		}
	}
	return out
}
