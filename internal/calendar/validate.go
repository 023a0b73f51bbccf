package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/eventcal/internal/model"
)

// newValidator returns a validator that checks Event tags plus the rule
// that an event must end after it starts.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(eventTimeOrder, model.Event{})
	return v
}

// eventTimeOrder rejects events whose end is not after their start. Times
// that fail to parse are left to the field-level datetime rule.
func eventTimeOrder(sl validator.StructLevel) {
	e := sl.Current().Interface().(model.Event)

	start, err := time.Parse(model.TimeLayout, e.StartTime)
	if err != nil {
		return
	}
	end, err := time.Parse(model.TimeLayout, e.EndTime)
	if err != nil {
		return
	}
	if !end.After(start) {
		sl.ReportError(e.EndTime, "EndTime", "endTime", "after_start", e.StartTime)
	}
}

// validateEvent checks e and converts the first failure into a
// *ValidationError with a message fit for the status bar.
func validateEvent(v *validator.Validate, e model.Event) error {
	err := v.Struct(e)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating event: %w", err)
	}

	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "after_start":
		return "End time must be after start time."
	case "required":
		return fmt.Sprintf("%s is required.", fieldLabel(fe.Field()))
	case "datetime":
		if fe.Param() == model.DateLayout {
			return fmt.Sprintf("%s must be a date (YYYY-MM-DD).", fieldLabel(fe.Field()))
		}
		return fmt.Sprintf("%s must be a time (HH:MM).", fieldLabel(fe.Field()))
	case "hexcolor":
		return "Color must be a hex color such as #FF5733."
	default:
		return fmt.Sprintf("%s is invalid.", fieldLabel(fe.Field()))
	}
}

func fieldLabel(field string) string {
	switch field {
	case "StartTime":
		return "Start time"
	case "EndTime":
		return "End time"
	default:
		return field
	}
}

// normalizeEvent trims text fields and rewrites times to zero-padded HH:MM
// so that string comparison of times matches chronological order.
func normalizeEvent(e model.Event, defaultColor string) model.Event {
	e.Name = strings.TrimSpace(e.Name)
	e.StartTime = normalizeClock(e.StartTime)
	e.EndTime = normalizeClock(e.EndTime)
	e.Date = strings.TrimSpace(e.Date)
	e.Color = strings.TrimSpace(e.Color)
	if e.Color == "" {
		e.Color = defaultColor
	}
	return e
}

func normalizeClock(s string) string {
	s = strings.TrimSpace(s)
	t, err := time.Parse(model.TimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format(model.TimeLayout)
}
