// Copyright 2026 The openreel Authors
// SPDX-License-Identifier: MIT

package element

import "math"

// InvalidDataError reports an element whose geometry is missing or
// malformed. The scene builder logs it and skips the element; one bad
// element never aborts a batch.
type InvalidDataError struct {
	ID    string
	Field string
}

func (e *InvalidDataError) Error() string {
	return "element " + e.ID + ": invalid or missing " + e.Field
}

// Validate checks that the element carries the geometry its kind requires.
func Validate(el Element) error {
	if el.ID == "" {
		return &InvalidDataError{ID: "(unset)", Field: "id"}
	}
	if bad(el.Props.X) {
		return &InvalidDataError{ID: el.ID, Field: "x"}
	}
	if bad(el.Props.Y) {
		return &InvalidDataError{ID: el.ID, Field: "y"}
	}

	switch el.Kind {
	case KindCircle:
		if el.Props.Radius <= 0 || bad(el.Props.Radius) {
			return &InvalidDataError{ID: el.ID, Field: "radius"}
		}
	case KindVideo, KindImage, KindRect, KindText, KindCaption:
		if el.Props.Width <= 0 || bad(el.Props.Width) {
			return &InvalidDataError{ID: el.ID, Field: "width"}
		}
		if el.Props.Height <= 0 || bad(el.Props.Height) {
			return &InvalidDataError{ID: el.ID, Field: "height"}
		}
	case KindBackground:
		// Background fills derive their geometry from the frame.
	}
	return nil
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
