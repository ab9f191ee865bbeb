package validation_test

import (
	"testing"

	"github.com/connyyu/pdbstats/internal/platform/validation"
)

func TestGoplaygroundValidator_ValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		given    any
		field    string
		hasError bool
		errMsg   string
	}{
		{"Required field is present", struct {
			Name string `validate:"required"`
		}{Name: "Antonio"}, "Name", false, ""},
		{"Required field is missing", struct {
			Name string `validate:"required"`
		}{}, "Name", true, "Name is required"},
		{"Year below lower bound", struct {
			FromYear int `json:"from_year" validate:"gte=1900"`
		}{FromYear: 1801}, "from_year", true, "from_year must be greater than or equal to 1900"},
		{"Range end before range start", struct {
			FromYear int `json:"from_year"`
			ToYear   int `json:"to_year" validate:"gtefield=FromYear"`
		}{FromYear: 2020, ToYear: 2010}, "to_year", true, "to_year must be greater than or equal to FromYear"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := validation.NewGoPlaygroundValidator()

			errs := v.ValidateStruct(tc.given)
			if errs != nil && !tc.hasError {
				t.Errorf("v.ValidateStruct(%v) = %+v, want: %+v", tc.given, errs, nil)
			}

			gotMsg, wantMsg := errs[tc.field], tc.errMsg
			if gotMsg != wantMsg {
				t.Errorf("errs[%q] = %q, want: %q", tc.field, gotMsg, wantMsg)
			}
		})
	}
}
