package http

import (
	"strings"
	"testing"
)

type testBody struct {
	Name string  `json:"name" validate:"required"`
	Date *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	IDs  []int64 `json:"ids" validate:"dive,gt=0"`
}

func strPtr(s string) *string { return &s }

func TestValidateStruct_ValidInput(t *testing.T) {
	s := testBody{Name: "n", Date: strPtr("2024-02-29"), IDs: []int64{1, 2}}

	if errs := ValidateStruct(s); len(errs) != 0 {
		t.Errorf("Expected no validation errors, got %v", errs)
	}
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	errs := ValidateStruct(testBody{})
	if len(errs) != 1 {
		t.Fatalf("Expected 1 error, got %v", errs)
	}
	if errs[0].Field != "name" || !strings.Contains(errs[0].Message, "required") {
		t.Errorf("unexpected error %+v", errs[0])
	}
}

func TestValidateStruct_DateFormat(t *testing.T) {
	errs := ValidateStruct(testBody{Name: "n", Date: strPtr("29/02/2024")})
	if len(errs) != 1 || errs[0].Field != "date" {
		t.Fatalf("Expected a date error, got %v", errs)
	}
}

func TestValidateStruct_PositiveIDs(t *testing.T) {
	errs := ValidateStruct(testBody{Name: "n", IDs: []int64{3, 0, -1}})
	if len(errs) != 2 {
		t.Fatalf("Expected 2 id errors, got %v", errs)
	}
	for _, e := range errs {
		if !strings.HasPrefix(e.Field, "ids[") {
			t.Errorf("unexpected field %q", e.Field)
		}
	}
}
