package validator

import "testing"

type signup struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

func TestValidate(t *testing.T) {
	v := New()
	if err := v.Validate(signup{Name: "Ada", Email: "ada@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Validate(signup{Email: "nope"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	fields := FieldErrors(err)
	if fields["name"] != "required" || fields["email"] != "email" {
		t.Fatalf("unexpected field errors %v", fields)
	}
}
