package errors

import (
	"fmt"
	"testing"
)

func TestSchemaError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeSerializerNotFound, "serializer not found")
	if err.Code != ErrCodeSerializerNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeSerializerNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeDescriptorInvalid, "catalog failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeDescriptorInvalid) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeSerializerNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("serializer", "UserBlueprint").WithDetail("view", "default")
	if detailed.Details["serializer"] != "UserBlueprint" {
		t.Error("WithDetail should add details")
	}
}

func TestIsThroughFmtWrapping(t *testing.T) {
	inner := InvalidType("email", "invalid")
	outer := fmt.Errorf("generating UserBlueprint: %w", inner)

	if !IsInvalidTypeError(outer) {
		t.Error("IsInvalidTypeError should see through fmt.Errorf wrapping")
	}
	if IsConfigError(outer) {
		t.Error("IsConfigError should be false for an invalid type error")
	}
	if GetCode(fmt.Errorf("plain")) != "" {
		t.Error("GetCode should be empty for non-schema errors")
	}
	if Is(nil, "") {
		t.Error("Is should be false for nil errors")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := ViewNotFound("UserBlueprint", "extended")
	if err.Code != ErrCodeConfig {
		t.Errorf("expected code %s, got %s", ErrCodeConfig, err.Code)
	}
	if err.Details["view"] != "extended" {
		t.Error("ViewNotFound should include view detail")
	}

	err = InvalidType("email", "invalid")
	if err.Code != ErrCodeInvalidType {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidType, err.Code)
	}
	if err.Details["value"] != "invalid" {
		t.Error("InvalidType should include the offending value")
	}

	err = CyclicAssociation([]string{"User", "Address", "User"})
	if err.Error() != "CONFIG_ERROR: cyclic association: User -> Address -> User" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
