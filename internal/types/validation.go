package types

import (
	"fmt"
	"strings"
)

// Validation helpers shared by the stores and wire clients. Structural
// checks only; catalog membership is deliberately not enforced (see the
// root package catalog).

// ValidateIDPresent rejects blank identifiers before they reach a URL.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// ValidatePantryItem checks an item form before any network call.
// Name is the only hard requirement; category and quantity are free-form.
func ValidatePantryItem(f PantryItemFields) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("pantry item name must not be empty")
	}
	return nil
}

// ValidateCredentials checks a login/sign-up form locally.
func ValidateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email %q is not valid", email)
	}
	if password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}
