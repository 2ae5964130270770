package kernel

import (
	"strings"

	"workplans/internal/pkg/errs"
)

// ErrEmailIsNotConstructed indicates that an Email was not created through NewEmail.
var ErrEmailIsNotConstructed = errs.NewValueIsRequiredError("email must be created via NewEmail")

// Email is a value object for an email address used to identify plan owners.
// Construction sanitises the raw input: surrounding whitespace is stripped and
// the address is lowercased, so two spellings of the same address always
// compare equal. The zero value is invalid.
//
// Example:
//
//	owner, err := kernel.NewEmail("  Jeff.Bloggs@sanger.ac.uk ")
//	if err != nil {
//	    return err
//	}
//	owner.String() // "jeff.bloggs@sanger.ac.uk"
type Email struct {
	address string
}

// NewEmail creates an Email from a raw address. The input is trimmed and
// lowercased before validation. Returns an error when the sanitised address
// is empty or has no "@".
func NewEmail(raw string) (Email, error) {
	sanitised := strings.ToLower(strings.TrimSpace(raw))
	if sanitised == "" {
		return Email{}, errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(sanitised, "@") {
		return Email{}, errs.NewValueIsInvalidError("email")
	}
	return Email{address: sanitised}, nil
}

// String returns the sanitised address.
func (e Email) String() string {
	return e.address
}

// IsEqual compares two emails. Sanitisation at construction time makes this
// a plain string comparison.
func (e Email) IsEqual(other Email) bool {
	return e.address == other.address
}

// Validate checks that the Email was properly constructed.
func (e Email) Validate() error {
	if e.address == "" {
		return ErrEmailIsNotConstructed
	}
	return nil
}
