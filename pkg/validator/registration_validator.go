package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidTaxID         = errors.New("invalid tax id")
	ErrInvalidName          = errors.New("invalid name")
	ErrInvalidBirthDate     = errors.New("invalid birth date")
	ErrInvalidBranch        = errors.New("invalid branch code")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidCurrency      = errors.New("invalid currency")
)

// RegistrationValidator checks the raw fields collected before a client is
// registered or an account is opened.
type RegistrationValidator struct {
	taxIDRegex    *regexp.Regexp
	branchRegex   *regexp.Regexp
	numberRegex   *regexp.Regexp
	currencyRegex *regexp.Regexp
	now           func() time.Time
}

func NewRegistrationValidator() *RegistrationValidator {
	return &RegistrationValidator{
		taxIDRegex:    regexp.MustCompile(`^[0-9]{11}$`),
		branchRegex:   regexp.MustCompile(`^[0-9]{1,6}$`),
		numberRegex:   regexp.MustCompile(`^[0-9]{1,12}$`),
		currencyRegex: regexp.MustCompile(`^[A-Z]{3}$`),
		now:           time.Now,
	}
}

// NormalizeTaxID strips the usual "000.000.000-00" punctuation.
func NormalizeTaxID(taxID string) string {
	return strings.NewReplacer(".", "", "-", "", " ", "").Replace(taxID)
}

func (v *RegistrationValidator) ValidateClient(taxID, name string, birthDate time.Time) error {
	var errs []error

	if !v.taxIDRegex.MatchString(taxID) {
		errs = append(errs, fmt.Errorf("%w: %q must have 11 digits", ErrInvalidTaxID, taxID))
	}

	if strings.TrimSpace(name) == "" {
		errs = append(errs, ErrInvalidName)
	}

	if birthDate.IsZero() {
		errs = append(errs, fmt.Errorf("%w: missing", ErrInvalidBirthDate))
	} else if birthDate.After(v.now()) {
		errs = append(errs, fmt.Errorf("%w: %s is in the future", ErrInvalidBirthDate, birthDate.Format(time.DateOnly)))
	}

	return errors.Join(errs...)
}

func (v *RegistrationValidator) ValidateAccountKey(branch, number string) error {
	var errs []error

	if !v.branchRegex.MatchString(branch) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidBranch, branch))
	}

	if !v.numberRegex.MatchString(number) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidAccountNumber, number))
	}

	return errors.Join(errs...)
}

func (v *RegistrationValidator) ValidateCurrency(code string) error {
	if !v.currencyRegex.MatchString(code) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return nil
}
