package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidLength indicates phone number length is not 11 digits
	ErrInvalidLength = errors.New("phone number must be exactly 11 digits")

	// ErrInvalidPrefix indicates phone number doesn't start with a valid Nigerian mobile prefix
	ErrInvalidPrefix = errors.New("phone number must start with a valid Nigerian mobile prefix")

	// ErrInvalidFormat indicates phone number contains invalid characters
	ErrInvalidFormat = errors.New("phone number can only contain digits")

	// ErrEmptyPhone indicates phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")
)

// operatorPrefixes maps Nigerian mobile operator prefixes to operator names
var operatorPrefixes = map[string]string{
	"0803": "MTN", "0806": "MTN", "0703": "MTN", "0706": "MTN",
	"0810": "MTN", "0813": "MTN", "0814": "MTN", "0816": "MTN",
	"0903": "MTN", "0906": "MTN", "0913": "MTN", "0916": "MTN",
	"0805": "Glo", "0807": "Glo", "0705": "Glo", "0811": "Glo",
	"0815": "Glo", "0905": "Glo", "0915": "Glo",
	"0802": "Airtel", "0808": "Airtel", "0708": "Airtel", "0701": "Airtel",
	"0812": "Airtel", "0901": "Airtel", "0902": "Airtel", "0904": "Airtel",
	"0907": "Airtel", "0912": "Airtel",
	"0809": "9mobile", "0817": "9mobile", "0818": "9mobile",
	"0908": "9mobile", "0909": "9mobile",
}

// phoneRegex matches digits only
var phoneRegex = regexp.MustCompile(`^\d+$`)

// PhoneValidator handles Nigerian phone number validation
type PhoneValidator struct{}

// NewPhoneValidator creates a new phone validator instance
func NewPhoneValidator() *PhoneValidator {
	return &PhoneValidator{}
}

// Validate validates a Nigerian mobile number
// Accepts format: 08031234567, 0803 123 4567, +234 803 123 4567
// Returns sanitized phone number (digits only) and error if invalid
func (v *PhoneValidator) Validate(phone string) (string, error) {
	if phone == "" {
		return "", ErrEmptyPhone
	}

	sanitized := v.Sanitize(phone)

	if !phoneRegex.MatchString(sanitized) {
		return "", ErrInvalidFormat
	}

	if len(sanitized) != 11 {
		return "", ErrInvalidLength
	}

	if !v.IsValidPrefix(sanitized) {
		return "", ErrInvalidPrefix
	}

	return sanitized, nil
}

// Sanitize removes separators and normalizes the 234 country code to a
// leading zero.
func (v *PhoneValidator) Sanitize(phone string) string {
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "", ".", "")
	phone = replacer.Replace(phone)

	// Replace country code 234 with the local leading zero
	if strings.HasPrefix(phone, "234") && len(phone) == 13 {
		phone = "0" + phone[3:]
	}

	return phone
}

// IsValidPrefix checks if phone number has a known Nigerian mobile prefix
func (v *PhoneValidator) IsValidPrefix(phone string) bool {
	if len(phone) < 4 {
		return false
	}
	_, ok := operatorPrefixes[phone[:4]]
	return ok
}

// Format formats a phone number in the standard display format: 0803 123 4567
func (v *PhoneValidator) Format(phone string) (string, error) {
	sanitized, err := v.Validate(phone)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s %s %s",
		sanitized[0:4],  // 0803
		sanitized[4:7],  // 123
		sanitized[7:11], // 4567
	), nil
}

// GetOperator returns the mobile operator name based on prefix
func (v *PhoneValidator) GetOperator(phone string) (string, error) {
	sanitized, err := v.Validate(phone)
	if err != nil {
		return "", err
	}

	operator, ok := operatorPrefixes[sanitized[:4]]
	if !ok {
		return "", ErrInvalidPrefix
	}
	return operator, nil
}

// IsValid is a convenience method that returns true if phone is valid
func (v *PhoneValidator) IsValid(phone string) bool {
	_, err := v.Validate(phone)
	return err == nil
}
