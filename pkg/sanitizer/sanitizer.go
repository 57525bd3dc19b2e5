package sanitizer

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	// Regions checked when a phone number has no country prefix, most
	// common first for this dataset.
	supportedRegions = []string{"BR", "US", "PT"}

	reValidPhone = regexp.MustCompile(`^(?:|\+?[1-9]\d{7,14})$`)
	reSeparators = regexp.MustCompile(`[\s\-().]`)
	reDigits     = regexp.MustCompile(`\D`)
	reCboShape   = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// SanitizePhone normalizes phone input to E.164, tolerating the usual
// separator characters. Input that does not look like a phone number at all
// is returned as-is so the validator can report it on the right field path.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	compact := reSeparators.ReplaceAllString(phone, "")
	if compact == "" || !reValidPhone.MatchString(compact) {
		return phone
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(compact, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return phone
}

// SanitizeCboCode normalizes CBO occupation codes to the NNNN-NN shape:
// "252105" and "2521.05" both become "2521-05". Anything that is not six
// digits after stripping separators is returned trimmed, for the validator
// to reject with a pattern message.
func SanitizeCboCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || reCboShape.MatchString(code) {
		return code
	}

	digits := reDigits.ReplaceAllString(code, "")
	if len(digits) == 6 {
		return digits[:4] + "-" + digits[4:]
	}
	return code
}

// SanitizeCountry uppercases ISO country codes; other input passes through
// for the validator to flag.
func SanitizeCountry(country string) string {
	country = strings.TrimSpace(country)
	if len(country) == 2 {
		return strings.ToUpper(country)
	}
	return country
}
