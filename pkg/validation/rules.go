package validation

import "vistos/pkg/locale"

// Rule is one cross-field constraint. OK reports whether the record
// satisfies it; on failure the message for Key is attached to Field.
// Rules only run once all per-field checks have passed, so they may assume
// individually well-formed values.
type Rule struct {
	Field string
	Key   string
	OK    func() bool
}

// Run evaluates every rule and merges the failures in declaration order.
// Rules are deliberately not short-circuited: a record violating several
// constraints reports all of them in one pass.
func Run(tr *locale.Translator, rules []Rule) FieldErrors {
	var fieldErrors FieldErrors
	for _, rule := range rules {
		if rule.OK() {
			continue
		}
		fieldErrors = append(fieldErrors, FieldError{
			Field:   rule.Field,
			Message: tr.T(rule.Key),
		})
	}
	return fieldErrors
}
