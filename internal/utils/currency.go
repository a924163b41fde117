package utils

// IsValidCurrencyCode reports whether code looks like an ISO 4217 currency
// code: exactly three uppercase ASCII letters. Validated once at account
// creation and never revisited, since account currency is immutable.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
