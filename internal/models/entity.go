package models

// BusinessEntity represents an organization whose treasury is tracked.
type BusinessEntity struct {
	EntityID            string  `db:"entity_id"`
	Name                string  `db:"name"`
	Description         string  `db:"description"`
	DefaultCurrencyCode *string `db:"default_currency_code"` // Nullable
	IsActive            bool    `db:"is_active"`
	AuditFields
}
