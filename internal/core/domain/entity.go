package domain

// BusinessEntity is the tenant boundary: accounts, movements and accounting
// periods all hang off one entity.
type BusinessEntity struct {
	EntityID            string  `json:"entityID"` // Primary Key (UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // e.g. "PLN"
	IsActive            bool    `json:"isActive"`
	AuditFields
}
