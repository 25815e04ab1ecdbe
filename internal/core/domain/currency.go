package domain

// Currency represents a supported currency in the domain.
// Precision is the number of minor-unit digits used for display
// formatting only; accumulation always happens at full precision.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "BHD")
	Symbol       string `json:"symbol"`       // e.g., "BD"
	Name         string `json:"name"`         // e.g., "Bahraini Dinar"
	Precision    int    `json:"precision"`    // e.g., 3 for BHD, 2 for USD
	AuditFields
}
