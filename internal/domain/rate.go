package domain

// Rate is one stored exchange rate. Date and Symbol form the primary key;
// Base is carried along but is not part of the key.
type Rate struct {
	Date   string  `db:"date"`
	Base   string  `db:"base"`
	Symbol string  `db:"symbol"`
	Rate   float64 `db:"rate"`
}

// Snapshot is the validated body of one provider response.
type Snapshot struct {
	Source string
	Quotes map[string]float64
}
