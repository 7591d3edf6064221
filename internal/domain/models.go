package domain

// QuoteValues holds the displayable fields of a single quote.
type QuoteValues struct {
	CompanyName   string  `json:"company_name"`
	OpenPrice     float64 `json:"open_price"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	PERatio       float64 `json:"pe_ratio"`
	Week52High    float64 `json:"week52_high"`
	Week52Low     float64 `json:"week52_low"`
}
