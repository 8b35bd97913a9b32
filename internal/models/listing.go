package models

// HouseListing is a reference listing from the bundled dataset. The dataset
// is read-only and loaded once at startup; listings are never mutated.
type HouseListing struct {
	Province      string  `json:"province"`
	Price         float64 `json:"price"`
	Bedrooms      int     `json:"bedrooms"`
	RealBathrooms int     `json:"real_bathrooms"`
	LivingInM2    float64 `json:"living_in_m2"`
	Grade         int     `json:"grade"`
}
