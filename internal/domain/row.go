package domain

// DisplayRow is one line of the tabular summary.
type DisplayRow struct {
	Planet     string `json:"planet"`
	House      string `json:"house"`
	Position   string `json:"position"`
	Speed      string `json:"speed"`
	Retrograde string `json:"retrograde"`
}
