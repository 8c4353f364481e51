package dto

type PlaceResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type LegResponse struct {
	LegID       string        `json:"leg_id"`
	OrderNumber string        `json:"order_number"`
	Restaurant  PlaceResponse `json:"restaurant"`
	Customer    PlaceResponse `json:"customer"`
}

type ListLegsResponse struct {
	Legs []LegResponse `json:"legs"`
}
