package dto

// MarketingRequest uploads a marketing image as a data URI.
type MarketingRequest struct {
	Image        string  `json:"image"`
	Area         string  `json:"area"`
	Text         *string `json:"text"`
	TextPosition *string `json:"text_position"`
}

// MarketingResponse describes stored marketing image.
type MarketingResponse struct {
	ID           int64   `json:"id"`
	URL          string  `json:"url"`
	Area         string  `json:"area"`
	Text         *string `json:"text"`
	TextPosition *string `json:"text_position"`
}
