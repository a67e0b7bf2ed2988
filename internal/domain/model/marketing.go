package model

// MarketingAsset is a promotional image placed in a storefront area.
type MarketingAsset struct {
	ID           int64
	URL          string
	Area         string
	Text         *string
	TextPosition *string
}

// MarketingUpload carries an uploaded marketing image. Image is a base64 data URI.
type MarketingUpload struct {
	Image        string
	Area         string
	Text         *string
	TextPosition *string
}
