package entity

type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type FittingResult struct {
	FittedImage    string `json:"fitted_image"`
	FittedImageURL string `json:"fitted_image_url,omitempty"`
	Offset         Offset `json:"offset"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}
