package form

type TextRequest struct {
	Text *string `json:"text"`
}
