package shared

type ErrorResponse struct {
	Error string `json:"error"`
}

type TranscriptionResponse struct {
	Text string `json:"text"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
