package models

type GenerateRequest struct {
	Form     FormSnapshot `json:"form"`
	Format   string       `json:"format,omitempty"`
	Language string       `json:"lang,omitempty"`
}

type EncodedPayload struct {
	Payload string `json:"payload"`
	QrPng   string `json:"qr_png"` // data:image/png;base64 URL
}

type GenerateResponse struct {
	Format   string         `json:"format"`
	Personal EncodedPayload `json:"personal"`
	Medical  EncodedPayload `json:"medical"`
}

type DateMaskRequest struct {
	Value string `json:"value"`
}

type DateMaskResponse struct {
	Value string `json:"value"`
	State string `json:"state"`
}

type LanguageRequest struct {
	Lang string `json:"lang"`
}

type LanguageResponse struct {
	Lang      string `json:"lang"`
	Persisted bool   `json:"persisted"`
}

type TranslationsResponse struct {
	Lang      string            `json:"lang"`
	Languages []LanguageInfo    `json:"languages"`
	Strings   map[string]string `json:"strings"`
}

type LanguageInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Flag  string `json:"flag"`
}

// ResetResponse tells the client to clear both QR containers. MinDeparture is the
// earliest selectable departure date.
type ResetResponse struct {
	OK           bool   `json:"ok"`
	MinDeparture string `json:"min_departure"`
}
