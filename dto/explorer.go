package dto

// HistoryTurn is one prior conversational turn. Roles other than
// "user" map to the model role on the wire.
type HistoryTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ExplorerRequest struct {
	Message string        `json:"message" validate:"max=4000"`
	History []HistoryTurn `json:"history" validate:"dive"`
}

func (r ExplorerRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ExplorerResponse struct {
	Answer string `json:"answer"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

func (r GenerateImageRequest) Validate() error {
	return GetValidator().Struct(r)
}

type GenerateImageResponse struct {
	ImageBase64 string `json:"imageBase64,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Mime        string `json:"mime"`
	Model       string `json:"model"`
	Prompt      string `json:"prompt"`
}

type SynthesizeRequest struct {
	Text         string  `json:"text" validate:"required,max=4000"`
	LanguageCode string  `json:"languageCode"`
	VoiceName    string  `json:"voiceName"`
	Pitch        *float64 `json:"pitch"`
	SpeakingRate *float64 `json:"speakingRate"`
}

func (r SynthesizeRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SynthesizeResponse struct {
	AudioContent string `json:"audioContent"`
	Mime         string `json:"mime"`
	Voice        string `json:"voice"`
	Text         string `json:"text"`
}

type HealthResponse struct {
	OK         bool   `json:"ok"`
	HasKey     bool   `json:"hasKey"`
	TextModel  string `json:"textModel"`
	ImageModel string `json:"imageModel"`
}
