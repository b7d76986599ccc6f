package domain

// Model is a raw record from the pricing API. Per-token prices arrive as
// decimal strings and stay untouched until normalization.
type Model struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Pricing struct {
		Prompt     string `json:"prompt"`
		Completion string `json:"completion"`
	} `json:"pricing"`
	ContextLength int `json:"context_length"`
	Architecture  struct {
		Modality string `json:"modality"`
	} `json:"architecture"`
	Created int64 `json:"created,omitempty"`
}

// ProcessedModel is the display-ready record derived 1:1 from Model.
// Prices are per 1M tokens.
type ProcessedModel struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Provider      string  `json:"provider"`
	InputPrice    float64 `json:"inputPrice"`
	OutputPrice   float64 `json:"outputPrice"`
	ContextWindow int     `json:"contextWindow"`
	Modality      string  `json:"modality"`
}
