package chat

type Preset struct {
	// Persona is the roleplay preamble of the grounded prompt.
	Persona string `json:"persona,omitempty" yaml:"persona,omitempty"`
	// ReplyTitle is the title of the decorative reply envelope.
	ReplyTitle string `json:"replyTitle,omitempty" yaml:"replyTitle,omitempty"`
	// ResetReply is the confirmation sent after a history reset.
	ResetReply string `json:"resetReply,omitempty" yaml:"resetReply,omitempty"`

	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty" yaml:"maxTokens,omitempty"`
	Temperature float32 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}
