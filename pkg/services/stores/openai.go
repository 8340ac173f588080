package stores

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/enrapt/muninn/pkg/models/chat"
	"github.com/enrapt/muninn/pkg/models/kb"
	"github.com/enrapt/muninn/pkg/settings"
)

const (
	openaiTimeout = time.Second * 30
)

// errors
var (
	ErrEmptyParam   = errors.New("empty param")
	ErrEmptyChoices = errors.New("empty choices")
)

func NewOpenAIClient() *openai.Client {
	occ := openai.DefaultConfig(settings.Current.OpenAIAPIKey)
	occ.HTTPClient = &http.Client{
		Timeout:   openaiTimeout,
		Transport: &http.Transport{Proxy: http.ProxyFromEnvironment},
	}
	return openai.NewClientWithConfig(occ)
}

// Embedder calls the embedding endpoint for one input text.
type Embedder struct {
	oc    *openai.Client
	model openai.EmbeddingModel
}

func NewEmbedder(oc *openai.Client) *Embedder {
	return &Embedder{oc: oc, model: openai.EmbeddingModel(settings.Current.EmbeddingModel)}
}

func (e *Embedder) Embed(ctx context.Context, text string) (vec kb.Vector, err error) {
	if len(text) == 0 {
		err = ErrEmptyParam
		return
	}
	res, err := e.oc.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		logger().Infow("embedding fail", "text", text, "err", err)
		return
	}
	logger().Debugw("embedding res", "text", text, "usage", &res.Usage)
	if len(res.Data) > 0 {
		vec = kb.Vector(res.Data[0].Embedding)
	}
	return
}

// Completer calls the chat completion endpoint with a message sequence
// and returns the first choice's content, untrimmed.
type Completer struct {
	oc          *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewCompleter builds a Completer from settings; non-zero preset fields
// take precedence.
func NewCompleter(oc *openai.Client, preset chat.Preset) *Completer {
	c := &Completer{
		oc:          oc,
		model:       settings.Current.ChatModel,
		maxTokens:   settings.Current.MaxTokens,
		temperature: settings.Current.Temperature,
	}
	if len(preset.Model) > 0 {
		c.model = preset.Model
	}
	if preset.MaxTokens > 0 {
		c.maxTokens = preset.MaxTokens
	}
	if preset.Temperature > 0 {
		c.temperature = preset.Temperature
	}
	return c
}

func (c *Completer) Complete(ctx context.Context, msgs chat.Messages) (string, error) {
	ccm := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		ccm = append(ccm, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	res, err := c.oc.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    ccm,
	})
	if err != nil {
		logger().Infow("call completion fail", "err", err)
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", ErrEmptyChoices
	}
	return res.Choices[0].Message.Content, nil
}
