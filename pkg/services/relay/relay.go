package relay

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/enrapt/muninn/pkg/models/chat"
	"github.com/enrapt/muninn/pkg/models/kb"
)

const (
	dftResetSentinel  = "[削除]"
	dftGroundSentinel = "[制約]"
	dftResetReply     = "チャット履歴が削除されました。"
)

// Mode of one inbound message
type Mode int

const (
	ModeNormal Mode = iota
	ModeReset
	ModeGrounded
)

// HistoryStore is the per-user turn log the relay reads and mutates.
type HistoryStore interface {
	Append(ctx context.Context, key chat.TurnKey, content string, at time.Time) error
	Fetch(ctx context.Context, userID string) (chat.Messages, error)
	Reset(ctx context.Context, userID string) error
}

// KnowledgeBase loads the retrieval corpus, fresh on every call.
type KnowledgeBase interface {
	LoadAll(ctx context.Context) (kb.Entries, error)
}

// Completer produces one model reply for a message sequence.
type Completer interface {
	Complete(ctx context.Context, msgs chat.Messages) (string, error)
}

type Config struct {
	History   HistoryStore
	Corpus    KnowledgeBase
	Retriever *Retriever
	Prompts   *PromptBuilder
	Completer Completer

	ResetSentinel  string
	GroundSentinel string
	ResetReply     string

	Now func() time.Time // defaults to time.Now
}

// Relay drives one inbound message through reset, grounded or normal
// handling and returns the reply text for delivery.
type Relay struct {
	cfg Config
}

func New(cfg Config) *Relay {
	if len(cfg.ResetSentinel) == 0 {
		cfg.ResetSentinel = dftResetSentinel
	}
	if len(cfg.GroundSentinel) == 0 {
		cfg.GroundSentinel = dftGroundSentinel
	}
	if len(cfg.ResetReply) == 0 {
		cfg.ResetReply = dftResetReply
	}
	if cfg.Prompts == nil {
		cfg.Prompts = NewPromptBuilder("")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Relay{cfg: cfg}
}

// Classify decide how the message text is handled: the reset sentinel
// matches exactly, the grounding sentinel anywhere in the text.
func (s *Relay) Classify(text string) Mode {
	if text == s.cfg.ResetSentinel {
		return ModeReset
	}
	if strings.Contains(text, s.cfg.GroundSentinel) {
		return ModeGrounded
	}
	return ModeNormal
}

// Process run one inbound message to one reply. Errors from the store,
// the retrieval pipeline or the completion call propagate to the caller;
// nothing is retried.
func (s *Relay) Process(ctx context.Context, userID, text string) (string, error) {
	switch s.Classify(text) {
	case ModeReset:
		if err := s.cfg.History.Reset(ctx, userID); err != nil {
			return "", err
		}
		logger().Infow("history reset", "user", userID)
		return s.cfg.ResetReply, nil
	case ModeGrounded:
		return s.grounded(ctx, text)
	}
	return s.normal(ctx, userID, text)
}

// grounded answers from the knowledge corpus only; neither the question
// nor the reply touches the conversation history.
func (s *Relay) grounded(ctx context.Context, text string) (string, error) {
	entries, err := s.cfg.Corpus.LoadAll(ctx)
	if err != nil {
		return "", err
	}
	snippets, err := s.cfg.Retriever.Retrieve(ctx, entries, text)
	if err != nil {
		return "", err
	}
	msgs := s.cfg.Prompts.Grounded(snippets, text)
	answer, err := s.cfg.Completer.Complete(ctx, msgs)
	if err != nil {
		return "", err
	}
	return trimStart(answer), nil
}

func (s *Relay) normal(ctx context.Context, userID, text string) (string, error) {
	if err := s.cfg.History.Append(ctx, chat.TurnKey{UserID: userID, Role: chat.RoleUser}, text, s.cfg.Now()); err != nil {
		return "", err
	}
	history, err := s.cfg.History.Fetch(ctx, userID)
	if err != nil {
		return "", err
	}
	msgs := s.cfg.Prompts.Plain(history, text)
	answer, err := s.cfg.Completer.Complete(ctx, msgs)
	if err != nil {
		return "", err
	}
	reply := trimStart(answer)
	if err = s.cfg.History.Append(ctx, chat.TurnKey{UserID: userID, Role: chat.RoleAssistant}, reply, s.cfg.Now()); err != nil {
		return "", err
	}
	return reply, nil
}

func trimStart(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
