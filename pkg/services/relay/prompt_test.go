package relay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enrapt/muninn/pkg/models/chat"
)

func TestPromptPlain(t *testing.T) {
	pb := NewPromptBuilder("")

	history := chat.Messages{
		{Role: chat.RoleUser, Content: "hi"},
		{Role: chat.RoleAssistant, Content: "hello"},
	}
	assert.Equal(t, history, pb.Plain(history, "next"))

	seeded := pb.Plain(nil, "first question")
	require.Len(t, seeded, 1)
	assert.Equal(t, chat.Message{Role: chat.RoleUser, Content: "first question"}, seeded[0])
}

func TestPromptGrounded(t *testing.T) {
	pb := NewPromptBuilder("")
	msgs := pb.Grounded([]string{"snippet one", "snippet two"}, "[制約]営業時間は?")

	require.Len(t, msgs, 1)
	assert.Equal(t, chat.RoleUser, msgs[0].Role)

	prompt := msgs[0].Content
	assert.Contains(t, prompt, dftPersona)
	assert.Contains(t, prompt, "# 制約情報:")
	assert.Contains(t, prompt, "snippet one\n\nsnippet two")
	assert.Contains(t, prompt, "# 質問文:\n[制約]営業時間は?")
	assert.True(t, strings.HasSuffix(prompt, "# 回答文:\n"), "prompt ends with an open answer section")
}

func TestPromptGroundedPersonaOverride(t *testing.T) {
	pb := NewPromptBuilder("You answer for Acme Corp support.")
	msgs := pb.Grounded(nil, "q")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Content, "Acme Corp")
	assert.NotContains(t, msgs[0].Content, dftPersona)
}
