package relay

import (
	"fmt"
	"strings"

	"github.com/enrapt/muninn/pkg/models/chat"
)

const (
	dftPersona = "以下の制約条件に従って、株式会社エンラプトのお問い合わせ窓口チャットボットとしてロールプレイをします。"

	tplGrounded = `%s
---
# 制約条件:
- 制約情報を基に質問文に対する回答文を生成してください。
- 回答は見出し、箇条書き、表などを使って人間が読みやすく表現してください。

---
# 制約情報:
%s

---
# 質問文:
%s

---
# 回答文:
`
)

// PromptBuilder assembles the message sequence sent upstream: either the
// running history as-is, or one grounded prompt built from retrieved
// snippets.
type PromptBuilder struct {
	persona string
}

func NewPromptBuilder(persona string) *PromptBuilder {
	if len(persona) == 0 {
		persona = dftPersona
	}
	return &PromptBuilder{persona: persona}
}

// Plain return the fetched history unchanged, seeding a single user
// message when the history is empty.
func (p *PromptBuilder) Plain(history chat.Messages, input string) chat.Messages {
	if len(history) > 0 {
		return history
	}
	return chat.Messages{{Role: chat.RoleUser, Content: input}}
}

// Grounded wrap the snippets and the question into one user message:
// persona preamble, constraint section, question section and an empty
// answer section for the model to continue.
func (p *PromptBuilder) Grounded(snippets []string, input string) chat.Messages {
	prompt := fmt.Sprintf(tplGrounded, p.persona, strings.Join(snippets, "\n\n"), input)
	return chat.Messages{{Role: chat.RoleUser, Content: prompt}}
}
