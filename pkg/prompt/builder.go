// Package prompt turns a query, recent conversation history, and an assembled
// document context into the ordered message payload sent to the model. Like
// the assembler it is pure: same inputs, same payload, no network.
package prompt

import (
	"errors"
	"strings"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/pkg/llm"
)

// MaxHistoryTurns bounds the history carried into each request. Older turns
// are dropped first.
const MaxHistoryTurns = 6

var (
	ErrEmptyContext = errors.New("assembled context is empty")
	ErrEmptyQuery   = errors.New("query is empty")
)

// Turn is one prior message of the conversation.
type Turn struct {
	Role    string
	Content string
}

// Build produces the chat payload: one priming exchange carrying the fixed
// instruction blocks and the document context, the trimmed history, then the
// user's query as the final turn.
func Build(query string, recentHistory []Turn, assembledContext string) ([]llm.Message, error) {
	if strings.TrimSpace(assembledContext) == "" {
		return nil, ErrEmptyContext
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	history := trimHistory(recentHistory)

	messages := make([]llm.Message, 0, len(history)+3)

	var instruction strings.Builder
	instruction.WriteString(constant.AnalysisTaskPromptV1)
	instruction.WriteString("\n\n")
	instruction.WriteString(constant.AnalysisDataSovereigntyPromptV1)
	instruction.WriteString("\n\n")
	instruction.WriteString(constant.AnalysisTableFirstPromptV1)
	instruction.WriteString("\n\n")
	instruction.WriteString(constant.AnalysisMethodPromptV1)
	instruction.WriteString("\n\n<documents>\n")
	instruction.WriteString(assembledContext)
	instruction.WriteString("\n</documents>")

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: instruction.String(),
	})
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleModel,
		Content: "Understood. I will answer strictly from the provided documents, following the data rules, output rules and method.",
	})

	for _, turn := range history {
		messages = append(messages, llm.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: query,
	})

	return messages, nil
}

// trimHistory keeps the most recent MaxHistoryTurns turns, dropping oldest.
func trimHistory(history []Turn) []Turn {
	if len(history) <= MaxHistoryTurns {
		return history
	}
	return history[len(history)-MaxHistoryTurns:]
}
