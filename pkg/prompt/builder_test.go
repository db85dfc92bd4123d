package prompt

import (
	"fmt"
	"testing"

	"ai-knowledgebase-be/internal/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIncludesFixedInstructionBlocks(t *testing.T) {
	messages, err := Build("compare prices", nil, "=== FILE_START ===\ndata\n=== FILE_END ===")
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	first := messages[0]
	assert.Equal(t, constant.ChatMessageRoleUser, first.Role)
	assert.Contains(t, first.Content, constant.AnalysisDataSovereigntyPromptV1)
	assert.Contains(t, first.Content, constant.AnalysisTableFirstPromptV1)
	assert.Contains(t, first.Content, constant.AnalysisMethodPromptV1)
	assert.Contains(t, first.Content, "<documents>")
}

func TestBuildQueryIsFinalUserTurn(t *testing.T) {
	messages, err := Build("what is the total?", nil, "context body")
	require.NoError(t, err)

	last := messages[len(messages)-1]
	assert.Equal(t, constant.ChatMessageRoleUser, last.Role)
	assert.Equal(t, "what is the total?", last.Content)
}

func TestBuildTrimsHistoryToMostRecentSix(t *testing.T) {
	history := make([]Turn, 0, 10)
	for i := 0; i < 10; i++ {
		role := constant.ChatMessageRoleUser
		if i%2 == 1 {
			role = constant.ChatMessageRoleModel
		}
		history = append(history, Turn{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}

	messages, err := Build("next question", history, "context body")
	require.NoError(t, err)

	// 2 priming messages + 6 history turns + 1 query.
	assert.Len(t, messages, 9)

	// Oldest turns dropped, recency preserved.
	joined := ""
	for _, m := range messages {
		joined += m.Content + "\n"
	}
	assert.NotContains(t, joined, "turn 0")
	assert.NotContains(t, joined, "turn 3")
	assert.Contains(t, joined, "turn 4")
	assert.Contains(t, joined, "turn 9")
}

func TestBuildKeepsShortHistoryIntact(t *testing.T) {
	history := []Turn{
		{Role: constant.ChatMessageRoleUser, Content: "hi"},
		{Role: constant.ChatMessageRoleModel, Content: "hello"},
	}

	messages, err := Build("q", history, "context body")
	require.NoError(t, err)
	assert.Len(t, messages, 5)
}

func TestBuildRejectsEmptyContext(t *testing.T) {
	_, err := Build("question", nil, "")
	assert.ErrorIs(t, err, ErrEmptyContext)

	_, err = Build("question", nil, "   \n ")
	assert.ErrorIs(t, err, ErrEmptyContext)
}

func TestBuildRejectsEmptyQuery(t *testing.T) {
	_, err := Build("", nil, "context body")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = Build("   ", nil, "context body")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
