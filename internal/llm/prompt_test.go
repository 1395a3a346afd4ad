package llm_test

import (
	"testing"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTurns_Empty(t *testing.T) {
	turns := llm.BuildTurns(nil, "Tell me about Lalibela")

	require.Len(t, turns, 2)
	assert.Equal(t, llm.RoleInstruction, turns[0].Role)
	assert.Contains(t, turns[0].Text, "Ethiopian tourism")
	assert.Equal(t, llm.Turn{Role: llm.RoleCaller, Text: "Tell me about Lalibela"}, turns[1])
}

func TestBuildTurns_RoleMapping(t *testing.T) {
	history := []domain.Message{
		{Sender: domain.SenderUser, Content: "Hi"},
		{Sender: domain.SenderBot, Content: "Hello! How can I help?"},
		{Sender: domain.SenderSystem, Content: "Session resumed"},
		{Sender: domain.SenderUser, Content: "Best time to visit Simien?"},
		{Sender: domain.SenderBot, Content: "October to March."},
	}

	turns := llm.BuildTurns(history, "And Danakil?")

	want := []llm.Role{
		llm.RoleInstruction,
		llm.RoleCaller,
		llm.RoleCounterparty,
		llm.RoleCounterparty,
		llm.RoleCaller,
		llm.RoleCounterparty,
		llm.RoleCaller,
	}
	require.Len(t, turns, len(want))
	for i, role := range want {
		assert.Equal(t, role, turns[i].Role, "turn %d", i)
	}
	assert.Equal(t, "Session resumed", turns[3].Text)
	assert.Equal(t, "And Danakil?", turns[len(turns)-1].Text)
}

func TestDefaultGenerationConfig(t *testing.T) {
	assert.Equal(t, float32(0.7), llm.DefaultGenerationConfig.Temperature)
	assert.Equal(t, float32(0.95), llm.DefaultGenerationConfig.TopP)
	assert.Equal(t, int32(40), llm.DefaultGenerationConfig.TopK)
	assert.Equal(t, int32(1024), llm.DefaultGenerationConfig.MaxOutputTokens)
}
