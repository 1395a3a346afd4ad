package llm

import "github.com/Rrens/tourism-api/internal/domain"

// AssistantInstruction is the persona given to the model ahead of every conversation
const AssistantInstruction = `You are an AI travel assistant specializing in Ethiopian tourism.
Provide helpful and accurate information about Ethiopia, focusing on:
- Tourist attractions and destinations
- Cultural experiences
- Travel tips and recommendations
- Local customs and traditions`

// DefaultGenerationConfig is used for every chat reply. Callers cannot change it.
var DefaultGenerationConfig = GenerationConfig{
	Temperature:     0.7,
	TopP:            0.95,
	TopK:            40,
	MaxOutputTokens: 1024,
}

// BuildTurns assembles the provider history: the instruction turn, then the
// prior messages in order, then the new caller message. Messages from the
// user map to RoleCaller; bot and system messages map to RoleCounterparty.
func BuildTurns(history []domain.Message, message string) []Turn {
	turns := make([]Turn, 0, len(history)+2)
	turns = append(turns, Turn{Role: RoleInstruction, Text: AssistantInstruction})

	for _, m := range history {
		role := RoleCounterparty
		if m.Sender == domain.SenderUser {
			role = RoleCaller
		}
		turns = append(turns, Turn{Role: role, Text: m.Content})
	}

	return append(turns, Turn{Role: RoleCaller, Text: message})
}
