package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/criss159/fauna-kids/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestBuildContentsOrder(t *testing.T) {
	history := []dto.HistoryTurn{
		{Role: "user", Text: "háblame del león"},
		{Role: "assistant", Text: "¡El león es el rey! 🦁"},
	}

	contents := BuildContents("¿dónde vive?", history)
	require.Len(t, contents, 4)

	// Persona goes first as a user turn.
	assert.Equal(t, "user", contents[0].Role)
	assert.Contains(t, contents[0].Parts[0].Text, "Jaggy")

	assert.Equal(t, "user", contents[1].Role)
	assert.Equal(t, "háblame del león", contents[1].Parts[0].Text)
	assert.Equal(t, "model", contents[2].Role)

	// The current message closes the conversation.
	assert.Equal(t, "user", contents[3].Role)
	assert.Equal(t, "¿dónde vive?", contents[3].Parts[0].Text)
}

func TestBuildContentsTruncatesHistory(t *testing.T) {
	history := make([]dto.HistoryTurn, 0, 25)
	for i := 0; i < 25; i++ {
		history = append(history, dto.HistoryTurn{Role: "user", Text: fmt.Sprintf("turno %d", i)})
	}

	contents := BuildContents("última", history)

	// Persona + 10 most recent turns + current message.
	require.Len(t, contents, 12)
	assert.Equal(t, "turno 15", contents[1].Parts[0].Text)
	assert.Equal(t, "turno 24", contents[10].Parts[0].Text)
	assert.Equal(t, "última", contents[11].Parts[0].Text)
}

func TestBuildContentsRoleMapping(t *testing.T) {
	history := []dto.HistoryTurn{
		{Role: "assistant", Text: "a"},
		{Role: "model", Text: "b"},
		{Role: "user", Text: "c"},
		{Role: "", Text: "d"},
	}

	contents := BuildContents("x", history)
	require.Len(t, contents, 6)

	// Anything that is not "user" speaks as the model.
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "model", contents[2].Role)
	assert.Equal(t, "user", contents[3].Role)
	assert.Equal(t, "model", contents[4].Role)
}

func TestAskEmptyMessageGreets(t *testing.T) {
	svc := &GeminiService{monitoringSvc: &MonitoringService{}}

	assert.Equal(t, greetingAnswer, svc.Ask(context.Background(), "", nil))
	assert.Equal(t, greetingAnswer, svc.Ask(context.Background(), "   ", nil))
}

func TestAskWithoutClientFallsBack(t *testing.T) {
	svc := &GeminiService{monitoringSvc: &MonitoringService{}}

	answer := svc.Ask(context.Background(), "el axolote", nil)
	assert.Equal(t, "Información breve sobre el axolote: es un animal fascinante que vive en hábitats variados.", answer)
}

func TestExtractTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "¡Hola! "},
						{Text: "¿Sabías que los pulpos tienen tres corazones? 🐙"},
					},
				},
			},
		},
	}

	assert.Equal(t, "¡Hola! ¿Sabías que los pulpos tienen tres corazones? 🐙", extractText(resp))
	assert.Empty(t, extractText(nil))
	assert.Empty(t, extractText(&genai.GenerateContentResponse{}))
}
