package services

import (
	"context"
	"testing"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTSCleanupKeepsSpanishText(t *testing.T) {
	in := "¡Hola! ¿Sabías que el pingüino vive en la Antártida?"
	assert.Equal(t, in, ttsCleanup.ReplaceAllString(in, ""))
}

func TestTTSCleanupStripsEmojisAndMarkup(t *testing.T) {
	in := "¡Los elefantes son INCREÍBLES! 🐘💙 <b>enormes</b> & *fuertes*"
	out := ttsCleanup.ReplaceAllString(in, "")
	assert.Equal(t, "¡Los elefantes son INCREÍBLES!  benormesb  fuertes", out)
}

func TestSynthesizeWithoutKeyIsUnavailable(t *testing.T) {
	svc := &SpeechService{}

	_, err := svc.Synthesize(context.Background(), dto.SynthesizeRequest{Text: "hola"})
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 503, appErr.StatusCode)
}
