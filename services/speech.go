package services

import (
	"bytes"
	context2 "context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

const ttsEndpoint = "https://texttospeech.googleapis.com/v1/text:synthesize"

// TTS voices read emojis out loud, so everything outside word chars,
// whitespace and Spanish punctuation/accents is stripped first.
// RE2's \w is ASCII, hence the explicit accented letters.
var ttsCleanup = regexp.MustCompile(`[^\w\s.,;:¿?¡!áéíóúüñÁÉÍÓÚÜÑ-]`)

// SpeechService proxies Google Cloud Text-to-Speech for the Jaggy
// voice. Defaults match the persona: a young male voice pitched up and
// sped up slightly.
type SpeechService struct {
	context.DefaultService

	httpClient *http.Client
	apiKey     string
}

const SPEECH_SVC = "speech_svc"

func (svc SpeechService) Id() string {
	return SPEECH_SVC
}

func (svc *SpeechService) Configure(ctx *context.Context) error {
	svc.apiKey = strings.TrimSpace(os.Getenv("TTS_API_KEY"))
	if svc.apiKey == "" {
		svc.apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}

	svc.httpClient = &http.Client{
		Transport: &http.Transport{
			DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *SpeechService) Start() error {
	if svc.apiKey == "" {
		log.Warn("TTS_API_KEY not set, speech synthesis disabled")
	}
	return nil
}

type ttsRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		Pitch         float64 `json:"pitch"`
		SpeakingRate  float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

type ttsResponse struct {
	AudioContent string `json:"audioContent"`
}

func (svc *SpeechService) Synthesize(ctx context2.Context, req dto.SynthesizeRequest) (*dto.SynthesizeResponse, error) {
	if svc.apiKey == "" {
		return nil, shared.NewServiceUnavailableError(nil, "La síntesis de voz no está configurada")
	}

	text := ttsCleanup.ReplaceAllString(strings.TrimSpace(req.Text), "")

	languageCode := req.LanguageCode
	if languageCode == "" {
		languageCode = "es-US"
	}
	voiceName := req.VoiceName
	if voiceName == "" {
		voiceName = "es-US-Neural2-B"
	}
	pitch := 5.0
	if req.Pitch != nil {
		pitch = *req.Pitch
	}
	speakingRate := 1.2
	if req.SpeakingRate != nil {
		speakingRate = *req.SpeakingRate
	}

	var body ttsRequest
	body.Input.Text = text
	body.Voice.LanguageCode = languageCode
	body.Voice.Name = voiceName
	body.AudioConfig.AudioEncoding = "MP3"
	body.AudioConfig.Pitch = pitch
	body.AudioConfig.SpeakingRate = speakingRate

	payload, err := sonic.Marshal(body)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode synthesis request")
	}

	respBody, err := svc.postWithRetry(ctx, payload)
	if err != nil {
		log.WithError(err).Error("Text-to-Speech request failed")
		return nil, shared.NewInternalError(err, "Error generando audio")
	}

	var parsed ttsResponse
	if err := sonic.Unmarshal(respBody, &parsed); err != nil {
		return nil, shared.NewInternalError(err, "Failed to decode synthesis response")
	}
	if parsed.AudioContent == "" {
		return nil, shared.NewInternalError(nil, "Error generando audio")
	}

	return &dto.SynthesizeResponse{
		AudioContent: parsed.AudioContent,
		Mime:         "audio/mp3",
		Voice:        voiceName,
		Text:         text,
	}, nil
}

func (svc *SpeechService) postWithRetry(ctx context2.Context, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= 1; attempt++ {
		body, err := svc.post(ctx, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !isTransient(err) {
			break
		}
		log.WithError(err).Warn("Transient TTS error, retrying once")
	}
	return nil, lastErr
}

func (svc *SpeechService) post(ctx context2.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ttsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", svc.apiKey)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		preview := body
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return nil, fmt.Errorf("tts status %d: %s", resp.StatusCode, preview)
	}
	return body, nil
}
