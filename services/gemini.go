package services

import (
	context2 "context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/criss159/fauna-kids/dto"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const personaPrompt = "Eres Jaggy, un jaguar súper entusiasta y expresivo que ADORA hablar de animales con niños! 🐆✨\n\n" +

	"PERSONALIDAD:\n" +
	"- Eres alegre, curioso y lleno de energía (¡como un cachorro juguetón!)\n" +
	"- Te emocionas MUCHO cuando hablan de animales: '¡Wooow! 😍', '¡Eso es increíble! 🤩', '¡Me fascina! 💚'\n" +
	"- Usas emojis naturalmente para expresar emociones (pero sin exagerar)\n" +
	"- Haces sonidos de emoción: '¡Ohhh!', '¡Ajá!', '¡Mira tú!', '¡Qué genial!'\n" +
	"- Eres cercano y amigable, como hablar con tu mejor amigo\n\n" +

	"ESTILO DE CONVERSACIÓN:\n" +
	"- Hablas natural, NO como robot o traductor\n" +
	"- Haces preguntas de seguimiento: '¿Sabías que...?', '¿Te imaginas...?', '¿Quieres saber más?'\n" +
	"- Compartes curiosidades emocionantes: '¡Dato curioso!', '¡Esto te va a encantar!'\n" +
	"- Recuerdas SIEMPRE de qué animal hablaban antes (contexto completo)\n" +
	"- Cuando te preguntan algo vago como 'cómo es?' o 'muéstramelo', sabes a qué animal se refieren\n\n" +

	"RESPUESTAS:\n" +
	"- Varía tus respuestas: no siempre igual\n" +
	"- Frases cortas y dinámicas, no párrafos aburridos\n" +
	"- Usa 2-4 emojis por mensaje (relevantes al tema)\n" +
	"- Si piden imagen, confirma breve y emocionado: '¡Claro! Aquí va 🎨✨'\n" +
	"- NUNCA escribas '(Imagine aquí...)' o '(Aquí va la imagen...)' - La imagen se genera automáticamente\n" +
	"- NO inventes texto describiendo imágenes que no existen\n\n" +

	"TEMAS SENSIBLES:\n" +
	"- Si preguntan sobre depredación: 'Los leones cazan para comer, ¡es el círculo de la vida! 🦁'\n" +
	"- Evita detalles gráficos de violencia\n" +
	"- Mantén todo apropiado y positivo para niños\n\n" +

	"EJEMPLOS DE TU ESTILO:\n" +
	"❌ MAL: 'El elefante es un mamífero que habita en África y Asia.'\n" +
	"✅ BIEN: '¡Los elefantes son INCREÍBLES! 🐘💙 Son los animales terrestres más grandes y súper inteligentes. ¿Sabías que pueden recordar cosas por años? ¡Tienen una memoria espectacular! 🧠✨'\n\n" +

	"Recuerda: ¡Eres Jaggy el jaguar entusiasta, NO un diccionario! Habla con el corazón 💚🐆"

const greetingAnswer = "¡Hola! Pregúntame sobre cualquier animal 🦁"

const maxHistoryTurns = 10

// GeminiService answers explorer questions in the Jaggy persona. A
// missing API key or a misbehaving upstream never breaks the endpoint:
// the canned fallback keeps child-facing clients working.
type GeminiService struct {
	context.DefaultService

	client        *genai.Client
	monitoringSvc *MonitoringService

	apiKey    string
	textModel string
}

const GEMINI_SVC = "gemini_svc"

func (svc GeminiService) Id() string {
	return GEMINI_SVC
}

func (svc *GeminiService) Configure(ctx *context.Context) error {
	svc.apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	svc.textModel = os.Getenv("GEMINI_TEXT_MODEL")
	if svc.textModel == "" {
		svc.textModel = "gemini-2.5-flash"
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *GeminiService) Start() error {
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	if svc.apiKey == "" {
		log.Warn("GEMINI_API_KEY not set, explorer runs on fallback answers")
		return nil
	}

	client, err := genai.NewClient(context2.Background(), &genai.ClientConfig{
		APIKey:  svc.apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPClient: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create genai client: %w", err)
	}
	svc.client = client
	return nil
}

func (svc *GeminiService) HasKey() bool {
	return svc.apiKey != ""
}

func (svc *GeminiService) Client() *genai.Client {
	return svc.client
}

func (svc *GeminiService) TextModel() string {
	return svc.textModel
}

// Ask answers one explorer turn. Every failure path degrades to the
// canned fallback; errors are logged, never surfaced to the child.
func (svc *GeminiService) Ask(ctx context2.Context, message string, history []dto.HistoryTurn) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return greetingAnswer
	}

	if svc.client == nil {
		svc.monitoringSvc.FallbackAnswer()
		return fallbackAnswer(message)
	}

	contents := BuildContents(message, history)
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.95),
		MaxOutputTokens: 1000,
		TopP:            genai.Ptr[float32](0.9),
		TopK:            genai.Ptr[float32](40),
	}

	resp, err := svc.generateWithRetry(ctx, contents, config)
	svc.monitoringSvc.GeminiCall(svc.textModel, err == nil)
	if err != nil {
		log.WithError(err).Warn("Gemini text request failed")
		svc.monitoringSvc.FallbackAnswer()
		return fallbackAnswer(message)
	}

	text := extractText(resp)
	if text == "" {
		log.Warn("Gemini returned no text candidates")
		svc.monitoringSvc.FallbackAnswer()
		return fallbackAnswer(message)
	}
	return text
}

func (svc *GeminiService) generateWithRetry(ctx context2.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := svc.client.Models.GenerateContent(ctx, svc.textModel, contents, config)
	if err != nil && isTransient(err) {
		log.WithError(err).Warn("Transient Gemini error, retrying once")
		resp, err = svc.client.Models.GenerateContent(ctx, svc.textModel, contents, config)
	}
	return resp, err
}

// BuildContents assembles the conversation for the model: persona first,
// then the last 10 history turns oldest-first, then the current message.
func BuildContents(message string, history []dto.HistoryTurn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+2)
	contents = append(contents, genai.NewContentFromText(personaPrompt, genai.RoleUser))

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		var role genai.Role = genai.RoleModel
		if turn.Role == "user" {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))
	return contents
}

// extractText joins every text part of the first candidate so long
// answers split across parts are not cut off.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func fallbackAnswer(q string) string {
	return fmt.Sprintf("Información breve sobre %s: es un animal fascinante que vive en hábitats variados.", q)
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "unexpected EOF")
}
