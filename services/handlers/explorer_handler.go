package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/lexicon"
	"github.com/criss159/fauna-kids/shared"
)

// ExplorerHandler fronts the three AI proxies: conversation, image
// generation and speech synthesis.
type ExplorerHandler struct {
	geminiSvc   GeminiServiceInterface
	imageSvc    ImageServiceInterface
	speechSvc   SpeechServiceInterface
	progressSvc ProgressServiceInterface
}

func NewExplorerHandler(geminiSvc GeminiServiceInterface, imageSvc ImageServiceInterface, speechSvc SpeechServiceInterface, progressSvc ProgressServiceInterface) *ExplorerHandler {
	return &ExplorerHandler{
		geminiSvc:   geminiSvc,
		imageSvc:    imageSvc,
		speechSvc:   speechSvc,
		progressSvc: progressSvc,
	}
}

// @Summary Service health
// @Description Upstream configuration without exposing secrets
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *ExplorerHandler) Health(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(dto.HealthResponse{
		OK:         true,
		HasKey:     h.geminiSvc.HasKey(),
		TextModel:  h.geminiSvc.TextModel(),
		ImageModel: h.imageSvc.ImageModel(),
	})
}

// @Summary Ask Jaggy
// @Description Conversational turn with history context
// @Tags explorer
// @Accept json
// @Produce json
// @Security Bearer
// @Param explorerRequest body dto.ExplorerRequest true "Message and history"
// @Success 200 {object} dto.ExplorerResponse
// @Router /api/v1/explorer [post]
func (h *ExplorerHandler) Explorer(c *fiber.Ctx) error {
	var req dto.ExplorerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "JSON inválido")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	answer := h.geminiSvc.Ask(c.UserContext(), req.Message, req.History)

	userID, isGuest := requestIdentity(c)
	if !isGuest && req.Message != "" {
		h.progressSvc.RegisterQuestionAsked(userID)
		if animal := lexicon.DetectAnimal(req.Message); animal != "" {
			h.progressSvc.RegisterAnimalExplored(userID, animal)
		}
	}

	return c.Status(http.StatusOK).JSON(dto.ExplorerResponse{Answer: answer})
}

// @Summary Generate animal image
// @Description One square wildlife photo for the animal in the prompt
// @Tags explorer
// @Accept json
// @Produce json
// @Security Bearer
// @Param imageRequest body dto.GenerateImageRequest true "Image prompt"
// @Success 200 {object} dto.GenerateImageResponse
// @Router /api/v1/images/generate [post]
func (h *ExplorerHandler) GenerateImage(c *fiber.Ctx) error {
	var req dto.GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "JSON inválido")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	userID, isGuest := requestIdentity(c)
	resp, err := h.imageSvc.GenerateImage(c.UserContext(), userID, isGuest, req.Prompt)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// @Summary Generated image history
// @Description The user's generated images, newest first
// @Tags explorer
// @Produce json
// @Security Bearer
// @Param limit query int false "Max results (default 50)"
// @Success 200 {object} shared.Response{data=[]model.GeneratedImage}
// @Router /api/v1/images [get]
func (h *ExplorerHandler) ListImages(c *fiber.Ctx) error {
	userID, isGuest := requestIdentity(c)
	images, err := h.imageSvc.ListImages(userID, isGuest, c.QueryInt("limit"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", images)
}

// @Summary Synthesize speech
// @Description Convert text to the Jaggy voice (MP3, base64)
// @Tags explorer
// @Accept json
// @Produce json
// @Security Bearer
// @Param synthesizeRequest body dto.SynthesizeRequest true "Text and voice options"
// @Success 200 {object} dto.SynthesizeResponse
// @Router /api/v1/tts/synthesize [post]
func (h *ExplorerHandler) Synthesize(c *fiber.Ctx) error {
	var req dto.SynthesizeRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "JSON inválido")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.speechSvc.Synthesize(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(resp)
}
