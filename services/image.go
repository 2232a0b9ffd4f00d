package services

import (
	"bytes"
	context2 "context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/criss159/fauna-kids/dto"
	"github.com/criss159/fauna-kids/lexicon"
	"github.com/criss159/fauna-kids/model"
	"github.com/criss159/fauna-kids/shared"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// ErrNoImageData means the upstream answered but none of the byte
// extraction strategies produced usable image data.
var ErrNoImageData = errors.New("no image data in generation response")

// ImageService turns an explorer prompt into one generated wildlife
// photo. The prompt is reduced to an animal name, translated to English
// and expanded into the fixed photographic template before hitting the
// image model.
type ImageService struct {
	context.DefaultService

	geminiSvc     *GeminiService
	minioSvc      *MinIOService
	sqlSvc        *PostgresService
	progressSvc   *ProgressService
	monitoringSvc *MonitoringService

	imageModel string
}

const IMAGE_SVC = "image_svc"

func (svc ImageService) Id() string {
	return IMAGE_SVC
}

func (svc *ImageService) Configure(ctx *context.Context) error {
	svc.imageModel = os.Getenv("GEMINI_IMAGE_MODEL")
	if svc.imageModel == "" {
		svc.imageModel = "imagen-3.0-generate-002"
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ImageService) Start() error {
	svc.geminiSvc = svc.Service(GEMINI_SVC).(*GeminiService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func (svc *ImageService) ImageModel() string {
	return svc.imageModel
}

// GenerateImage resolves the animal, generates one 1:1 photo and stores
// it. Unlike the conversational path there is no canned fallback: a
// broken image pipeline surfaces as an error.
func (svc *ImageService) GenerateImage(ctx context2.Context, userID string, isGuest bool, prompt string) (*dto.GenerateImageResponse, error) {
	if !svc.geminiSvc.HasKey() {
		return nil, shared.NewServiceUnavailableError(nil, "La generación de imágenes no está configurada")
	}

	animal := lexicon.ExtractAnimalName(prompt)
	fullPrompt := lexicon.ImagePrompt(lexicon.TranslateAnimal(animal))

	log.WithFields(log.Fields{
		"animal": animal,
		"model":  svc.imageModel,
	}).Info("Generating image")

	resp, err := svc.generateWithRetry(ctx, fullPrompt)
	svc.monitoringSvc.GeminiCall(svc.imageModel, err == nil)
	if err != nil {
		log.WithError(err).Error("Image generation failed")
		return nil, shared.NewInternalError(err, "Error al generar la imagen")
	}

	data, uri, mime, err := extractImage(resp)
	if err != nil {
		log.WithError(err).Error("Image generation returned no data")
		return nil, shared.NewInternalError(err, "No se pudo generar la imagen. Intenta con otro prompt.")
	}

	imageURL := uri
	var imageBase64 string
	if len(data) > 0 {
		imageBase64 = base64.StdEncoding.EncodeToString(data)
		imageURL = svc.storeImage(ctx, userID, data, mime)
	}

	svc.monitoringSvc.ImageGenerated()
	if !isGuest {
		if _, err := svc.sqlSvc.CreateGeneratedImage(&model.GeneratedImage{
			UserID:     userID,
			Prompt:     prompt,
			ImageURL:   imageURL,
			AnimalName: animal,
		}); err != nil {
			log.WithError(err).Warn("Failed to persist generated image")
		}
		svc.progressSvc.RegisterImageGenerated(userID)
		svc.progressSvc.RegisterAnimalExplored(userID, lexicon.Capitalize(animal))
	}

	return &dto.GenerateImageResponse{
		ImageBase64: imageBase64,
		ImageURL:    imageURL,
		Mime:        mime,
		Model:       svc.imageModel,
		Prompt:      animal,
	}, nil
}

// ListImages returns the user's generated images, newest first. Guests
// never have stored images, so they get an empty list.
func (svc *ImageService) ListImages(userID string, isGuest bool, limit int) ([]model.GeneratedImage, error) {
	if isGuest {
		return []model.GeneratedImage{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	images, err := svc.sqlSvc.ListGeneratedImages(userID, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to list images")
	}
	return images, nil
}

func (svc *ImageService) generateWithRetry(ctx context2.Context, prompt string) (*genai.GenerateImagesResponse, error) {
	config := &genai.GenerateImagesConfig{
		NumberOfImages:    1,
		AspectRatio:       "1:1",
		SafetyFilterLevel: genai.SafetyFilterLevelBlockMediumAndAbove,
		PersonGeneration:  genai.PersonGenerationAllowAdult,
		NegativePrompt:    lexicon.NegativePrompt,
	}

	client := svc.geminiSvc.Client()
	resp, err := client.Models.GenerateImages(ctx, svc.imageModel, prompt, config)
	if err != nil && isTransient(err) {
		log.WithError(err).Warn("Transient image generation error, retrying once")
		resp, err = client.Models.GenerateImages(ctx, svc.imageModel, prompt, config)
	}
	return resp, err
}

// extractImage walks the known places image data can live in a
// generation response, in order: raw bytes, a GCS reference, then any
// other generated entry carrying inline bytes.
func extractImage(resp *genai.GenerateImagesResponse) (data []byte, uri string, mime string, err error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, "", "", ErrNoImageData
	}

	first := resp.GeneratedImages[0]
	if first.Image != nil {
		mime = first.Image.MIMEType
		if mime == "" {
			mime = "image/png"
		}
		if len(first.Image.ImageBytes) > 0 {
			return first.Image.ImageBytes, "", mime, nil
		}
		if first.Image.GCSURI != "" {
			return nil, first.Image.GCSURI, mime, nil
		}
	}

	for _, generated := range resp.GeneratedImages[1:] {
		if generated.Image != nil && len(generated.Image.ImageBytes) > 0 {
			mime = generated.Image.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return generated.Image.ImageBytes, "", mime, nil
		}
	}

	return nil, "", "", ErrNoImageData
}

// storeImage uploads to MinIO when configured, otherwise returns an
// inline data URL so the client always gets something renderable.
func (svc *ImageService) storeImage(ctx context2.Context, userID string, data []byte, mime string) string {
	if !svc.minioSvc.Enabled() {
		return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
	}

	objectName := fmt.Sprintf("images/%s/%d.png", userID, time.Now().UnixNano())
	url, err := svc.minioSvc.UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), mime)
	if err != nil {
		log.WithError(err).Warn("Failed to upload image to MinIO, falling back to data URL")
		return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
	}
	return url
}
