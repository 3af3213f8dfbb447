// Package api реализует клиента генеративного API изображений.
// Наружу отдается интерфейс Client, чтобы TUI можно было тестировать
// с моком, не трогая сеть.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/maynagashev/imgkeeper/internal/gallery"
)

// DefaultBlendPrompt подставляется вместо пустого промпта бленда:
// стиль первого (референсного) изображения применяется к остальным.
const DefaultBlendPrompt = "apply the style of the first image to the rest"

// preserveFacesInstruction добавляется к промпту при включенном флаге
// сохранения лиц.
const preserveFacesInstruction = "Preserve the identity and facial features of any people exactly as in the original photo."

// Ограничения мульти-блендинга: референс + 1..3 целевых изображения.
const (
	minBlendRefs = 2
	maxBlendRefs = 4
)

// ErrNoImage сигнализирует, что модель не вернула изображение в ответе.
var ErrNoImage = errors.New("модель не вернула изображение")

// Client определяет интерфейс взаимодействия с генеративным API изображений.
type Client interface {
	// EditImage выполняет редактирование одного изображения по промпту
	// и возвращает новое содержимое.
	EditImage(ctx context.Context, content gallery.ContentRef, prompt string, preserveFaces bool) (gallery.ContentRef, error)
	// BlendImages смешивает 2-4 изображения (референс первым) в одно новое.
	// Пустой промпт заменяется на DefaultBlendPrompt.
	BlendImages(ctx context.Context, refs []gallery.ContentRef, prompt string) (gallery.ContentRef, error)
}

// geminiClient реализует Client поверх Gemini API (google.golang.org/genai).
type geminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient создает клиента Gemini с указанным ключом и моделью.
func NewGeminiClient(ctx context.Context, apiKey, model string) (Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента Gemini: %w", err)
	}
	return &geminiClient{client: c, model: model}, nil
}

// effectiveBlendPrompt возвращает промпт бленда с подстановкой
// инструкции по умолчанию вместо пустой строки.
func effectiveBlendPrompt(prompt string) string {
	if prompt == "" {
		return DefaultBlendPrompt
	}
	return prompt
}

// editParts собирает части запроса одиночного редактирования:
// изображение, затем текст промпта.
func editParts(content gallery.ContentRef, prompt string, preserveFaces bool) []*genai.Part {
	text := prompt
	if preserveFaces {
		text = prompt + " " + preserveFacesInstruction
	}
	return []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: content.MIMEType, Data: content.Data}},
		{Text: text},
	}
}

// blendParts собирает части запроса бленда: референс первым,
// затем целевые изображения, затем текст промпта.
func blendParts(refs []gallery.ContentRef, prompt string) []*genai.Part {
	parts := make([]*genai.Part, 0, len(refs)+1)
	for _, ref := range refs {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{MIMEType: ref.MIMEType, Data: ref.Data},
		})
	}
	parts = append(parts, &genai.Part{Text: effectiveBlendPrompt(prompt)})
	return parts
}

// generate отправляет собранные части модели и извлекает изображение
// из первого кандидата ответа.
func (c *geminiClient) generate(ctx context.Context, parts []*genai.Part) (gallery.ContentRef, error) {
	start := time.Now()
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return gallery.ContentRef{}, fmt.Errorf("ошибка запроса к Gemini: %w", err)
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				slog.Info("Gemini вернул изображение",
					"bytes", len(part.InlineData.Data),
					"mime", part.InlineData.MIMEType,
					"duration", time.Since(start),
				)
				return gallery.NewContentRef(part.InlineData.Data, part.InlineData.MIMEType), nil
			}
		}
	}

	slog.Warn("В ответе Gemini нет изображения", "duration", time.Since(start))
	return gallery.ContentRef{}, ErrNoImage
}

// EditImage выполняет одиночное редактирование изображения.
func (c *geminiClient) EditImage(ctx context.Context, content gallery.ContentRef, prompt string, preserveFaces bool) (gallery.ContentRef, error) {
	slog.Info("Запрос редактирования изображения",
		"model", c.model,
		"image_bytes", len(content.Data),
		"preserve_faces", preserveFaces,
	)
	result, err := c.generate(ctx, editParts(content, prompt, preserveFaces))
	if err != nil {
		return gallery.ContentRef{}, fmt.Errorf("ошибка редактирования изображения: %w", err)
	}
	return result, nil
}

// BlendImages смешивает изображения в одно по промпту.
func (c *geminiClient) BlendImages(ctx context.Context, refs []gallery.ContentRef, prompt string) (gallery.ContentRef, error) {
	if len(refs) < minBlendRefs || len(refs) > maxBlendRefs {
		return gallery.ContentRef{}, fmt.Errorf("для бленда нужно от %d до %d изображений, получено %d",
			minBlendRefs, maxBlendRefs, len(refs))
	}
	slog.Info("Запрос мульти-блендинга",
		"model", c.model,
		"ref_count", len(refs),
		"prompt_empty", prompt == "",
	)
	result, err := c.generate(ctx, blendParts(refs, prompt))
	if err != nil {
		return gallery.ContentRef{}, fmt.Errorf("ошибка бленда изображений: %w", err)
	}
	return result, nil
}
