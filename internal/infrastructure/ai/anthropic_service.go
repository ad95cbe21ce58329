package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jmorales/ventaspro-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Sos un asesor de negocios para comercios minoristas en Argentina.
Recibís un resumen de ventas de los últimos 30 días y devolvés un análisis breve en español rioplatense:
- 2 o 3 observaciones concretas sobre qué está funcionando y qué no.
- 1 o 2 acciones recomendadas (reposición, precios, medios de pago).
Máximo 150 palabras, texto plano sin markdown.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de
// Anthropic (Claude). Sin reintentos: una falla degrada al mensaje estático
// del caso de uso.
type AnthropicService struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		client: resty.New().
			SetTimeout(25 * time.Second).
			SetHeader("anthropic-version", anthropicVersion).
			SetHeader("content-type", "application/json"),
	}
}

// ── Estructuras del protocolo Anthropic Messages API ──────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// BusinessAdvice envía el resumen de ventas a Claude y devuelve el análisis en texto libre.
func (s *AnthropicService) BusinessAdvice(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	}

	var result anthropicResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", s.apiKey).
		SetBody(payload).
		SetResult(&result).
		SetError(&result).
		Post(anthropicMessagesURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}

	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", result.Error.Type, result.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d", resp.StatusCode())
	}

	if len(result.Content) == 0 {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return result.Content[0].Text, nil
}
