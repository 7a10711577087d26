package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kalakaksh/backend/pkg/http"
	"github.com/kalakaksh/backend/pkg/imaging"
	"github.com/kalakaksh/backend/pkg/logger"
	"github.com/kalakaksh/backend/pkg/metrics"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// EnhanceService rewrites product descriptions with Gemini. Without an API
// key, or when the API call fails, it falls back to a deterministic
// template so the endpoint always succeeds.
type EnhanceService struct {
	apiKey   string
	endpoint string
}

// NewEnhance builds the service. An empty apiKey means template-only mode.
func NewEnhance(apiKey string) *EnhanceService {
	return &EnhanceService{apiKey: apiKey, endpoint: geminiEndpoint}
}

// NewEnhanceWithEndpoint is used by tests to point at a stub server.
func NewEnhanceWithEndpoint(apiKey, endpoint string) *EnhanceService {
	return &EnhanceService{apiKey: apiKey, endpoint: endpoint}
}

// Description returns an enhanced product description and whether the AI
// produced it (false means the deterministic fallback was used).
func (s *EnhanceService) Description(ctx context.Context, name, craftType, description string, materials []string) (string, bool) {
	if s.apiKey != "" {
		if enhanced, err := s.callGemini(ctx, name, craftType, description, materials); err == nil && enhanced != "" {
			metrics.EnhancementTotal.WithLabelValues("gemini").Inc()
			return enhanced, true
		} else if err != nil {
			logger.WithCtx(ctx).Warn("gemini enhancement failed, using fallback", "error", err)
		}
	}

	metrics.EnhancementTotal.WithLabelValues("fallback").Inc()
	return fallbackDescription(name, craftType, description, materials), false
}

// Image re-encodes a product photo at enhanced quality. On any decode
// failure the original bytes are returned untouched.
func (s *EnhanceService) Image(data []byte) []byte {
	out, err := imaging.Fit(data, imaging.ProductMaxWidth, imaging.ProductMaxHeight, imaging.EnhancedQuality)
	if err != nil {
		return data
	}
	return out
}

// ── Gemini REST ──────────────────────────────────────────────────────────────

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *EnhanceService) callGemini(ctx context.Context, name, craftType, description string, materials []string) (string, error) {
	prompt := fmt.Sprintf(
		"Rewrite this product description for an Indian artisan marketplace. "+
			"Product: %s. Craft: %s. Materials: %s. Current description: %s. "+
			"Write 2-3 warm, evocative sentences highlighting the craftsmanship. "+
			"Return only the description text.",
		name, craftType, materialsText(materials), description,
	)

	resp, err := http.Post(s.endpoint+"?key="+s.apiKey).
		Body(geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}).
		Timeout(20 * time.Second).
		Retry(2, time.Second).
		WithContext(ctx).
		Send()
	if err != nil {
		return "", err
	}
	if err := resp.Throw(); err != nil {
		return "", err
	}

	var out geminiResponse
	if err := resp.JSON(&out); err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("enhance: empty gemini response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

// fallbackDescription is the deterministic template used when the AI is
// unavailable. Stable output keeps the preview endpoint predictable.
func fallbackDescription(name, craftType, description string, materials []string) string {
	return fmt.Sprintf(
		"This exquisite handcrafted %s showcases the artistry of %s masters, "+
			"featuring %s using %s. Each piece reflects skilled craftsmanship and "+
			"celebrates India's rich cultural heritage, bringing authentic "+
			"traditional artistry to your collection.",
		strings.ToLower(strings.TrimSpace(name)),
		strings.ToLower(strings.TrimSpace(craftType)),
		strings.ToLower(strings.TrimSpace(description)),
		materialsText(materials),
	)
}

func materialsText(materials []string) string {
	var nonEmpty []string
	for _, m := range materials {
		if strings.TrimSpace(m) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(m))
		}
	}
	if len(nonEmpty) == 0 {
		return "traditional materials"
	}
	return strings.Join(nonEmpty, ", ")
}
