package services

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// ExtractService turns raw job-posting HTML into structured fields for the
// job form. It is a convenience on top of the tracker, not part of the
// interview analysis, which stays deterministic.
type ExtractService struct {
	client llms.Model
	log    *zap.Logger
}

// NewExtractService initializes the Gemini client. Without an API key it
// returns nil and the extract endpoint simply isn't registered.
func NewExtractService(ctx context.Context, apiKey string, log *zap.Logger) (*ExtractService, error) {
	if apiKey == "" {
		return nil, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.5-flash"),
	)
	if err != nil {
		return nil, err
	}
	return &ExtractService{client: llm, log: log}, nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company": "Name of the company (e.g., Google, StartupInc)",
    "position": "Job title (e.g., Senior Backend Engineer)",
    "notes": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags."
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
`

// ExtractJobDetails takes raw HTML and returns the structured JSON string.
func (s *ExtractService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	if len(rawHTML) > 20000 {
		s.log.Debug("truncating oversized posting", zap.Int("bytes", len(rawHTML)))
		rawHTML = rawHTML[:20000]
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.client, jobExtractionPrompt+rawHTML)
	if err != nil {
		return "", err
	}
	return resp, nil
}
