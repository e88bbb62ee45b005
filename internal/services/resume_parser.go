package services

import (
	"context"
	"log"

	"alfredoptarigan/ai-screener/internal/models"
)

// ResumeParserService turns uploaded file bytes into extracted text and
// structured candidate fields.
type ResumeParserService interface {
	ParseResume(ctx context.Context, fileBytes []byte, filename string) (*models.ParsedResume, error)
	ParseJobDescription(fileBytes []byte, filename string) (string, error)
}

type resumeParserService struct {
	docParser     DocumentParserService
	geminiService GeminiService
	promptBuilder *PromptBuilder
}

func NewResumeParserService(docParser DocumentParserService, geminiService GeminiService) ResumeParserService {
	return &resumeParserService{
		docParser:     docParser,
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
	}
}

type resumeFields struct {
	Name       string                    `json:"name"`
	Email      string                    `json:"email"`
	Phone      string                    `json:"phone"`
	Skills     []string                  `json:"skills"`
	Education  []string                  `json:"education"`
	Experience []models.ParsedExperience `json:"experience"`
}

// ParseResume implements ResumeParserService. Field extraction is best
// effort: if the completion call or decode fails, the parsed resume
// degrades to raw text with an unknown name.
func (r *resumeParserService) ParseResume(ctx context.Context, fileBytes []byte, filename string) (*models.ParsedResume, error) {
	rawText, err := r.docParser.ExtractText(fileBytes, filename)
	if err != nil {
		return nil, err
	}

	parsed := &models.ParsedResume{
		Name:       "Unknown",
		Skills:     []string{},
		Education:  []string{},
		Experience: []models.ParsedExperience{},
		RawText:    rawText,
	}

	prompt := r.promptBuilder.BuildResumeExtractionPrompt(rawText)
	response, err := r.geminiService.GenerateText(ctx, prompt, 0.1)
	if err != nil {
		log.Printf("⚠️  Resume field extraction failed: %v\n", err)
		return parsed, nil
	}

	var fields resumeFields
	if err := decodeStrict(response, &fields); err != nil {
		log.Printf("⚠️  Failed to decode resume fields: %v\n", err)
		return parsed, nil
	}

	if fields.Name != "" {
		parsed.Name = fields.Name
	}
	parsed.Email = fields.Email
	parsed.Phone = fields.Phone
	if fields.Skills != nil {
		parsed.Skills = fields.Skills
	}
	if fields.Education != nil {
		parsed.Education = fields.Education
	}
	if fields.Experience != nil {
		parsed.Experience = fields.Experience
	}

	return parsed, nil
}

// ParseJobDescription implements ResumeParserService.
func (r *resumeParserService) ParseJobDescription(fileBytes []byte, filename string) (string, error) {
	return r.docParser.ExtractText(fileBytes, filename)
}
