package services

import (
	"context"
	"log"
	"strings"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

// Minimum job description length after trimming.
const jdMinLength = 10

// StartSessionInput is the validated upload payload shared by the
// interview and MCQ start operations. The job description arrives
// either as file bytes or as plain text.
type StartSessionInput struct {
	ResumeBytes            []byte
	ResumeFilename         string
	JobDescriptionBytes    []byte
	JobDescriptionFilename string
	JobDescriptionText     string
	CandidateName          string
	CandidateEmail         string
}

// prepareIntake parses the resume, resolves the job description, and
// archives the raw uploads. Explicit candidate identity fields override
// whatever was extracted from the resume.
func prepareIntake(
	ctx context.Context,
	resumeParser ResumeParserService,
	storage StorageService,
	input StartSessionInput,
) (*models.ParsedResume, string, error) {
	if len(input.ResumeBytes) == 0 {
		return nil, "", apperrors.Validation("resume file is required")
	}

	parsed, err := resumeParser.ParseResume(ctx, input.ResumeBytes, input.ResumeFilename)
	if err != nil {
		return nil, "", err
	}

	var jobDescription string
	switch {
	case len(input.JobDescriptionBytes) > 0:
		jobDescription, err = resumeParser.ParseJobDescription(input.JobDescriptionBytes, input.JobDescriptionFilename)
		if err != nil {
			return nil, "", err
		}
	case input.JobDescriptionText != "":
		jobDescription = input.JobDescriptionText
	default:
		return nil, "", apperrors.Validation("job description is required: upload a file or provide text")
	}

	jobDescription = strings.TrimSpace(jobDescription)
	if len(jobDescription) < jdMinLength {
		return nil, "", apperrors.Validation("job description too short: %d characters, minimum is %d", len(jobDescription), jdMinLength)
	}

	if input.CandidateName != "" {
		parsed.Name = input.CandidateName
	}
	if input.CandidateEmail != "" {
		parsed.Email = input.CandidateEmail
	}

	// Archive raw uploads; failures here never block the session.
	if _, _, err := storage.SaveBuffer(input.ResumeBytes, "resume", input.ResumeFilename); err != nil {
		log.Printf("⚠️  Failed to archive resume upload: %v\n", err)
	}
	if len(input.JobDescriptionBytes) > 0 {
		if _, _, err := storage.SaveBuffer(input.JobDescriptionBytes, "job_description", input.JobDescriptionFilename); err != nil {
			log.Printf("⚠️  Failed to archive job description upload: %v\n", err)
		}
	}

	return parsed, jobDescription, nil
}
