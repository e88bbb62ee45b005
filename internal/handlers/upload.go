package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-screener/internal/services"
)

// buildStartInput validates the multipart session-start payload shared
// by the interview and MCQ flows: a required resume file plus a job
// description as either a file or plain text.
func buildStartInput(c *fiber.Ctx, maxFileSize int64) (services.StartSessionInput, error) {
	var input services.StartSessionInput

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return input, fiber.NewError(fiber.StatusBadRequest, "resume file is required")
	}

	if resumeFile.Size > maxFileSize {
		return input, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("resume file too large. Max size: %d bytes", maxFileSize))
	}

	resumeBytes, err := readFormFile(resumeFile)
	if err != nil {
		return input, fiber.NewError(fiber.StatusBadRequest, "failed to read resume file")
	}

	input.ResumeBytes = resumeBytes
	input.ResumeFilename = resumeFile.Filename
	input.CandidateName = c.FormValue("candidate_name")
	input.CandidateEmail = c.FormValue("candidate_email")

	if jdFile, err := c.FormFile("job_description"); err == nil {
		if jdFile.Size > maxFileSize {
			return input, fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("job description file too large. Max size: %d bytes", maxFileSize))
		}
		jdBytes, err := readFormFile(jdFile)
		if err != nil {
			return input, fiber.NewError(fiber.StatusBadRequest, "failed to read job description file")
		}
		input.JobDescriptionBytes = jdBytes
		input.JobDescriptionFilename = jdFile.Filename
	} else {
		input.JobDescriptionText = c.FormValue("job_description_text")
	}

	return input, nil
}

func readFormFile(header *multipart.FileHeader) ([]byte, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
