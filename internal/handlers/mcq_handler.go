package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-screener/internal/models"
	"alfredoptarigan/ai-screener/internal/services"
)

type MCQHandler struct {
	mcqService  services.MCQService
	maxFileSize int64
}

func NewMCQHandler(mcqService services.MCQService, maxFileSize int64) *MCQHandler {
	return &MCQHandler{
		mcqService:  mcqService,
		maxFileSize: maxFileSize,
	}
}

// HandleStart handles POST /mcq/start
func (h *MCQHandler) HandleStart(c *fiber.Ctx) error {
	input, err := buildStartInput(c, h.maxFileSize)
	if err != nil {
		return err
	}

	resp, err := h.mcqService.StartTest(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleAnswer handles POST /mcq/answer
func (h *MCQHandler) HandleAnswer(c *fiber.Ctx) error {
	var req models.MCQAnswerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id, question_number, and selected_option are required",
		})
	}

	resp, err := h.mcqService.SubmitAnswer(c.Context(), req.SessionID, req.QuestionNumber, req.SelectedOption)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// HandleGenerateReport handles POST /mcq/report/:session_id
func (h *MCQHandler) HandleGenerateReport(c *fiber.Ctx) error {
	report, err := h.mcqService.GenerateReport(c.Context(), c.Params("session_id"))
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// HandleGetSession handles GET /mcq/session/:session_id
func (h *MCQHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.mcqService.GetSession(c.Context(), c.Params("session_id"))
	if err != nil {
		return err
	}

	return c.JSON(session)
}
