package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/ai-screener/internal/models"
	"alfredoptarigan/ai-screener/internal/services"
)

var validate = validator.New()

type InterviewHandler struct {
	interviewService services.InterviewService
	maxFileSize      int64
}

func NewInterviewHandler(interviewService services.InterviewService, maxFileSize int64) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		maxFileSize:      maxFileSize,
	}
}

// HandleStart handles POST /interview/start
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	input, err := buildStartInput(c, h.maxFileSize)
	if err != nil {
		return err
	}

	resp, err := h.interviewService.StartInterview(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleChat handles POST /interview/chat
func (h *InterviewHandler) HandleChat(c *fiber.Ctx) error {
	var req models.ChatRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "session_id and message are required",
		})
	}

	resp, err := h.interviewService.SubmitChatTurn(c.Context(), req.SessionID, req.Message)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// HandleGenerateReport handles POST /interview/report/:session_id
func (h *InterviewHandler) HandleGenerateReport(c *fiber.Ctx) error {
	report, err := h.interviewService.GenerateReport(c.Context(), c.Params("session_id"))
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// HandleGetReport handles GET /interview/report/:session_id
func (h *InterviewHandler) HandleGetReport(c *fiber.Ctx) error {
	report, err := h.interviewService.GetReport(c.Context(), c.Params("session_id"))
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// HandleGetSession handles GET /interview/session/:session_id
func (h *InterviewHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.interviewService.GetSession(c.Context(), c.Params("session_id"))
	if err != nil {
		return err
	}

	return c.JSON(session)
}

// HandleListReports handles GET /interview/reports
func (h *InterviewHandler) HandleListReports(c *fiber.Ctx) error {
	limit := 50
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "limit must be a positive integer",
			})
		}
		limit = parsed
	}

	reports, err := h.interviewService.ListReports(c.Context(), limit)
	if err != nil {
		return err
	}

	if reports == nil {
		reports = []models.InterviewReport{}
	}

	return c.JSON(fiber.Map{
		"count":   len(reports),
		"reports": reports,
	})
}
