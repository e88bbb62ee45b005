package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
	"alfredoptarigan/ai-screener/internal/repositories"
)

// InterviewService owns the conversational interview state machine:
// turn sequencing, question counting, completion detection, and
// report-eligibility gating.
type InterviewService interface {
	StartInterview(ctx context.Context, input StartSessionInput) (*models.StartInterviewResponse, error)
	SubmitChatTurn(ctx context.Context, sessionID, message string) (*models.ChatResponse, error)
	GenerateReport(ctx context.Context, sessionID string) (*models.InterviewReport, error)
	GetReport(ctx context.Context, sessionID string) (*models.InterviewReport, error)
	GetSession(ctx context.Context, sessionID string) (*models.InterviewSession, error)
	ListReports(ctx context.Context, limit int) ([]models.InterviewReport, error)
}

type interviewService struct {
	sessionRepo      repositories.SessionRepository
	reportRepo       repositories.ReportRepository
	resumeParser     ResumeParserService
	geminiService    GeminiService
	qdrantService    QdrantService
	storage          StorageService
	indexer          Indexer
	promptBuilder    *PromptBuilder
	totalQuestions   int
	minReportAnswers int
	maxRetries       int
}

func NewInterviewService(
	sessionRepo repositories.SessionRepository,
	reportRepo repositories.ReportRepository,
	resumeParser ResumeParserService,
	geminiService GeminiService,
	qdrantService QdrantService,
	storage StorageService,
	indexer Indexer,
	totalQuestions int,
	minReportAnswers int,
	maxRetries int,
) InterviewService {
	return &interviewService{
		sessionRepo:      sessionRepo,
		reportRepo:       reportRepo,
		resumeParser:     resumeParser,
		geminiService:    geminiService,
		qdrantService:    qdrantService,
		storage:          storage,
		indexer:          indexer,
		promptBuilder:    NewPromptBuilder(),
		totalQuestions:   totalQuestions,
		minReportAnswers: minReportAnswers,
		maxRetries:       maxRetries,
	}
}

// StartInterview implements InterviewService.
func (s *interviewService) StartInterview(ctx context.Context, input StartSessionInput) (*models.StartInterviewResponse, error) {
	parsed, jobDescription, err := prepareIntake(ctx, s.resumeParser, s.storage, input)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	now := time.Now().UTC()

	session := &models.InterviewSession{
		ID:             sessionID,
		SessionID:      sessionID,
		CandidateName:  parsed.Name,
		CandidateEmail: parsed.Email,
		ResumeText:     parsed.RawText,
		JobDescription: jobDescription,
		Messages:       models.MessageList{},
		QuestionCount:  0,
		IsComplete:     false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	s.indexer.EnqueueSession(IndexJob{
		SessionID:      sessionID,
		ResumeText:     parsed.RawText,
		JobDescription: jobDescription,
	})

	log.Printf("🎙️ Interview session %s created for %s\n", sessionID, parsed.Name)

	return &models.StartInterviewResponse{
		SessionID:             sessionID,
		Candidate:             parsed,
		JobDescriptionPreview: truncate(jobDescription, 200),
		JobDescriptionLength:  len(jobDescription),
	}, nil
}

// SubmitChatTurn implements InterviewService. One accepted candidate
// message produces one generated question; transcript, counter, and
// completion flag are persisted as a single conditional update.
func (s *interviewService) SubmitChatTurn(ctx context.Context, sessionID, message string) (*models.ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Validation("message must not be empty")
	}

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsComplete {
		return nil, apperrors.Conflict("interview session %s is already complete", sessionID)
	}

	now := time.Now().UTC()
	session.Messages = append(session.Messages, models.ChatMessage{
		Sender:    models.SenderCandidate,
		Text:      message,
		Timestamp: now,
	})

	questionNumber := session.QuestionCount + 1
	system := s.promptBuilder.BuildInterviewSystemPrompt(
		session.ResumeText,
		session.JobDescription,
		questionNumber,
		s.totalQuestions,
	)

	turns := make([]ChatTurn, 0, len(session.Messages)+1)
	for _, msg := range session.Messages {
		role := RoleUser
		if msg.Sender == models.SenderAssistant {
			role = RoleModel
		}
		turns = append(turns, ChatTurn{Role: role, Text: msg.Text})
	}
	turns = append(turns, ChatTurn{
		Role: RoleUser,
		Text: s.promptBuilder.BuildNextQuestionInstruction(questionNumber),
	})

	reply, err := s.geminiService.GenerateChat(ctx, system, turns, 0.7, 300)
	if err != nil {
		return nil, apperrors.Upstream("failed to generate next question", err)
	}

	session.Messages = append(session.Messages, models.ChatMessage{
		Sender:    models.SenderAssistant,
		Text:      reply,
		Timestamp: time.Now().UTC(),
	})
	session.QuestionCount = questionNumber
	session.IsComplete = session.QuestionCount >= s.totalQuestions

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Reply:          reply,
		QuestionNumber: session.QuestionCount,
		IsComplete:     session.IsComplete,
	}, nil
}

type interviewReportPayload struct {
	SkillMatch       int      `json:"skill_match" validate:"min=0,max=100"`
	ExperienceMatch  int      `json:"experience_match" validate:"min=0,max=100"`
	Communication    int      `json:"communication" validate:"min=0,max=100"`
	ProblemSolving   int      `json:"problem_solving" validate:"min=0,max=100"`
	OverallFit       int      `json:"overall_fit" validate:"min=0,max=100"`
	Recommendation   string   `json:"recommendation" validate:"required,oneof='Strongly Recommended for Next Round' 'Recommended for Next Round' 'Maybe - Consider for Next Round' 'Not Recommended'"`
	Strengths        []string `json:"strengths" validate:"required,min=1"`
	Weaknesses       []string `json:"weaknesses" validate:"required,min=1"`
	DetailedFeedback string   `json:"detailed_feedback" validate:"required"`
}

// GenerateReport implements InterviewService. Generation is idempotent:
// an existing report is returned verbatim without a new completion
// call. Partial evaluation is allowed once the minimum answered-question
// threshold is met; a successful report marks the session complete.
func (s *interviewService) GenerateReport(ctx context.Context, sessionID string) (*models.InterviewReport, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reportRepo.FindBySessionID(sessionID)
	if err == nil {
		return existing, nil
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	if session.QuestionCount < s.minReportAnswers {
		return nil, apperrors.Conflict(
			"insufficient interview data: %d questions answered, at least %d required",
			session.QuestionCount, s.minReportAnswers,
		)
	}

	ragContext := s.retrieveContext(ctx, session)

	prompt := s.promptBuilder.BuildInterviewReportPrompt(
		session.CandidateName,
		session.ResumeText,
		session.JobDescription,
		ragContext,
		session.Messages,
		session.QuestionCount,
	)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.2, s.maxRetries)
	if err != nil {
		return nil, apperrors.Upstream("failed to generate evaluation report", err)
	}

	var payload interviewReportPayload
	if err := decodeStrict(response, &payload); err != nil {
		return nil, err
	}

	report := &models.InterviewReport{
		ID:               session.SessionID,
		SessionID:        session.SessionID,
		CandidateName:    session.CandidateName,
		SkillMatch:       payload.SkillMatch,
		ExperienceMatch:  payload.ExperienceMatch,
		Communication:    payload.Communication,
		ProblemSolving:   payload.ProblemSolving,
		OverallFit:       payload.OverallFit,
		Recommendation:   models.RecommendationType(payload.Recommendation),
		Strengths:        payload.Strengths,
		Weaknesses:       payload.Weaknesses,
		DetailedFeedback: payload.DetailedFeedback,
		Transcript:       session.Messages,
		GeneratedAt:      time.Now().UTC(),
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	// Report generation completes the session even below the question total.
	if !session.IsComplete {
		session.IsComplete = true
		if err := s.sessionRepo.Update(session); err != nil {
			log.Printf("⚠️  Failed to mark session %s complete after report: %v\n", sessionID, err)
		}
	}

	// The retrieval index has served its purpose once the report exists.
	if err := s.qdrantService.DeleteSession(ctx, session.SessionID); err != nil {
		log.Printf("⚠️  Failed to prune index for session %s: %v\n", sessionID, err)
	}

	return report, nil
}

// retrieveContext fetches resume and JD chunks relevant to the
// evaluation. Failures degrade to an empty context.
func (s *interviewService) retrieveContext(ctx context.Context, session *models.InterviewSession) string {
	embedding, err := s.geminiService.GenerateEmbedding(ctx, session.JobDescription)
	if err != nil {
		log.Printf("⚠️  Failed to embed retrieval query: %v\n", err)
		return ""
	}

	var all []SearchResult
	for _, docType := range []string{DocTypeResume, DocTypeJobDescription} {
		results, err := s.qdrantService.SearchContext(ctx, embedding, session.SessionID, docType, 3)
		if err != nil {
			log.Printf("⚠️  Failed to search %s context: %v\n", docType, err)
			continue
		}
		all = append(all, results...)
	}

	return FormatRetrievedContext(all)
}

// GetReport implements InterviewService.
func (s *interviewService) GetReport(ctx context.Context, sessionID string) (*models.InterviewReport, error) {
	return s.reportRepo.FindBySessionID(sessionID)
}

// GetSession implements InterviewService.
func (s *interviewService) GetSession(ctx context.Context, sessionID string) (*models.InterviewSession, error) {
	return s.sessionRepo.FindByID(sessionID)
}

// ListReports implements InterviewService.
func (s *interviewService) ListReports(ctx context.Context, limit int) ([]models.InterviewReport, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.reportRepo.List(limit)
}
