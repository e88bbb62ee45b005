package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
	"alfredoptarigan/ai-screener/internal/repositories"
)

// MCQService owns the fixed-length assessment state machine:
// question-order enforcement, scoring, per-category aggregation, and
// report-eligibility gating.
type MCQService interface {
	StartTest(ctx context.Context, input StartSessionInput) (*models.StartMCQResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, selectedOption string) (*models.MCQAnswerResponse, error)
	GenerateReport(ctx context.Context, sessionID string) (*models.MCQReport, error)
	GetSession(ctx context.Context, sessionID string) (*models.MCQSessionView, error)
}

type mcqService struct {
	sessionRepo   repositories.MCQSessionRepository
	reportRepo    repositories.MCQReportRepository
	resumeParser  ResumeParserService
	geminiService GeminiService
	storage       StorageService
	indexer       Indexer
	promptBuilder *PromptBuilder
	questionCount int
	maxRetries    int
}

func NewMCQService(
	sessionRepo repositories.MCQSessionRepository,
	reportRepo repositories.MCQReportRepository,
	resumeParser ResumeParserService,
	geminiService GeminiService,
	storage StorageService,
	indexer Indexer,
	questionCount int,
	maxRetries int,
) MCQService {
	return &mcqService{
		sessionRepo:   sessionRepo,
		reportRepo:    reportRepo,
		resumeParser:  resumeParser,
		geminiService: geminiService,
		storage:       storage,
		indexer:       indexer,
		promptBuilder: NewPromptBuilder(),
		questionCount: questionCount,
		maxRetries:    maxRetries,
	}
}

type mcqBatch struct {
	Questions []models.MCQQuestion `json:"questions" validate:"required,dive"`
}

// StartTest implements MCQService. The full question batch is generated
// in one completion call and frozen on the session; a wrong count or
// malformed batch fails the whole operation and no session is created.
func (s *mcqService) StartTest(ctx context.Context, input StartSessionInput) (*models.StartMCQResponse, error) {
	parsed, jobDescription, err := prepareIntake(ctx, s.resumeParser, s.storage, input)
	if err != nil {
		return nil, err
	}

	prompt := s.promptBuilder.BuildMCQGenerationPrompt(parsed.RawText, jobDescription, s.questionCount)
	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.7, s.maxRetries)
	if err != nil {
		return nil, apperrors.Upstream("failed to generate assessment questions", err)
	}

	var batch mcqBatch
	if err := decodeStrict(response, &batch); err != nil {
		return nil, err
	}

	if len(batch.Questions) != s.questionCount {
		return nil, apperrors.Upstream(
			"completion returned wrong question count",
			fmt.Errorf("got %d questions, want %d", len(batch.Questions), s.questionCount),
		)
	}

	// Ordinals and labels are normalized once here; the stored list is
	// immutable afterwards.
	for i := range batch.Questions {
		batch.Questions[i].QuestionNumber = i + 1
		batch.Questions[i].CorrectOption = strings.ToUpper(batch.Questions[i].CorrectOption)
	}

	sessionID := uuid.New().String()
	now := time.Now().UTC()

	session := &models.MCQSession{
		ID:                    sessionID,
		SessionID:             sessionID,
		CandidateName:         parsed.Name,
		CandidateEmail:        parsed.Email,
		ResumeText:            parsed.RawText,
		JobDescription:        jobDescription,
		Questions:             batch.Questions,
		Answers:               models.AnswerList{},
		CurrentQuestionNumber: 0,
		IsComplete:            false,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	s.indexer.EnqueueSession(IndexJob{
		SessionID:      sessionID,
		ResumeText:     parsed.RawText,
		JobDescription: jobDescription,
	})

	log.Printf("📝 MCQ session %s created for %s with %d questions\n", sessionID, parsed.Name, s.questionCount)

	first := questionView(session.Questions[0], false)
	return &models.StartMCQResponse{
		SessionID:      sessionID,
		CandidateName:  parsed.Name,
		TotalQuestions: s.questionCount,
		Question:       first,
	}, nil
}

// SubmitAnswer implements MCQService. Answers must arrive strictly in
// order: the submitted ordinal has to be exactly one past the count of
// answers already accepted.
func (s *mcqService) SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, selectedOption string) (*models.MCQAnswerResponse, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	if session.IsComplete {
		return nil, apperrors.Conflict("MCQ session %s is already complete", sessionID)
	}

	option := strings.ToUpper(strings.TrimSpace(selectedOption))
	switch option {
	case "A", "B", "C", "D":
	default:
		return nil, apperrors.Validation("invalid option %q: expected A, B, C, or D", selectedOption)
	}

	if questionNumber < 1 || questionNumber > len(session.Questions) {
		return nil, apperrors.Validation("invalid question number %d: session has %d questions", questionNumber, len(session.Questions))
	}

	expected := session.CurrentQuestionNumber + 1
	if questionNumber != expected {
		return nil, apperrors.Conflict("out-of-sequence answer: got question %d, expected %d", questionNumber, expected)
	}

	question := session.Questions[session.CurrentQuestionNumber]

	selectedText := ""
	for _, opt := range question.Options {
		if strings.EqualFold(opt.Option, option) {
			selectedText = opt.Text
			break
		}
	}

	answer := models.MCQAnswer{
		QuestionNumber: question.QuestionNumber,
		QuestionText:   question.QuestionText,
		SelectedOption: option,
		SelectedText:   selectedText,
		CorrectOption:  question.CorrectOption,
		IsCorrect:      strings.EqualFold(option, question.CorrectOption),
		Explanation:    question.Explanation,
		AnsweredAt:     time.Now().UTC(),
	}

	session.Answers = append(session.Answers, answer)
	session.CurrentQuestionNumber++
	session.IsComplete = session.CurrentQuestionNumber == len(session.Questions)

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, err
	}

	if session.IsComplete {
		return &models.MCQAnswerResponse{
			IsComplete: true,
			Message:    "Test complete. Request the evaluation report for results.",
		}, nil
	}

	next := questionView(session.Questions[session.CurrentQuestionNumber], false)
	return &models.MCQAnswerResponse{
		IsComplete:   false,
		NextQuestion: next,
	}, nil
}

type mcqAssessmentPayload struct {
	OverallAssessment   string   `json:"overall_assessment" validate:"required"`
	CognitiveStrengths  []string `json:"cognitive_strengths" validate:"required,min=1"`
	AreasForImprovement []string `json:"areas_for_improvement" validate:"required,min=1"`
	Recommendation      string   `json:"recommendation" validate:"required"`
}

// GenerateReport implements MCQService. Unlike the interview flow there
// is no partial report: every question must be answered first.
func (s *mcqService) GenerateReport(ctx context.Context, sessionID string) (*models.MCQReport, error) {
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

	if !session.IsComplete {
		return nil, apperrors.Conflict(
			"test not complete: %d of %d questions answered",
			session.CurrentQuestionNumber, len(session.Questions),
		)
	}

	total := len(session.Answers)
	correct := 0
	for _, ans := range session.Answers {
		if ans.IsCorrect {
			correct++
		}
	}

	report := &models.MCQReport{
		ID:              session.SessionID,
		SessionID:       session.SessionID,
		CandidateName:   session.CandidateName,
		TotalQuestions:  total,
		CorrectAnswers:  correct,
		ScorePercentage: scorePercentage(correct, total),
		CategoryScores:  aggregateCategories(session.Questions, session.Answers),
		Answers:         session.Answers,
		GeneratedAt:     time.Now().UTC(),
	}

	prompt := s.promptBuilder.BuildMCQAssessmentPrompt(
		session.CandidateName,
		session.ResumeText,
		session.JobDescription,
		correct,
		total,
		report.ScorePercentage,
		session.Answers,
	)

	response, err := s.geminiService.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, apperrors.Upstream("failed to generate assessment narrative", err)
	}

	var payload mcqAssessmentPayload
	if err := decodeStrict(response, &payload); err != nil {
		return nil, err
	}

	report.OverallAssessment = payload.OverallAssessment
	report.CognitiveStrengths = payload.CognitiveStrengths
	report.AreasForImprovement = payload.AreasForImprovement
	report.Recommendation = payload.Recommendation

	if err := s.reportRepo.Create(report); err != nil {
		return nil, err
	}

	return report, nil
}

// GetSession implements MCQService. Answer-revealing fields stay hidden
// until the session is complete.
func (s *mcqService) GetSession(ctx context.Context, sessionID string) (*models.MCQSessionView, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}

	questions := make([]models.MCQQuestionView, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, *questionView(q, session.IsComplete))
	}

	return &models.MCQSessionView{
		SessionID:             session.SessionID,
		CandidateName:         session.CandidateName,
		CandidateEmail:        session.CandidateEmail,
		Questions:             questions,
		Answers:               session.Answers,
		CurrentQuestionNumber: session.CurrentQuestionNumber,
		IsComplete:            session.IsComplete,
	}, nil
}

// scorePercentage guards against an empty answer set.
func scorePercentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// aggregateCategories buckets answers by the category recorded on the
// originating question, looked up by ordinal.
func aggregateCategories(questions models.QuestionList, answers models.AnswerList) models.CategoryScoreMap {
	scores := models.CategoryScoreMap{}

	for _, ans := range answers {
		category := "General"
		if ans.QuestionNumber >= 1 && ans.QuestionNumber <= len(questions) {
			category = questions[ans.QuestionNumber-1].Category
		}

		entry := scores[category]
		entry.Total++
		if ans.IsCorrect {
			entry.Correct++
		}
		scores[category] = entry
	}

	return scores
}

func questionView(q models.MCQQuestion, revealAnswer bool) *models.MCQQuestionView {
	view := &models.MCQQuestionView{
		QuestionNumber: q.QuestionNumber,
		Category:       q.Category,
		QuestionText:   q.QuestionText,
		Options:        q.Options,
	}
	if revealAnswer {
		view.CorrectOption = q.CorrectOption
		view.Explanation = q.Explanation
	}
	return view
}
