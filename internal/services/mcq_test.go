package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

type mcqFixture struct {
	service  MCQService
	gemini   *fakeGemini
	sessions *fakeMCQSessionRepo
	reports  *fakeMCQReportRepo
	indexer  *fakeIndexer
}

func newMCQFixture() *mcqFixture {
	gemini := &fakeGemini{}
	sessions := newFakeMCQSessionRepo()
	reports := newFakeMCQReportRepo()
	indexer := &fakeIndexer{}

	service := NewMCQService(
		sessions,
		reports,
		&fakeResumeParser{},
		gemini,
		&fakeStorage{},
		indexer,
		5,
		1,
	)

	return &mcqFixture{
		service:  service,
		gemini:   gemini,
		sessions: sessions,
		reports:  reports,
		indexer:  indexer,
	}
}

func testQuestions(count int) models.QuestionList {
	categories := []string{"Logical Reasoning", "Technical Aptitude", "Problem Solving"}

	questions := models.QuestionList{}
	for i := 0; i < count; i++ {
		questions = append(questions, models.MCQQuestion{
			QuestionNumber: i + 1,
			Category:       categories[i%len(categories)],
			QuestionText:   fmt.Sprintf("Question %d text", i+1),
			Options: []models.MCQOption{
				{Option: "A", Text: "first"},
				{Option: "B", Text: "second"},
				{Option: "C", Text: "third"},
				{Option: "D", Text: "fourth"},
			},
			CorrectOption: "B",
			Explanation:   fmt.Sprintf("Explanation %d", i+1),
		})
	}
	return questions
}

func testBatchJSON(t *testing.T, count int) string {
	t.Helper()

	batch := map[string]any{"questions": testQuestions(count)}
	encoded, err := json.Marshal(batch)
	require.NoError(t, err)
	return string(encoded)
}

func seedMCQSession(t *testing.T, f *mcqFixture, answered int, complete bool) string {
	t.Helper()

	sessionID := fmt.Sprintf("mcq-session-%d", len(f.sessions.sessions)+1)
	now := time.Now().UTC()
	questions := testQuestions(5)

	answers := models.AnswerList{}
	for i := 0; i < answered; i++ {
		q := questions[i]
		// Odd ordinals answered correctly, even ones not.
		selected := "A"
		if q.QuestionNumber%2 == 1 {
			selected = q.CorrectOption
		}
		answers = append(answers, models.MCQAnswer{
			QuestionNumber: q.QuestionNumber,
			QuestionText:   q.QuestionText,
			SelectedOption: selected,
			CorrectOption:  q.CorrectOption,
			IsCorrect:      selected == q.CorrectOption,
			Explanation:    q.Explanation,
			AnsweredAt:     now,
		})
	}

	err := f.sessions.Create(&models.MCQSession{
		ID:                    sessionID,
		SessionID:             sessionID,
		CandidateName:         "Jane Doe",
		CandidateEmail:        "jane@example.com",
		ResumeText:            "Go engineer resume",
		JobDescription:        "Backend engineer role",
		Questions:             questions,
		Answers:               answers,
		CurrentQuestionNumber: answered,
		IsComplete:            complete,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	require.NoError(t, err)

	return sessionID
}

func validAssessmentJSON() string {
	return `{
		"overall_assessment": "Above-average aptitude across all tested areas.",
		"cognitive_strengths": ["pattern recognition"],
		"areas_for_improvement": ["time pressure handling"],
		"recommendation": "Proceed to technical interview"
	}`
}

func TestStartTest(t *testing.T) {
	f := newMCQFixture()
	f.gemini.textResponse = testBatchJSON(t, 5)

	resp, err := f.service.StartTest(context.Background(), StartSessionInput{
		ResumeBytes:        []byte("resume body"),
		ResumeFilename:     "resume.txt",
		JobDescriptionText: "Backend engineer role building Go services.",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalQuestions)
	require.NotNil(t, resp.Question)
	assert.Equal(t, 1, resp.Question.QuestionNumber)
	assert.Empty(t, resp.Question.CorrectOption)
	assert.Empty(t, resp.Question.Explanation)

	stored, err := f.sessions.FindByID(resp.SessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Questions, 5)
	assert.Equal(t, 0, stored.CurrentQuestionNumber)
	assert.False(t, stored.IsComplete)

	require.Len(t, f.indexer.jobs, 1)
}

func TestStartTestNormalizesOrdinals(t *testing.T) {
	f := newMCQFixture()

	questions := testQuestions(5)
	for i := range questions {
		questions[i].QuestionNumber = 99 // completion-supplied ordinals are ignored
		questions[i].CorrectOption = "b"
	}
	encoded, err := json.Marshal(map[string]any{"questions": questions})
	require.NoError(t, err)
	f.gemini.textResponse = string(encoded)

	resp, err := f.service.StartTest(context.Background(), StartSessionInput{
		ResumeBytes:        []byte("resume body"),
		ResumeFilename:     "resume.txt",
		JobDescriptionText: "Backend engineer role building Go services.",
	})
	require.NoError(t, err)

	stored, err := f.sessions.FindByID(resp.SessionID)
	require.NoError(t, err)
	for i, q := range stored.Questions {
		assert.Equal(t, i+1, q.QuestionNumber)
		assert.Equal(t, "B", q.CorrectOption)
	}
}

func TestStartTestRejectsWrongQuestionCount(t *testing.T) {
	f := newMCQFixture()
	f.gemini.textResponse = testBatchJSON(t, 4)

	_, err := f.service.StartTest(context.Background(), StartSessionInput{
		ResumeBytes:        []byte("resume body"),
		ResumeFilename:     "resume.txt",
		JobDescriptionText: "Backend engineer role building Go services.",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	assert.Empty(t, f.sessions.sessions)
}

func TestStartTestRejectsMalformedBatch(t *testing.T) {
	f := newMCQFixture()
	f.gemini.textResponse = `{"questions": [{"question_text": ""}]}`

	_, err := f.service.StartTest(context.Background(), StartSessionInput{
		ResumeBytes:        []byte("resume body"),
		ResumeFilename:     "resume.txt",
		JobDescriptionText: "Backend engineer role building Go services.",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	assert.Empty(t, f.sessions.sessions)
}

func TestSubmitAnswerSequence(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 0, false)

	for i := 1; i <= 5; i++ {
		resp, err := f.service.SubmitAnswer(context.Background(), sessionID, i, "B")
		require.NoError(t, err)

		if i < 5 {
			assert.False(t, resp.IsComplete)
			require.NotNil(t, resp.NextQuestion)
			assert.Equal(t, i+1, resp.NextQuestion.QuestionNumber)
			assert.Empty(t, resp.NextQuestion.CorrectOption)
		} else {
			assert.True(t, resp.IsComplete)
			assert.Nil(t, resp.NextQuestion)
			assert.NotEmpty(t, resp.Message)
		}
	}

	stored, err := f.sessions.FindByID(sessionID)
	require.NoError(t, err)
	assert.True(t, stored.IsComplete)
	assert.Len(t, stored.Answers, 5)
	for _, ans := range stored.Answers {
		assert.True(t, ans.IsCorrect)
	}
}

func TestSubmitAnswerOutOfSequenceUnchanged(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 1, false)

	_, err := f.service.SubmitAnswer(context.Background(), sessionID, 4, "A")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "got question 4, expected 2")

	stored, err := f.sessions.FindByID(sessionID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 1)
	assert.Equal(t, 1, stored.CurrentQuestionNumber)
}

func TestSubmitAnswerRepeatedQuestionRejected(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 2, false)

	_, err := f.service.SubmitAnswer(context.Background(), sessionID, 2, "C")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	stored, _ := f.sessions.FindByID(sessionID)
	assert.Len(t, stored.Answers, 2)
}

func TestSubmitAnswerInvalidOption(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 0, false)

	for _, option := range []string{"E", "AB", "", "1"} {
		_, err := f.service.SubmitAnswer(context.Background(), sessionID, 1, option)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}

	stored, _ := f.sessions.FindByID(sessionID)
	assert.Empty(t, stored.Answers)
}

func TestSubmitAnswerQuestionNumberOutOfRange(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 0, false)

	for _, n := range []int{0, -1, 6} {
		_, err := f.service.SubmitAnswer(context.Background(), sessionID, n, "A")
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestSubmitAnswerCaseInsensitive(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 0, false)

	_, err := f.service.SubmitAnswer(context.Background(), sessionID, 1, " b ")
	require.NoError(t, err)

	stored, err := f.sessions.FindByID(sessionID)
	require.NoError(t, err)
	require.Len(t, stored.Answers, 1)
	assert.Equal(t, "B", stored.Answers[0].SelectedOption)
	assert.True(t, stored.Answers[0].IsCorrect)
	assert.Equal(t, "second", stored.Answers[0].SelectedText)
}

func TestSubmitAnswerConcurrentWriterLoses(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 0, false)

	// A competing submission for the same ordinal lands between this
	// request's read and its write.
	f.sessions.beforeUpdate = func() {
		_, err := f.service.SubmitAnswer(context.Background(), sessionID, 1, "B")
		require.NoError(t, err)
	}

	_, err := f.service.SubmitAnswer(context.Background(), sessionID, 1, "A")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	// Only the winner's answer is stored; the pointer advanced once.
	stored, err := f.sessions.FindByID(sessionID)
	require.NoError(t, err)
	require.Len(t, stored.Answers, 1)
	assert.Equal(t, "B", stored.Answers[0].SelectedOption)
	assert.Equal(t, 1, stored.CurrentQuestionNumber)
	assert.False(t, stored.IsComplete)
}

func TestSubmitAnswerCompletedSession(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 5, true)

	_, err := f.service.SubmitAnswer(context.Background(), sessionID, 5, "A")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestGenerateMCQReportRequiresCompletion(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 3, false)

	_, err := f.service.GenerateReport(context.Background(), sessionID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "3 of 5 questions answered")
	assert.Zero(t, f.gemini.textCalls)
}

func TestGenerateMCQReportScoring(t *testing.T) {
	f := newMCQFixture()
	// Seeded answers: odd ordinals correct (1, 3, 5) out of five.
	sessionID := seedMCQSession(t, f, 5, true)
	f.gemini.textResponse = validAssessmentJSON()

	report, err := f.service.GenerateReport(context.Background(), sessionID)
	require.NoError(t, err)

	assert.Equal(t, sessionID, report.ID)
	assert.Equal(t, 5, report.TotalQuestions)
	assert.Equal(t, 3, report.CorrectAnswers)
	assert.InDelta(t, 60.0, report.ScorePercentage, 0.001)
	assert.Equal(t, "Above-average aptitude across all tested areas.", report.OverallAssessment)

	// Category totals add up to the question count; correct counts to
	// the overall score.
	sumTotal, sumCorrect := 0, 0
	for _, score := range report.CategoryScores {
		sumTotal += score.Total
		sumCorrect += score.Correct
	}
	assert.Equal(t, 5, sumTotal)
	assert.Equal(t, 3, sumCorrect)
}

func TestGenerateMCQReportIdempotent(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 5, true)
	f.gemini.textResponse = validAssessmentJSON()

	first, err := f.service.GenerateReport(context.Background(), sessionID)
	require.NoError(t, err)

	second, err := f.service.GenerateReport(context.Background(), sessionID)
	require.NoError(t, err)

	assert.Equal(t, first.ScorePercentage, second.ScorePercentage)
	assert.Equal(t, 1, f.gemini.textCalls)
}

func TestGenerateMCQReportMalformedNarrative(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 5, true)
	f.gemini.textResponse = "not json at all"

	_, err := f.service.GenerateReport(context.Background(), sessionID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUpstream, apperrors.KindOf(err))
	assert.Empty(t, f.reports.reports)
}

func TestGetSessionRedactsUntilComplete(t *testing.T) {
	f := newMCQFixture()
	sessionID := seedMCQSession(t, f, 2, false)

	view, err := f.service.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	require.Len(t, view.Questions, 5)
	for _, q := range view.Questions {
		assert.Empty(t, q.CorrectOption)
		assert.Empty(t, q.Explanation)
	}
	assert.Equal(t, 2, view.CurrentQuestionNumber)

	completedID := seedMCQSession(t, f, 5, true)
	completed, err := f.service.GetSession(context.Background(), completedID)
	require.NoError(t, err)
	for _, q := range completed.Questions {
		assert.Equal(t, "B", q.CorrectOption)
		assert.NotEmpty(t, q.Explanation)
	}
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, 0.0, scorePercentage(0, 0))
	assert.Equal(t, 0.0, scorePercentage(0, 5))
	assert.InDelta(t, 40.0, scorePercentage(2, 5), 0.001)
	assert.InDelta(t, 100.0, scorePercentage(5, 5), 0.001)
}

func TestAggregateCategoriesFallback(t *testing.T) {
	questions := testQuestions(2)
	answers := models.AnswerList{
		{QuestionNumber: 1, IsCorrect: true},
		{QuestionNumber: 9, IsCorrect: false}, // no matching question
	}

	scores := aggregateCategories(questions, answers)

	assert.Equal(t, models.CategoryScore{Correct: 1, Total: 1}, scores["Logical Reasoning"])
	assert.Equal(t, models.CategoryScore{Correct: 0, Total: 1}, scores["General"])
}
