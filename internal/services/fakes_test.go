package services

import (
	"context"
	"fmt"

	"alfredoptarigan/ai-screener/internal/apperrors"
	"alfredoptarigan/ai-screener/internal/models"
)

// fakeGemini scripts completion responses. Chat calls fall back to a
// numbered question when no reply is configured.
type fakeGemini struct {
	chatReply    string
	chatErr      error
	chatCalls    int
	textResponse string
	textErr      error
	textCalls    int
}

func (f *fakeGemini) GenerateChat(ctx context.Context, system string, turns []ChatTurn, temperature float32, maxTokens int32) (string, error) {
	f.chatCalls++
	if f.chatErr != nil {
		return "", f.chatErr
	}
	if f.chatReply != "" {
		return f.chatReply, nil
	}
	return fmt.Sprintf("Generated question %d", f.chatCalls), nil
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.textCalls++
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.textResponse, nil
}

func (f *fakeGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return f.GenerateText(ctx, prompt, temperature)
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

type fakeSessionRepo struct {
	sessions map[string]models.InterviewSession

	// beforeUpdate runs once at the start of the next Update, before the
	// version check, to let a test interleave a competing writer.
	beforeUpdate func()
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]models.InterviewSession)}
}

func (r *fakeSessionRepo) Create(session *models.InterviewSession) error {
	r.sessions[session.ID] = cloneInterviewSession(*session)
	return nil
}

func (r *fakeSessionRepo) FindByID(id string) (*models.InterviewSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("session %s not found", id)
	}
	copied := cloneInterviewSession(session)
	return &copied, nil
}

func (r *fakeSessionRepo) Update(session *models.InterviewSession) error {
	if r.beforeUpdate != nil {
		hook := r.beforeUpdate
		r.beforeUpdate = nil
		hook()
	}

	stored, ok := r.sessions[session.ID]
	if !ok {
		return apperrors.NotFound("session %s not found", session.ID)
	}
	if stored.Version != session.Version {
		return apperrors.Conflict("session %s was modified concurrently", session.ID)
	}
	session.Version++
	r.sessions[session.ID] = cloneInterviewSession(*session)
	return nil
}

func cloneInterviewSession(s models.InterviewSession) models.InterviewSession {
	s.Messages = append(models.MessageList{}, s.Messages...)
	return s
}

type fakeMCQSessionRepo struct {
	sessions map[string]models.MCQSession

	beforeUpdate func()
}

func newFakeMCQSessionRepo() *fakeMCQSessionRepo {
	return &fakeMCQSessionRepo{sessions: make(map[string]models.MCQSession)}
}

func (r *fakeMCQSessionRepo) Create(session *models.MCQSession) error {
	r.sessions[session.ID] = cloneMCQSession(*session)
	return nil
}

func (r *fakeMCQSessionRepo) FindByID(id string) (*models.MCQSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, apperrors.NotFound("MCQ session %s not found", id)
	}
	copied := cloneMCQSession(session)
	return &copied, nil
}

func (r *fakeMCQSessionRepo) Update(session *models.MCQSession) error {
	if r.beforeUpdate != nil {
		hook := r.beforeUpdate
		r.beforeUpdate = nil
		hook()
	}

	stored, ok := r.sessions[session.ID]
	if !ok {
		return apperrors.NotFound("MCQ session %s not found", session.ID)
	}
	if stored.Version != session.Version {
		return apperrors.Conflict("MCQ session %s was modified concurrently", session.ID)
	}
	session.Version++
	r.sessions[session.ID] = cloneMCQSession(*session)
	return nil
}

func cloneMCQSession(s models.MCQSession) models.MCQSession {
	s.Questions = append(models.QuestionList{}, s.Questions...)
	s.Answers = append(models.AnswerList{}, s.Answers...)
	return s
}

type fakeReportRepo struct {
	reports   map[string]models.InterviewReport
	lastLimit int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]models.InterviewReport)}
}

func (r *fakeReportRepo) Create(report *models.InterviewReport) error {
	r.reports[report.SessionID] = *report
	return nil
}

func (r *fakeReportRepo) FindBySessionID(sessionID string) (*models.InterviewReport, error) {
	report, ok := r.reports[sessionID]
	if !ok {
		return nil, apperrors.NotFound("report for session %s not found", sessionID)
	}
	return &report, nil
}

func (r *fakeReportRepo) List(limit int) ([]models.InterviewReport, error) {
	r.lastLimit = limit
	var out []models.InterviewReport
	for _, report := range r.reports {
		out = append(out, report)
	}
	return out, nil
}

type fakeMCQReportRepo struct {
	reports map[string]models.MCQReport
}

func newFakeMCQReportRepo() *fakeMCQReportRepo {
	return &fakeMCQReportRepo{reports: make(map[string]models.MCQReport)}
}

func (r *fakeMCQReportRepo) Create(report *models.MCQReport) error {
	r.reports[report.SessionID] = *report
	return nil
}

func (r *fakeMCQReportRepo) FindBySessionID(sessionID string) (*models.MCQReport, error) {
	report, ok := r.reports[sessionID]
	if !ok {
		return nil, apperrors.NotFound("MCQ report for session %s not found", sessionID)
	}
	return &report, nil
}

type fakeQdrant struct{}

func (f *fakeQdrant) InitCollection() error { return nil }

func (f *fakeQdrant) UpsertChunk(ctx context.Context, sessionID, docType, text string, embedding []float32) error {
	return nil
}

func (f *fakeQdrant) SearchContext(ctx context.Context, queryEmbedding []float32, sessionID, docType string, limit int) ([]SearchResult, error) {
	return nil, nil
}

func (f *fakeQdrant) DeleteSession(ctx context.Context, sessionID string) error { return nil }

type fakeIndexer struct {
	jobs []IndexJob
}

func (f *fakeIndexer) Start(ctx context.Context)      {}
func (f *fakeIndexer) Stop()                          {}
func (f *fakeIndexer) EnqueueSession(job IndexJob)    { f.jobs = append(f.jobs, job) }

type fakeResumeParser struct{}

func (f *fakeResumeParser) ParseResume(ctx context.Context, fileBytes []byte, filename string) (*models.ParsedResume, error) {
	return &models.ParsedResume{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Skills:  []string{"Go", "Postgres"},
		RawText: string(fileBytes),
	}, nil
}

func (f *fakeResumeParser) ParseJobDescription(fileBytes []byte, filename string) (string, error) {
	return string(fileBytes), nil
}

type fakeStorage struct{}

func (f *fakeStorage) SaveBuffer(data []byte, fileType, originalName string) (string, string, error) {
	return "stored", "/tmp/stored", nil
}

func (f *fakeStorage) GetFilePath(filename string) string { return filename }
func (f *fakeStorage) DeleteFile(filename string) error   { return nil }
func (f *fakeStorage) EnsureUploadDir() error             { return nil }
