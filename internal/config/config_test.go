package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"RETRY_MAX_ATTEMPTS",
		"INTERVIEW_TOTAL_QUESTIONS",
		"INTERVIEW_MIN_REPORT_ANSWERS",
		"MCQ_QUESTION_COUNT",
		"INDEXER_CONCURRENCY",
		"MAX_FILE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 6, cfg.Interview.TotalQuestions)
	assert.Equal(t, 3, cfg.Interview.MinReportAnswers)
	assert.Equal(t, 5, cfg.MCQ.QuestionCount)
	assert.Equal(t, 2, cfg.Indexer.Concurrency)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)

	// Completion calls are single-attempt unless explicitly tuned.
	assert.Equal(t, 1, cfg.Interview.RetryMaxAttempts)
	assert.Equal(t, 1, cfg.MCQ.RetryMaxAttempts)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RETRY_MAX_ATTEMPTS", "4")
	t.Setenv("INTERVIEW_TOTAL_QUESTIONS", "8")
	t.Setenv("MCQ_QUESTION_COUNT", "10")

	cfg := Load()

	assert.Equal(t, 4, cfg.Interview.RetryMaxAttempts)
	assert.Equal(t, 4, cfg.MCQ.RetryMaxAttempts)
	assert.Equal(t, 8, cfg.Interview.TotalQuestions)
	assert.Equal(t, 10, cfg.MCQ.QuestionCount)
}

func TestGetDatabaseDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "screener")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "screening")

	cfg := Load()
	dsn := cfg.GetDatabaseDSN()

	require.Contains(t, dsn, "host=db.internal")
	require.Contains(t, dsn, "port=5433")
	require.Contains(t, dsn, "user=screener")
	require.Contains(t, dsn, "dbname=screening")
}
