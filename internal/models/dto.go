package models

type ParsedExperience struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Dates       string `json:"dates"`
	Description string `json:"description"`
}

type ParsedResume struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Skills     []string           `json:"skills"`
	Education  []string           `json:"education"`
	Experience []ParsedExperience `json:"experience"`
	RawText    string             `json:"raw_text"`
}

type StartInterviewResponse struct {
	SessionID             string        `json:"session_id"`
	Candidate             *ParsedResume `json:"candidate"`
	JobDescriptionPreview string        `json:"job_description_preview"`
	JobDescriptionLength  int           `json:"job_description_length"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply          string `json:"reply"`
	QuestionNumber int    `json:"question_number"`
	IsComplete     bool   `json:"is_complete"`
}

// MCQQuestionView is the client-facing question shape. The answer key
// fields stay empty (and absent from JSON) until the session completes.
type MCQQuestionView struct {
	QuestionNumber int         `json:"question_number"`
	Category       string      `json:"category"`
	QuestionText   string      `json:"question_text"`
	Options        []MCQOption `json:"options"`
	CorrectOption  string      `json:"correct_option,omitempty"`
	Explanation    string      `json:"explanation,omitempty"`
}

type StartMCQResponse struct {
	SessionID      string           `json:"session_id"`
	CandidateName  string           `json:"candidate_name"`
	TotalQuestions int              `json:"total_questions"`
	Question       *MCQQuestionView `json:"question"`
}

type MCQAnswerRequest struct {
	SessionID      string `json:"session_id" validate:"required,uuid"`
	QuestionNumber int    `json:"question_number" validate:"required,min=1"`
	SelectedOption string `json:"selected_option" validate:"required"`
}

type MCQAnswerResponse struct {
	IsComplete   bool             `json:"is_complete"`
	NextQuestion *MCQQuestionView `json:"next_question,omitempty"`
	Message      string           `json:"message,omitempty"`
}

// MCQSessionView mirrors MCQSession for client consumption; answer-revealing
// question fields are stripped while the session is incomplete.
type MCQSessionView struct {
	SessionID             string            `json:"session_id"`
	CandidateName         string            `json:"candidate_name"`
	CandidateEmail        string            `json:"candidate_email"`
	Questions             []MCQQuestionView `json:"questions"`
	Answers               AnswerList        `json:"answers"`
	CurrentQuestionNumber int               `json:"current_question_number"`
	IsComplete            bool              `json:"is_complete"`
}
