package services

import (
	"fmt"
	"strings"

	"alfredoptarigan/ai-screener/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildInterviewSystemPrompt creates the system instruction for the
// conversational interview, embedding resume, job description, and the
// upcoming 1-based question index.
func (pb *PromptBuilder) BuildInterviewSystemPrompt(resume, jobDescription string, questionNumber, totalQuestions int) string {
	return fmt.Sprintf(`You are an AI Technical Recruiter conducting a candidate screening interview.

Your role:
1. Ask personalized interview questions based on the candidate's resume and job description
2. Ask ONE question at a time
3. Adapt follow-up questions based on previous answers
4. Be professional, friendly, and conversational
5. After %d questions, you will provide a final evaluation

Interview Structure:
- Question 1: Ask about their most recent/relevant project
- Question 2: Validate key skills from their resume relevant to the JD
- Question 3: Technical challenge they solved
- Question 4: Team collaboration and communication
- Question 5: Problem-solving scenario
- Question 6: JD-specific technical question

Keep questions conversational and natural. Don't be too formal.

CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s

Current Question Number: %d/%d`,
		totalQuestions, resume, jobDescription, questionNumber, totalQuestions)
}

// BuildNextQuestionInstruction shapes the final user turn of a chat
// completion request. The first question gets a greeting instruction,
// later questions a positional one.
func (pb *PromptBuilder) BuildNextQuestionInstruction(questionNumber int) string {
	if questionNumber == 1 {
		return "Start the interview with a warm greeting and ask the first question about their most recent project."
	}
	return fmt.Sprintf("Ask question %d based on the interview structure and their previous responses.", questionNumber)
}

// BuildInterviewReportPrompt creates the prompt for the final interview
// evaluation. ragContext is optional retrieved context and may be empty.
func (pb *PromptBuilder) BuildInterviewReportPrompt(candidateName, resume, jobDescription, ragContext string, transcript models.MessageList, questionsAnswered int) string {
	var conversation strings.Builder
	for _, msg := range transcript {
		conversation.WriteString(fmt.Sprintf("%s: %s\n\n", msg.Sender, msg.Text))
	}

	contextSection := ""
	if ragContext != "" {
		contextSection = fmt.Sprintf("\nRELEVANT CONTEXT:\n%s\n", ragContext)
	}

	return fmt.Sprintf(`Based on the interview with %s (%d questions answered), generate a detailed evaluation report.

CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s
%s
INTERVIEW TRANSCRIPT:
%s

Analyze and score the candidate on:
1. Skill Match (0-100): How well their skills align with job requirements
2. Experience Match (0-100): Relevance and depth of their experience
3. Communication (0-100): Clarity, articulation, and professionalism
4. Problem Solving (0-100): Analytical thinking and approach to challenges
5. Overall Fit (0-100): Composite score considering all factors

Also provide:
- Recommendation: "Strongly Recommended for Next Round", "Recommended for Next Round", "Maybe - Consider for Next Round", or "Not Recommended"
- Strengths: List 3-5 key strengths
- Weaknesses: List 2-4 areas of concern or gaps
- Detailed Feedback: 2-3 paragraph summary

Return ONLY valid JSON in this exact format:
{
  "skill_match": 85,
  "experience_match": 78,
  "communication": 92,
  "problem_solving": 80,
  "overall_fit": 84,
  "recommendation": "Recommended for Next Round",
  "strengths": ["Strong React expertise", "Good problem-solving", "Clear communication"],
  "weaknesses": ["Limited cloud experience", "Needs more system design practice"],
  "detailed_feedback": "The candidate demonstrated..."
}`,
		candidateName, questionsAnswered, resume, jobDescription, contextSection, conversation.String())
}

// BuildMCQGenerationPrompt creates the prompt for the one-shot question
// batch generated at MCQ session creation.
func (pb *PromptBuilder) BuildMCQGenerationPrompt(resume, jobDescription string, count int) string {
	return fmt.Sprintf(`You are an expert technical recruiter creating cognitive aptitude assessment questions.

Based on the candidate's resume and job description, generate %d multiple-choice questions that test:
1. Logical Reasoning (1-2 questions)
2. Technical Aptitude relevant to the JD (2-3 questions)
3. Problem Solving (1-2 questions)

CANDIDATE RESUME:
%s

JOB DESCRIPTION:
%s

Requirements:
- Each question should have 4 options (A, B, C, D)
- Questions should be relevant to the candidate's background and the job role
- Mix difficulty levels (medium to challenging)
- Include practical scenarios when possible
- Make questions thought-provoking and realistic

Return ONLY valid JSON in this exact format:
{
  "questions": [
    {
      "question_number": 1,
      "category": "Logical Reasoning",
      "question_text": "If all A are B, and some B are C, which statement must be true?",
      "options": [
        {"option": "A", "text": "All A are C"},
        {"option": "B", "text": "Some A are C"},
        {"option": "C", "text": "No A are C"},
        {"option": "D", "text": "Cannot be determined"}
      ],
      "correct_option": "D",
      "explanation": "Detailed explanation of why D is correct..."
    }
  ]
}`,
		count, resume, jobDescription)
}

// BuildMCQAssessmentPrompt creates the prompt for the narrative MCQ
// evaluation given the computed score summary.
func (pb *PromptBuilder) BuildMCQAssessmentPrompt(candidateName, resume, jobDescription string, correct, total int, scorePercentage float64, answers models.AnswerList) string {
	var summary strings.Builder
	for i, ans := range answers {
		if i > 0 {
			summary.WriteString("\n\n")
		}
		result := "Incorrect"
		if ans.IsCorrect {
			result = "Correct"
		}
		summary.WriteString(fmt.Sprintf("Q%d: %s\nSelected: %s - %s\nCorrect: %s\nResult: %s",
			ans.QuestionNumber, ans.QuestionText, ans.SelectedOption, ans.SelectedText, ans.CorrectOption, result))
	}

	return fmt.Sprintf(`Based on the MCQ test results, provide a comprehensive assessment.

CANDIDATE: %s

RESUME SUMMARY:
%s

JOB DESCRIPTION SUMMARY:
%s

TEST RESULTS:
Score: %d/%d (%.1f%%)

ANSWERS:
%s

Provide:
1. Overall Assessment (2-3 sentences about cognitive abilities)
2. Cognitive Strengths (3-4 specific strengths observed)
3. Areas for Improvement (2-3 areas to work on)
4. Recommendation (whether to proceed to next round)

Return ONLY valid JSON:
{
  "overall_assessment": "The candidate demonstrated...",
  "cognitive_strengths": ["Strong logical reasoning", "Good technical aptitude"],
  "areas_for_improvement": ["Speed in problem-solving", "Complex scenario analysis"],
  "recommendation": "Proceed to technical interview round"
}`,
		candidateName, truncate(resume, 500), truncate(jobDescription, 500), correct, total, scorePercentage, summary.String())
}

// BuildResumeExtractionPrompt creates the prompt for structured field
// extraction from raw resume text.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(text string) string {
	return fmt.Sprintf(`Extract the following information from this resume text and return ONLY valid JSON:

{
  "name": "full name",
  "email": "email address",
  "phone": "phone number",
  "skills": ["skill1", "skill2"],
  "education": ["degree/institution"],
  "experience": [
    {
      "company": "company name",
      "role": "job title",
      "dates": "employment period",
      "description": "brief description"
    }
  ]
}

Resume Text:
%s

Return ONLY the JSON, no other text.`, text)
}

// FormatRetrievedContext renders vector search hits for prompt injection.
func FormatRetrievedContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
