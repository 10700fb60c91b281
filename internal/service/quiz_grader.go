package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"aisb_backend/internal/model"
	"aisb_backend/internal/util"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
)

// GradingReport is the common output shape of both grading variants.
type GradingReport struct {
	TotalQuestions  int                    `json:"total_questions"`
	CorrectAnswers  int                    `json:"correct_answers"`
	ScorePercentage float64                `json:"score_percentage"`
	QuestionResults []model.QuestionResult `json:"question_results"`
	OverallFeedback string                 `json:"overall_feedback"`
	Grade           string                 `json:"grade"`
}

// QuizGrader grades a submission. Like the generator, the variant is fixed at
// construction; grading itself never fails.
type QuizGrader interface {
	Grade(ctx context.Context, answers, correct []string, questions []model.Question, questionType model.QuestionType) *GradingReport
}

func NewQuizGrader(ai *AIService) QuizGrader {
	if ai != nil && ai.Available() {
		return &aiQuizGrader{ai: ai}
	}
	return &heuristicQuizGrader{}
}

type heuristicQuizGrader struct{}

func (g *heuristicQuizGrader) Grade(_ context.Context, answers, correct []string, questions []model.Question, _ model.QuestionType) *GradingReport {
	return GradeAnswers(answers, correct, questions)
}

// GradeAnswers is the deterministic grading heuristic: case-insensitive,
// whitespace-trimmed exact matching, one point per question. It is total over
// any input; answers or correct-answer lists shorter than the question list
// are padded with empty strings, which count as incorrect.
func GradeAnswers(answers, correct []string, questions []model.Question) *GradingReport {
	correctCount := 0
	questionResults := make([]model.QuestionResult, len(questions))

	for i := range questions {
		studentAnswer := ""
		if i < len(answers) {
			studentAnswer = answers[i]
		}
		correctAnswer := ""
		if i < len(correct) {
			correctAnswer = correct[i]
		}

		isCorrect := strings.EqualFold(strings.TrimSpace(studentAnswer), strings.TrimSpace(correctAnswer))
		points := 0
		feedback := fmt.Sprintf("Incorrect. The correct answer is: %s", correctAnswer)
		if isCorrect {
			correctCount++
			points = 1
			feedback = "Correct!"
		}

		questionResults[i] = model.QuestionResult{
			QuestionNumber: i + 1,
			StudentAnswer:  studentAnswer,
			CorrectAnswer:  correctAnswer,
			IsCorrect:      isCorrect,
			PointsEarned:   points,
			Feedback:       feedback,
		}
	}

	scorePercentage := 0.0
	if len(questions) > 0 {
		scorePercentage = float64(correctCount) / float64(len(questions)) * 100
	}
	scorePercentage = math.Round(scorePercentage*100) / 100

	return &GradingReport{
		TotalQuestions:  len(questions),
		CorrectAnswers:  correctCount,
		ScorePercentage: scorePercentage,
		QuestionResults: questionResults,
		OverallFeedback: fmt.Sprintf("You scored %d/%d (%.1f%%)", correctCount, len(questions), scorePercentage),
		Grade:           util.LetterGrade(scorePercentage),
	}
}

type aiQuizGrader struct {
	ai *AIService
}

const quizGraderSystemPrompt = `You are an experienced educator and assessment specialist. ` +
	`You grade quiz submissions fairly and consistently and provide detailed feedback. ` +
	`Respond with ONLY valid JSON, no markdown fences and no explanations around it.`

func quizGraderPrompt(answers, correct []string, questions []model.Question, questionType model.QuestionType) string {
	var sb strings.Builder
	for i, q := range questions {
		studentAnswer := "No answer"
		if i < len(answers) {
			studentAnswer = answers[i]
		}
		correctAnswer := "N/A"
		if i < len(correct) {
			correctAnswer = correct[i]
		}
		fmt.Fprintf(&sb, "\nQuestion %d: %s\nStudent Answer: %s\nCorrect Answer: %s\n---\n", i+1, q.Text, studentAnswer, correctAnswer)
	}

	return fmt.Sprintf(`Grade the following quiz submission for %s questions:

Questions and Answers:
%s

Requirements:
1. Compare each student answer with the correct answer
2. For MCQ and TrueFalse: Award full points for exact matches, zero for incorrect
3. For QA: Evaluate based on content accuracy and completeness (partial credit allowed)
4. Calculate total score as percentage
5. Provide feedback for each question
6. Identify areas for improvement

Format the output as JSON:
{
    "total_questions": %d,
    "correct_answers": number_of_correct_answers,
    "score_percentage": calculated_percentage,
    "question_results": [
        {
            "question_number": 1,
            "student_answer": "student's answer",
            "correct_answer": "correct answer",
            "is_correct": true,
            "points_earned": 1,
            "feedback": "specific feedback for this question"
        }
    ],
    "overall_feedback": "general feedback and suggestions for improvement",
    "grade": "letter grade (A, B, C, D, F)"
}`, questionType, sb.String(), len(questions))
}

func (g *aiQuizGrader) Grade(ctx context.Context, answers, correct []string, questions []model.Question, questionType model.QuestionType) *GradingReport {
	reply, err := g.ai.Chat(ctx, quizGraderSystemPrompt, quizGraderPrompt(answers, correct, questions, questionType))
	if err != nil {
		logger.Log.Warn("AI grading failed, using heuristic grading", zap.Error(err))
		return GradeAnswers(answers, correct, questions)
	}

	report, err := parseGradingReport(reply, len(questions))
	if err != nil {
		logger.Log.Warn("AI grading reply was not parseable, using heuristic grading", zap.Error(err))
		return GradeAnswers(answers, correct, questions)
	}
	return report
}

func parseGradingReport(reply string, totalQuestions int) (*GradingReport, error) {
	payload, ok := extractJSONObject(reply)
	if !ok {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var report GradingReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, err
	}
	if len(report.QuestionResults) != totalQuestions {
		return nil, fmt.Errorf("reply graded %d of %d questions", len(report.QuestionResults), totalQuestions)
	}

	report.ScorePercentage = util.ClampScore(report.ScorePercentage)
	if report.Grade == "" {
		report.Grade = util.LetterGrade(report.ScorePercentage)
	}
	return &report, nil
}
