package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aisb_backend/internal/model"
	"aisb_backend/pkg/logger"

	"go.uber.org/zap"
)

// QuizGenerator produces a quiz for a topic. The variant is chosen at
// construction: AI-backed when a completion client is configured, otherwise a
// deterministic mock with the same output shape.
type QuizGenerator interface {
	Generate(ctx context.Context, topic string, numQuestions int, difficulty model.Difficulty, questionType model.QuestionType) (*model.Quiz, error)
}

func NewQuizGenerator(ai *AIService) QuizGenerator {
	mock := &mockQuizGenerator{}
	if ai != nil && ai.Available() {
		return &aiQuizGenerator{ai: ai, fallback: mock}
	}
	return mock
}

type aiQuizGenerator struct {
	ai       *AIService
	fallback *mockQuizGenerator
}

const quizGeneratorSystemPrompt = `You are an expert educational content creator. ` +
	`You develop engaging and challenging quiz questions for different learning levels. ` +
	`Respond with ONLY valid JSON, no markdown fences and no explanations around it.`

func quizGeneratorPrompt(topic string, numQuestions int, difficulty model.Difficulty, questionType model.QuestionType) string {
	return fmt.Sprintf(`Generate a %s level quiz on the topic '%s' with %d questions.
Question type: %s

Requirements:
1. Each question should be clear and unambiguous
2. For MCQ: Provide 4 options (A, B, C, D) with one correct answer
3. For TrueFalse: Provide a statement that can be clearly true or false
4. For QA: Provide open-ended questions with sample answers
5. Include the correct answer for each question
6. Ensure questions are appropriate for the %s difficulty level

Format the output as a JSON structure with:
{
    "topic": "%s",
    "difficulty": "%s",
    "question_type": "%s",
    "total_questions": %d,
    "questions": [
        {
            "question_number": 1,
            "question": "Question text here",
            "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
            "correct_answer": "A",
            "explanation": "Brief explanation of the correct answer"
        }
    ]
}`, difficulty, topic, numQuestions, questionType, difficulty, topic, difficulty, questionType, numQuestions)
}

func (g *aiQuizGenerator) Generate(ctx context.Context, topic string, numQuestions int, difficulty model.Difficulty, questionType model.QuestionType) (*model.Quiz, error) {
	reply, err := g.ai.Chat(ctx, quizGeneratorSystemPrompt, quizGeneratorPrompt(topic, numQuestions, difficulty, questionType))
	if err != nil {
		logger.Log.Warn("AI quiz generation failed, using mock generator", zap.Error(err))
		return g.fallback.Generate(ctx, topic, numQuestions, difficulty, questionType)
	}

	quiz, err := parseGeneratedQuiz(reply, topic, difficulty, questionType)
	if err != nil {
		logger.Log.Warn("AI quiz reply was not parseable, using mock generator", zap.Error(err))
		return g.fallback.Generate(ctx, topic, numQuestions, difficulty, questionType)
	}
	return quiz, nil
}

func parseGeneratedQuiz(reply, topic string, difficulty model.Difficulty, questionType model.QuestionType) (*model.Quiz, error) {
	payload, ok := extractJSONObject(reply)
	if !ok {
		return nil, fmt.Errorf("no JSON object in reply")
	}

	var parsed struct {
		Questions []struct {
			QuestionNumber int      `json:"question_number"`
			Question       string   `json:"question"`
			Options        []string `json:"options"`
			CorrectAnswer  string   `json:"correct_answer"`
			Explanation    string   `json:"explanation"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("reply contains no questions")
	}

	questions := make([]model.Question, len(parsed.Questions))
	for i, q := range parsed.Questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		questions[i] = model.Question{
			Number:        i + 1,
			Text:          q.Question,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}

	return &model.Quiz{
		Topic:          topic,
		Difficulty:     difficulty,
		QuestionType:   questionType,
		TotalQuestions: len(questions),
		Questions:      questions,
		CreatedAt:      time.Now(),
	}, nil
}

// mockQuizGenerator synthesizes a quiz with the same shape as the AI path.
type mockQuizGenerator struct{}

func (g *mockQuizGenerator) Generate(_ context.Context, topic string, numQuestions int, difficulty model.Difficulty, questionType model.QuestionType) (*model.Quiz, error) {
	questions := make([]model.Question, numQuestions)
	for i := 0; i < numQuestions; i++ {
		n := i + 1
		switch questionType {
		case model.QuestionTrueFalse:
			questions[i] = model.Question{
				Number:        n,
				Text:          fmt.Sprintf("Sample %s True/False statement %d about %s.", difficulty, n, topic),
				Options:       []string{"True", "False"},
				CorrectAnswer: "True",
				Explanation:   fmt.Sprintf("This is the explanation for question %d", n),
			}
		case model.QuestionQA:
			questions[i] = model.Question{
				Number:        n,
				Text:          fmt.Sprintf("Sample %s Q/A question %d about %s?", difficulty, n, topic),
				Options:       []string{},
				CorrectAnswer: fmt.Sprintf("Sample answer for question %d", n),
				Explanation:   fmt.Sprintf("This is the explanation for question %d", n),
			}
		default:
			questions[i] = model.Question{
				Number:        n,
				Text:          fmt.Sprintf("Sample %s MCQ question %d about %s?", difficulty, n, topic),
				Options:       []string{"A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"},
				CorrectAnswer: "A",
				Explanation:   fmt.Sprintf("This is the explanation for question %d", n),
			}
		}
	}

	return &model.Quiz{
		Topic:          topic,
		Difficulty:     difficulty,
		QuestionType:   questionType,
		TotalQuestions: numQuestions,
		Questions:      questions,
		CreatedAt:      time.Now(),
	}, nil
}
