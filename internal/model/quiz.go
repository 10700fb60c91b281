package model

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	QuestionMCQ       QuestionType = "MCQ"
	QuestionTrueFalse QuestionType = "TrueFalse"
	QuestionQA        QuestionType = "QA"
)

// Question numbers are 1-based and contiguous within a quiz. Options is empty
// for QA questions.
type Question struct {
	Number        int      `json:"question_number"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// swagger:model Quiz
type Quiz struct {
	ID             string       `json:"id"`
	Topic          string       `json:"topic"`
	Difficulty     Difficulty   `json:"difficulty"`
	QuestionType   QuestionType `json:"question_type"`
	TotalQuestions int          `json:"total_questions"`
	Questions      []Question   `json:"questions"`
	CreatedBy      string       `json:"created_by"`
	CreatedAt      time.Time    `json:"created_at"`
}

// ForStudent strips correct answers and explanations so a quiz can be served
// to a student who has not taken it yet.
func (q Quiz) ForStudent() Quiz {
	questions := make([]Question, len(q.Questions))
	for i, qu := range q.Questions {
		qu.CorrectAnswer = ""
		qu.Explanation = ""
		questions[i] = qu
	}
	q.Questions = questions
	return q
}
