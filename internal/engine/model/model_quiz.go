package model

import "time"

// Quiz owns an ordered set of questions (cascade delete). QuizFrequency is the
// required retake interval in days.
type Quiz struct {
	BaseModel
	QuizId        string     `gorm:"column:quiz_id;uniqueIndex" json:"quizId"`
	CompanyId     string     `gorm:"column:company_id;index:idx_quiz_name,unique" json:"companyId"`
	QuizName      string     `gorm:"column:quiz_name;index:idx_quiz_name,unique" json:"quizName"`
	QuizTitle     string     `gorm:"column:quiz_title" json:"quizTitle"`
	Description   string     `gorm:"column:description" json:"description"`
	QuizFrequency int        `gorm:"column:quiz_frequency" json:"quizFrequency"`
	LastPassedAt  *time.Time `gorm:"column:last_passed_at" json:"lastPassedAt"`
	CreatedBy     string     `gorm:"column:created_by" json:"createdBy"`
	UpdatedBy     string     `gorm:"column:updated_by" json:"updatedBy"`
}

func (Quiz) TableName() string {
	return "t_quiz"
}

type Question struct {
	BaseModel
	QuestionId   string `gorm:"column:question_id;uniqueIndex" json:"questionId"`
	QuizId       string `gorm:"column:quiz_id;index" json:"quizId"`
	CompanyId    string `gorm:"column:company_id;index" json:"companyId"` // denormalized
	QuestionText string `gorm:"column:question_text" json:"questionText"`
}

func (Question) TableName() string {
	return "t_question"
}

type Answer struct {
	BaseModel
	AnswerId   string `gorm:"column:answer_id;uniqueIndex" json:"answerId"`
	QuestionId string `gorm:"column:question_id;index" json:"questionId"`
	AnswerData string `gorm:"column:answer_data" json:"answerData"`
	IsCorrect  bool   `gorm:"column:is_correct" json:"isCorrect"`
}

func (Answer) TableName() string {
	return "t_answer"
}

// Authoring minimums enforced by the quiz service.
const (
	MinQuestionsPerQuiz  = 2
	MinAnswersPerQuestion = 2
)

type CreateQuizReq struct {
	CompanyId     string              `json:"companyId"`
	QuizName      string              `json:"quizName"`
	QuizTitle     string              `json:"quizTitle"`
	Description   string              `json:"description"`
	QuizFrequency int                 `json:"quizFrequency"`
	Questions     []CreateQuestionReq `json:"questions"`
}

type CreateQuestionReq struct {
	QuestionText string            `json:"questionText"`
	Answers      []CreateAnswerReq `json:"answers"`
}

type CreateAnswerReq struct {
	AnswerData string `json:"answerData"`
	IsCorrect  bool   `json:"isCorrect"`
}

type UpdateQuizReq struct {
	QuizTitle     *string `json:"quizTitle"`
	Description   *string `json:"description"`
	QuizFrequency *int    `json:"quizFrequency"`
}

type UpdateQuestionReq struct {
	QuestionText *string `json:"questionText"`
}

type UpdateAnswerReq struct {
	AnswerData *string `json:"answerData"`
	IsCorrect  *bool   `json:"isCorrect"`
}

// UserAnswer is one submitted answer within an attempt.
type UserAnswer struct {
	QuestionId string `json:"questionId"`
	AnswerData string `json:"answerData"`
}

type SubmitAttemptReq struct {
	UserAnswers []UserAnswer `json:"userAnswers"`
}
