package model

import "time"

// Result is the single scored row per (user, company, quiz); attempts upsert
// it rather than append history.
type Result struct {
	BaseModel
	UserId           string `gorm:"column:user_id;index:idx_result_key,unique" json:"userId"`
	CompanyId        string `gorm:"column:company_id;index:idx_result_key,unique" json:"companyId"`
	QuizId           string `gorm:"column:quiz_id;index:idx_result_key,unique" json:"quizId"`
	ResultRightCount int    `gorm:"column:result_right_count" json:"resultRightCount"`
	ResultTotalCount int    `gorm:"column:result_total_count" json:"resultTotalCount"`
}

func (Result) TableName() string {
	return "t_result"
}

// CachedAnswer is the ephemeral per-question attempt record mirrored into the
// answer cache; audit/export only, never scoring truth.
type CachedAnswer struct {
	UserId     string `json:"userId" redis:"user_id"`
	CompanyId  string `json:"companyId" redis:"company_id"`
	QuizId     string `json:"quizId" redis:"quiz_id"`
	QuestionId string `json:"questionId" redis:"question_id"`
	AnswerData string `json:"answerData" redis:"answer_data"`
	IsCorrect  int    `json:"isCorrect" redis:"is_correct"`
}

// ExportedAnswer is the flat export row sourced from the answer cache.
type ExportedAnswer struct {
	QuizId     string `json:"quizId"`
	QuestionId string `json:"questionId"`
	AnswerData string `json:"answerData"`
	IsCorrect  int    `json:"isCorrect"`
}

// QuizAverage is a per-quiz average projection for one user.
type QuizAverage struct {
	QuizId    string  `json:"quizId"`
	CompanyId string  `json:"companyId"`
	Average   float64 `json:"average"`
}

// MemberAverage is an owner/admin view over one member's quiz result.
type MemberAverage struct {
	UserId    string    `json:"userId"`
	QuizId    string    `json:"quizId"`
	CompanyId string    `json:"companyId"`
	Average   float64   `json:"average"`
	CreatedAt time.Time `json:"createdAt"`
}

// PassingDate is the latest attempt timestamp for one member.
type PassingDate struct {
	UserId       string    `json:"userId"`
	LastPassedAt time.Time `json:"lastPassedAt"`
}
