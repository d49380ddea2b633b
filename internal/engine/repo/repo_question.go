package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IQuestionRepository interface {
	AddQuestion(question *model.Question) error
	GetQuestionById(questionId string) (*model.Question, error)
	UpdateQuestion(questionId string, fields map[string]interface{}) error
	DeleteQuestion(questionId string) error
	DeleteQuestionsByQuiz(quizId string) error
	ListQuestionsByQuiz(quizId string) ([]model.Question, error)
	CountQuestionsByQuiz(quizId string) (int64, error)
}

type QuestionRepo struct {
	database.IDatabase
}

func NewQuestionRepo(db database.IDatabase) IQuestionRepository {
	return &QuestionRepo{IDatabase: db}
}

func (r *QuestionRepo) AddQuestion(question *model.Question) error {
	return r.Database().Create(question).Error
}

func (r *QuestionRepo) GetQuestionById(questionId string) (*model.Question, error) {
	var question model.Question
	err := r.Database().Where("question_id = ?", questionId).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepo) UpdateQuestion(questionId string, fields map[string]interface{}) error {
	return r.Database().Model(&model.Question{}).
		Where("question_id = ?", questionId).
		Omit("question_id", "quiz_id", "company_id", "created_at").
		Updates(fields).Error
}

func (r *QuestionRepo) DeleteQuestion(questionId string) error {
	return r.Database().Where("question_id = ?", questionId).Delete(&model.Question{}).Error
}

func (r *QuestionRepo) DeleteQuestionsByQuiz(quizId string) error {
	return r.Database().Where("quiz_id = ?", quizId).Delete(&model.Question{}).Error
}

func (r *QuestionRepo) ListQuestionsByQuiz(quizId string) ([]model.Question, error) {
	var questions []model.Question
	err := r.Database().Where("quiz_id = ?", quizId).Order("id ASC").Find(&questions).Error
	return questions, err
}

func (r *QuestionRepo) CountQuestionsByQuiz(quizId string) (int64, error) {
	return Count(r.Database().Model(&model.Question{}).Where("quiz_id = ?", quizId))
}
