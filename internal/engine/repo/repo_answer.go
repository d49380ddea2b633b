package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IAnswerRepository interface {
	AddAnswer(answer *model.Answer) error
	GetAnswerById(answerId string) (*model.Answer, error)
	UpdateAnswer(answerId string, fields map[string]interface{}) error
	DeleteAnswer(answerId string) error
	DeleteAnswersByQuestion(questionId string) error
	ListAnswersByQuestion(questionId string) ([]model.Answer, error)
	ListAnswersByQuestions(questionIds []string) ([]model.Answer, error)
	CountAnswersByQuestion(questionId string) (int64, error)
}

type AnswerRepo struct {
	database.IDatabase
}

func NewAnswerRepo(db database.IDatabase) IAnswerRepository {
	return &AnswerRepo{IDatabase: db}
}

func (r *AnswerRepo) AddAnswer(answer *model.Answer) error {
	return r.Database().Create(answer).Error
}

func (r *AnswerRepo) GetAnswerById(answerId string) (*model.Answer, error) {
	var answer model.Answer
	err := r.Database().Where("answer_id = ?", answerId).First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *AnswerRepo) UpdateAnswer(answerId string, fields map[string]interface{}) error {
	return r.Database().Model(&model.Answer{}).
		Where("answer_id = ?", answerId).
		Omit("answer_id", "question_id", "created_at").
		Updates(fields).Error
}

func (r *AnswerRepo) DeleteAnswer(answerId string) error {
	return r.Database().Where("answer_id = ?", answerId).Delete(&model.Answer{}).Error
}

func (r *AnswerRepo) DeleteAnswersByQuestion(questionId string) error {
	return r.Database().Where("question_id = ?", questionId).Delete(&model.Answer{}).Error
}

func (r *AnswerRepo) ListAnswersByQuestion(questionId string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.Database().Where("question_id = ?", questionId).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepo) ListAnswersByQuestions(questionIds []string) ([]model.Answer, error) {
	if len(questionIds) == 0 {
		return nil, nil
	}
	var answers []model.Answer
	err := r.Database().Where("question_id IN ?", questionIds).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepo) CountAnswersByQuestion(questionId string) (int64, error) {
	return Count(r.Database().Model(&model.Answer{}).Where("question_id = ?", questionId))
}
