package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IQuizRepository interface {
	AddQuiz(quiz *model.Quiz) error
	GetQuizById(quizId string) (*model.Quiz, error)
	GetQuizByName(companyId, quizName string) (*model.Quiz, error)
	UpdateQuiz(quizId string, fields map[string]interface{}) error
	SetLastPassedAt(quizId string, at time.Time) error
	DeleteQuiz(quizId string) error
	ListQuizzesByCompany(companyId string) ([]model.Quiz, error)
	ListAllQuizzes() ([]model.Quiz, error)
}

type QuizRepo struct {
	database.IDatabase
}

func NewQuizRepo(db database.IDatabase) IQuizRepository {
	return &QuizRepo{IDatabase: db}
}

func (r *QuizRepo) AddQuiz(quiz *model.Quiz) error {
	return r.Database().Create(quiz).Error
}

func (r *QuizRepo) GetQuizById(quizId string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.Database().Where("quiz_id = ?", quizId).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepo) GetQuizByName(companyId, quizName string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.Database().Where("company_id = ? AND quiz_name = ?", companyId, quizName).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepo) UpdateQuiz(quizId string, fields map[string]interface{}) error {
	return r.Database().Model(&model.Quiz{}).
		Where("quiz_id = ?", quizId).
		Omit("quiz_id", "company_id", "quiz_name", "created_by", "created_at").
		Updates(fields).Error
}

func (r *QuizRepo) SetLastPassedAt(quizId string, at time.Time) error {
	return r.Database().Model(&model.Quiz{}).
		Where("quiz_id = ?", quizId).
		Update("last_passed_at", at).Error
}

func (r *QuizRepo) DeleteQuiz(quizId string) error {
	return r.Database().Where("quiz_id = ?", quizId).Delete(&model.Quiz{}).Error
}

func (r *QuizRepo) ListQuizzesByCompany(companyId string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.Database().Where("company_id = ?", companyId).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepo) ListAllQuizzes() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.Database().Find(&quizzes).Error
	return quizzes, err
}
