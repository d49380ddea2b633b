package repo

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type IResultRepository interface {
	UpsertResult(result *model.Result) error
	GetResult(userId, companyId, quizId string) (*model.Result, error)
	ListResultsByUser(userId string) ([]model.Result, error)
	ListResultsByUserAndCompany(userId, companyId string) ([]model.Result, error)
	ListResultsByCompany(companyId string) ([]model.Result, error)
	ListResultsByQuiz(quizId string) ([]model.Result, error)
	ListAllResults() ([]model.Result, error)
	DeleteResultsByQuiz(quizId string) error
	DeleteResultsByMember(userId, companyId string) error
}

type ResultRepo struct {
	database.IDatabase
}

func NewResultRepo(db database.IDatabase) IResultRepository {
	return &ResultRepo{IDatabase: db}
}

// UpsertResult overwrites the counters of the existing (user, company, quiz)
// row, or inserts the first one.
func (r *ResultRepo) UpsertResult(result *model.Result) error {
	return r.Database().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "company_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"result_right_count", "result_total_count", "updated_at",
		}),
	}).Create(result).Error
}

func (r *ResultRepo) GetResult(userId, companyId, quizId string) (*model.Result, error) {
	var result model.Result
	err := r.Database().Where("user_id = ? AND company_id = ? AND quiz_id = ?", userId, companyId, quizId).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepo) ListResultsByUser(userId string) ([]model.Result, error) {
	var results []model.Result
	err := r.Database().Where("user_id = ?", userId).Find(&results).Error
	return results, err
}

func (r *ResultRepo) ListResultsByUserAndCompany(userId, companyId string) ([]model.Result, error) {
	var results []model.Result
	err := r.Database().Where("user_id = ? AND company_id = ?", userId, companyId).Find(&results).Error
	return results, err
}

func (r *ResultRepo) ListResultsByCompany(companyId string) ([]model.Result, error) {
	var results []model.Result
	err := r.Database().Where("company_id = ?", companyId).Find(&results).Error
	return results, err
}

func (r *ResultRepo) ListResultsByQuiz(quizId string) ([]model.Result, error) {
	var results []model.Result
	err := r.Database().Where("quiz_id = ?", quizId).Find(&results).Error
	return results, err
}

func (r *ResultRepo) ListAllResults() ([]model.Result, error) {
	var results []model.Result
	err := r.Database().Find(&results).Error
	return results, err
}

func (r *ResultRepo) DeleteResultsByQuiz(quizId string) error {
	return r.Database().Where("quiz_id = ?", quizId).Delete(&model.Result{}).Error
}

func (r *ResultRepo) DeleteResultsByMember(userId, companyId string) error {
	return r.Database().Where("user_id = ? AND company_id = ?", userId, companyId).
		Delete(&model.Result{}).Error
}
