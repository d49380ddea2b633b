package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/go-quizhub/quizhub/internal/engine/consts"
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/cache"
)

// IAnswerCacheRepository mirrors scored answers into Redis for audit exports.
// Entries expire on their own; nothing here is scoring truth.
type IAnswerCacheRepository interface {
	PutAnswer(ctx context.Context, answer *model.CachedAnswer, ttl time.Duration) error
	GetAnswer(ctx context.Context, userId, companyId, quizId, questionId string) (*model.CachedAnswer, error)
	ScanUserAnswers(ctx context.Context, userId string) ([]model.CachedAnswer, error)
	ScanPrefix(ctx context.Context, prefix string) ([]model.CachedAnswer, error)
}

type AnswerCacheRepo struct {
	cache cache.ICache
}

func NewAnswerCacheRepo(c cache.ICache) IAnswerCacheRepository {
	return &AnswerCacheRepo{cache: c}
}

func (r *AnswerCacheRepo) PutAnswer(ctx context.Context, answer *model.CachedAnswer, ttl time.Duration) error {
	if r.cache == nil {
		return nil
	}
	key := consts.AnswerCacheKey(answer.UserId, answer.CompanyId, answer.QuizId, answer.QuestionId)
	pipe := r.cache.Pipeline()
	pipe.HSet(ctx, key,
		"user_id", answer.UserId,
		"company_id", answer.CompanyId,
		"quiz_id", answer.QuizId,
		"question_id", answer.QuestionId,
		"answer_data", answer.AnswerData,
		"is_correct", answer.IsCorrect,
	)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *AnswerCacheRepo) GetAnswer(ctx context.Context, userId, companyId, quizId, questionId string) (*model.CachedAnswer, error) {
	if r.cache == nil {
		return nil, nil
	}
	key := consts.AnswerCacheKey(userId, companyId, quizId, questionId)
	fields, err := r.cache.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}
	return answerFromHash(fields), nil
}

func (r *AnswerCacheRepo) ScanUserAnswers(ctx context.Context, userId string) ([]model.CachedAnswer, error) {
	return r.ScanPrefix(ctx, consts.AnswerUserPrefix(userId))
}

// ScanPrefix walks the keyspace with SCAN rather than KEYS so exports never
// block the server.
func (r *AnswerCacheRepo) ScanPrefix(ctx context.Context, prefix string) ([]model.CachedAnswer, error) {
	if r.cache == nil {
		return nil, nil
	}
	var answers []model.CachedAnswer
	var cursor uint64
	for {
		keys, next, err := r.cache.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			fields, err := r.cache.HGetAll(ctx, key).Result()
			if err != nil {
				return nil, err
			}
			if len(fields) == 0 {
				continue
			}
			answers = append(answers, *answerFromHash(fields))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return answers, nil
}

func answerFromHash(fields map[string]string) *model.CachedAnswer {
	isCorrect, _ := strconv.Atoi(fields["is_correct"])
	return &model.CachedAnswer{
		UserId:     fields["user_id"],
		CompanyId:  fields["company_id"],
		QuizId:     fields["quiz_id"],
		QuestionId: fields["question_id"],
		AnswerData: fields["answer_data"],
		IsCorrect:  isCorrect,
	}
}
