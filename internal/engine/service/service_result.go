package service

import (
	"context"
	"time"

	"github.com/go-quizhub/quizhub/internal/engine/consts"
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	"github.com/go-quizhub/quizhub/pkg/log"
)

// ResultService scores attempts and serves the aggregation surfaces. The Result
// table is the scoring truth; the answer cache is an expiring audit mirror.
type ResultService struct {
	repos      *repo.Repositories
	permission *PermissionService
	answerTTL  time.Duration
}

func NewResultService(repos *repo.Repositories, permission *PermissionService, answerTTL time.Duration) *ResultService {
	return &ResultService{
		repos:      repos,
		permission: permission,
		answerTTL:  answerTTL,
	}
}

// SubmitAttempt scores one full pass over a quiz. The submitted question-id set
// must equal the quiz's current set; each answer is right only on an exact
// match with a stored correct answer. The single Result row per (user, company,
// quiz) is overwritten, so a resubmission converges to the latest counters.
func (s *ResultService) SubmitAttempt(quizId string, actor *model.User, req *model.SubmitAttemptReq) (*model.Result, error) {
	quiz, err := s.loadQuiz(quizId)
	if err != nil {
		return nil, err
	}
	company, err := s.repos.Company.GetCompanyById(quiz.CompanyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	if err := s.permission.HasQuizAccess(company, actor); err != nil {
		return nil, err
	}

	questions, err := s.repos.Question.ListQuestionsByQuiz(quiz.QuizId)
	if err != nil {
		return nil, errs.Wrap(err, "list questions failed")
	}

	submitted := make(map[string]string, len(req.UserAnswers))
	for _, ua := range req.UserAnswers {
		if _, dup := submitted[ua.QuestionId]; dup {
			return nil, errs.Conflictf("question %s answered twice", ua.QuestionId)
		}
		submitted[ua.QuestionId] = ua.AnswerData
	}
	if len(submitted) != len(questions) {
		return nil, errs.Conflict("submitted answers do not cover the quiz questions")
	}
	for _, q := range questions {
		if _, ok := submitted[q.QuestionId]; !ok {
			return nil, errs.Conflictf("question %s is missing from the submission", q.QuestionId)
		}
	}

	right := 0
	cached := make([]model.CachedAnswer, 0, len(questions))
	for _, q := range questions {
		answers, err := s.repos.Answer.ListAnswersByQuestion(q.QuestionId)
		if err != nil {
			return nil, errs.Wrap(err, "list answers failed")
		}
		given := submitted[q.QuestionId]
		correct := 0
		for _, a := range answers {
			if a.IsCorrect && a.AnswerData == given {
				correct = 1
				break
			}
		}
		right += correct
		cached = append(cached, model.CachedAnswer{
			UserId:     actor.UserId,
			CompanyId:  quiz.CompanyId,
			QuizId:     quiz.QuizId,
			QuestionId: q.QuestionId,
			AnswerData: given,
			IsCorrect:  correct,
		})
	}

	result := &model.Result{
		UserId:           actor.UserId,
		CompanyId:        quiz.CompanyId,
		QuizId:           quiz.QuizId,
		ResultRightCount: right,
		ResultTotalCount: len(questions),
	}
	now := time.Now()
	err = s.repos.Atomic(func(tx *repo.Repositories) error {
		if err := tx.Result.UpsertResult(result); err != nil {
			return errs.Wrap(err, "save result failed")
		}
		return tx.Quiz.SetLastPassedAt(quiz.QuizId, now)
	})
	if err != nil {
		return nil, err
	}

	// Mirror to the answer cache; a cache failure never fails the attempt.
	go s.mirrorAnswers(cached)

	log.Infow("attempt scored", "quizId", quiz.QuizId, "userId", actor.UserId,
		"right", right, "total", len(questions))
	return result, nil
}

func (s *ResultService) mirrorAnswers(answers []model.CachedAnswer) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := range answers {
		if err := s.repos.AnswerCache.PutAnswer(ctx, &answers[i], s.answerTTL); err != nil {
			log.Errorw("cache answer failed", "quizId", answers[i].QuizId,
				"questionId", answers[i].QuestionId, "error", err)
			return
		}
	}
}

// AverageForCompany is the actor's weighted average over their results in one
// company: sum(right) / sum(total), 0 when they have no results there.
func (s *ResultService) AverageForCompany(companyId string, actor *model.User) (float64, error) {
	company, err := s.repos.Company.GetCompanyById(companyId)
	if err != nil {
		return 0, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return 0, errs.NotFound("company not found")
	}
	if err := s.permission.HasQuizAccess(company, actor); err != nil {
		return 0, err
	}
	results, err := s.repos.Result.ListResultsByUserAndCompany(actor.UserId, companyId)
	if err != nil {
		return 0, errs.Wrap(err, "list results failed")
	}
	return weightedAverage(results), nil
}

// AverageOverall is the actor's weighted average over every company.
func (s *ResultService) AverageOverall(actor *model.User) (float64, error) {
	results, err := s.repos.Result.ListResultsByUser(actor.UserId)
	if err != nil {
		return 0, errs.Wrap(err, "list results failed")
	}
	return weightedAverage(results), nil
}

// PerQuizAverageSeries projects the actor's result per quiz.
func (s *ResultService) PerQuizAverageSeries(actor *model.User) ([]model.QuizAverage, error) {
	results, err := s.repos.Result.ListResultsByUser(actor.UserId)
	if err != nil {
		return nil, errs.Wrap(err, "list results failed")
	}
	series := make([]model.QuizAverage, 0, len(results))
	for _, r := range results {
		series = append(series, model.QuizAverage{
			QuizId:    r.QuizId,
			CompanyId: r.CompanyId,
			Average:   resultAverage(r),
		})
	}
	return series, nil
}

// MemberAverageSeries is the owner/admin view over every member's results in
// the company.
func (s *ResultService) MemberAverageSeries(companyId string, actor *model.User) ([]model.MemberAverage, error) {
	company, err := s.repos.Company.GetCompanyById(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	if err := s.permission.IsOwnerOrAdmin(company, actor); err != nil {
		return nil, err
	}
	results, err := s.repos.Result.ListResultsByCompany(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "list results failed")
	}
	series := make([]model.MemberAverage, 0, len(results))
	for _, r := range results {
		series = append(series, model.MemberAverage{
			UserId:    r.UserId,
			QuizId:    r.QuizId,
			CompanyId: r.CompanyId,
			Average:   resultAverage(r),
			CreatedAt: r.CreatedAt,
		})
	}
	return series, nil
}

// MemberAverages narrows MemberAverageSeries to one member.
func (s *ResultService) MemberAverages(companyId, memberUserId string, actor *model.User) ([]model.MemberAverage, error) {
	series, err := s.MemberAverageSeries(companyId, actor)
	if err != nil {
		return nil, err
	}
	filtered := series[:0]
	for _, m := range series {
		if m.UserId == memberUserId {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// PassingDatesForCompany reports each member's latest attempt timestamp.
// Members without any result are omitted.
func (s *ResultService) PassingDatesForCompany(companyId string, actor *model.User) ([]model.PassingDate, error) {
	company, err := s.repos.Company.GetCompanyById(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	if err := s.permission.IsOwnerOrAdmin(company, actor); err != nil {
		return nil, err
	}
	results, err := s.repos.Result.ListResultsByCompany(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "list results failed")
	}

	latest := map[string]time.Time{}
	for _, r := range results {
		if r.UpdatedAt.After(latest[r.UserId]) {
			latest[r.UserId] = r.UpdatedAt
		}
	}
	dates := make([]model.PassingDate, 0, len(latest))
	for userId, at := range latest {
		dates = append(dates, model.PassingDate{UserId: userId, LastPassedAt: at})
	}
	return dates, nil
}

// CachedAnswersForUser exports the actor's still-cached answers.
func (s *ResultService) CachedAnswersForUser(ctx context.Context, actor *model.User) ([]model.ExportedAnswer, error) {
	cached, err := s.repos.AnswerCache.ScanUserAnswers(ctx, actor.UserId)
	if err != nil {
		return nil, errs.Wrap(err, "scan answer cache failed")
	}
	return exportAnswers(cached, ""), nil
}

// CachedAnswersForCompany exports every still-cached answer belonging to one
// company, owner/admin only.
func (s *ResultService) CachedAnswersForCompany(ctx context.Context, companyId string, actor *model.User) ([]model.ExportedAnswer, error) {
	company, err := s.repos.Company.GetCompanyById(companyId)
	if err != nil {
		return nil, errs.Wrap(err, "load company failed")
	}
	if company == nil {
		return nil, errs.NotFound("company not found")
	}
	if err := s.permission.IsOwnerOrAdmin(company, actor); err != nil {
		return nil, err
	}
	cached, err := s.repos.AnswerCache.ScanPrefix(ctx, consts.AnswerKey)
	if err != nil {
		return nil, errs.Wrap(err, "scan answer cache failed")
	}
	return exportAnswers(cached, companyId), nil
}

func (s *ResultService) loadQuiz(quizId string) (*model.Quiz, error) {
	if quizId == "" {
		return nil, errs.Conflict("quiz id cannot be empty")
	}
	quiz, err := s.repos.Quiz.GetQuizById(quizId)
	if err != nil {
		return nil, errs.Wrap(err, "load quiz failed")
	}
	if quiz == nil {
		return nil, errs.NotFound("quiz not found")
	}
	return quiz, nil
}

func weightedAverage(results []model.Result) float64 {
	right, total := 0, 0
	for _, r := range results {
		right += r.ResultRightCount
		total += r.ResultTotalCount
	}
	if total == 0 {
		return 0
	}
	return float64(right) / float64(total)
}

func resultAverage(r model.Result) float64 {
	if r.ResultTotalCount == 0 {
		return 0
	}
	return float64(r.ResultRightCount) / float64(r.ResultTotalCount)
}

func exportAnswers(cached []model.CachedAnswer, companyId string) []model.ExportedAnswer {
	exported := make([]model.ExportedAnswer, 0, len(cached))
	for _, a := range cached {
		if companyId != "" && a.CompanyId != companyId {
			continue
		}
		exported = append(exported, model.ExportedAnswer{
			QuizId:     a.QuizId,
			QuestionId: a.QuestionId,
			AnswerData: a.AnswerData,
			IsCorrect:  a.IsCorrect,
		})
	}
	return exported
}
