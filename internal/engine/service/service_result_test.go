package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
)

func attemptFor(t *testing.T, repos *repo.Repositories, quizId string, pick func(q model.Question, answers []model.Answer) string) *model.SubmitAttemptReq {
	t.Helper()
	questions, err := repos.Question.ListQuestionsByQuiz(quizId)
	require.NoError(t, err)
	req := &model.SubmitAttemptReq{}
	for _, q := range questions {
		answers, err := repos.Answer.ListAnswersByQuestion(q.QuestionId)
		require.NoError(t, err)
		req.UserAnswers = append(req.UserAnswers, model.UserAnswer{
			QuestionId: q.QuestionId,
			AnswerData: pick(q, answers),
		})
	}
	return req
}

func pickCorrect(_ model.Question, answers []model.Answer) string {
	for _, a := range answers {
		if a.IsCorrect {
			return a.AnswerData
		}
	}
	return ""
}

func pickWrong(_ model.Question, answers []model.Answer) string {
	for _, a := range answers {
		if !a.IsCorrect {
			return a.AnswerData
		}
	}
	return ""
}

func TestSubmitAttemptScoresExactMatches(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)
	quiz := seedQuiz(t, repos, services, owner)

	result, err := services.Result.SubmitAttempt(quiz.QuizId, owner, attemptFor(t, repos, quiz.QuizId, pickCorrect))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ResultRightCount)
	assert.Equal(t, 2, result.ResultTotalCount)

	stored, err := repos.Quiz.GetQuizById(quiz.QuizId)
	require.NoError(t, err)
	require.NotNil(t, stored.LastPassedAt)
}

func TestSubmitAttemptOverwritesPreviousResult(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)
	quiz := seedQuiz(t, repos, services, owner)

	_, err := services.Result.SubmitAttempt(quiz.QuizId, owner, attemptFor(t, repos, quiz.QuizId, pickWrong))
	require.NoError(t, err)
	_, err = services.Result.SubmitAttempt(quiz.QuizId, owner, attemptFor(t, repos, quiz.QuizId, pickCorrect))
	require.NoError(t, err)

	results, err := repos.Result.ListResultsByUser(owner.UserId)
	require.NoError(t, err)
	require.Len(t, results, 1, "attempts upsert a single row, never append")
	assert.Equal(t, 2, results[0].ResultRightCount)
}

func TestSubmitAttemptRejectsQuestionSetMismatch(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)
	quiz := seedQuiz(t, repos, services, owner)

	partial := attemptFor(t, repos, quiz.QuizId, pickCorrect)
	partial.UserAnswers = partial.UserAnswers[:1]
	_, err := services.Result.SubmitAttempt(quiz.QuizId, owner, partial)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	unknown := attemptFor(t, repos, quiz.QuizId, pickCorrect)
	unknown.UserAnswers[0].QuestionId = "not-a-question"
	_, err = services.Result.SubmitAttempt(quiz.QuizId, owner, unknown)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	duplicated := attemptFor(t, repos, quiz.QuizId, pickCorrect)
	duplicated.UserAnswers[1].QuestionId = duplicated.UserAnswers[0].QuestionId
	_, err = services.Result.SubmitAttempt(quiz.QuizId, owner, duplicated)
	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))

	results, _ := repos.Result.ListResultsByUser(owner.UserId)
	assert.Empty(t, results, "rejected attempts must not score")
}

func TestSubmitAttemptMirrorsAnswersToCache(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)
	quiz := seedQuiz(t, repos, services, owner)

	_, err := services.Result.SubmitAttempt(quiz.QuizId, owner, attemptFor(t, repos, quiz.QuizId, pickCorrect))
	require.NoError(t, err)

	// the mirror is asynchronous
	assert.Eventually(t, func() bool {
		cached, err := repos.AnswerCache.ScanUserAnswers(context.Background(), owner.UserId)
		return err == nil && len(cached) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestAverageDegradesToZero(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	seedCompany(repos, "acme", owner.UserId)

	average, err := services.Result.AverageForCompany("acme", owner)
	require.NoError(t, err)
	assert.Zero(t, average)

	overall, err := services.Result.AverageOverall(owner)
	require.NoError(t, err)
	assert.Zero(t, overall)
}

func TestAnalyticsRequireOwnerOrAdmin(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	member := seedUser(repos, "member")
	seedCompany(repos, "acme", owner.UserId)
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: member.UserId, CompanyId: "acme", Role: model.RoleMember,
	}))

	_, err := services.Result.MemberAverageSeries("acme", member)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))

	_, err = services.Result.PassingDatesForCompany("acme", member)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))

	// promotion opens the analytics surfaces
	require.NoError(t, repos.Member.UpdateMemberRole(member.UserId, "acme", model.RoleAdmin))
	_, err = services.Result.MemberAverageSeries("acme", member)
	require.NoError(t, err)
}

func TestPassingDatesOmitMembersWithoutResults(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	active := seedUser(repos, "active")
	idle := seedUser(repos, "idle")
	seedCompany(repos, "acme", owner.UserId)
	for _, u := range []*model.User{active, idle} {
		require.NoError(t, repos.Member.AddMember(&model.Member{
			UserId: u.UserId, CompanyId: "acme", Role: model.RoleMember,
		}))
	}
	require.NoError(t, repos.Result.UpsertResult(&model.Result{
		UserId: active.UserId, CompanyId: "acme", QuizId: "q1",
		ResultRightCount: 1, ResultTotalCount: 2,
	}))

	dates, err := services.Result.PassingDatesForCompany("acme", owner)
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, active.UserId, dates[0].UserId)
}

func TestCachedAnswerExports(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "owner")
	member := seedUser(repos, "member")
	seedCompany(repos, "acme", owner.UserId)
	seedCompany(repos, "globex", owner.UserId)
	require.NoError(t, repos.Member.AddMember(&model.Member{
		UserId: member.UserId, CompanyId: "acme", Role: model.RoleMember,
	}))

	ctx := context.Background()
	put := func(companyId, quizId, questionId string) {
		require.NoError(t, repos.AnswerCache.PutAnswer(ctx, &model.CachedAnswer{
			UserId: member.UserId, CompanyId: companyId, QuizId: quizId,
			QuestionId: questionId, AnswerData: "Red", IsCorrect: 1,
		}, time.Hour))
	}
	put("acme", "q1", "question-a")
	put("acme", "q1", "question-b")
	put("globex", "q2", "question-c")

	mine, err := services.Result.CachedAnswersForUser(ctx, member)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	acme, err := services.Result.CachedAnswersForCompany(ctx, "acme", owner)
	require.NoError(t, err)
	assert.Len(t, acme, 2)

	// a plain member is not allowed to export the company's answers
	_, err = services.Result.CachedAnswersForCompany(ctx, "acme", member)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))
}

// End to end: owner invites a member, the member joins, takes a two-question
// quiz, gets one right, and the company average lands on 0.5.
func TestMembershipQuizScoringScenario(t *testing.T) {
	repos := newTestRepos()
	services := newTestServices(repos)
	owner := seedUser(repos, "u1")
	joiner := seedUser(repos, "u2")
	seedCompany(repos, "c1", owner.UserId)

	require.NoError(t, services.Action.HandleOwnerAction(&model.OwnerActionReq{
		UserId: joiner.UserId, CompanyId: "c1", Action: model.ActionSendInvitation,
	}, owner))
	require.NoError(t, services.Action.HandleUserAction(&model.UserActionReq{
		CompanyId: "c1", Action: model.ActionAcceptInvitation,
	}, joiner))

	quiz, err := services.Quiz.CreateQuiz(validQuizReq("c1", "onboarding"), owner)
	require.NoError(t, err)

	// answer the first question right, the second wrong
	questions, _ := repos.Question.ListQuestionsByQuiz(quiz.QuizId)
	req := &model.SubmitAttemptReq{}
	for i, q := range questions {
		answers, _ := repos.Answer.ListAnswersByQuestion(q.QuestionId)
		pick := pickCorrect
		if i == 1 {
			pick = pickWrong
		}
		req.UserAnswers = append(req.UserAnswers, model.UserAnswer{
			QuestionId: q.QuestionId, AnswerData: pick(q, answers),
		})
	}

	result, err := services.Result.SubmitAttempt(quiz.QuizId, joiner, req)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ResultRightCount)
	assert.Equal(t, 2, result.ResultTotalCount)

	average, err := services.Result.AverageForCompany("c1", joiner)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, average, 1e-9)
}
