package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-quizhub/quizhub/internal/engine/consts"
	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
)

// In-memory repository fakes. With no database attached, Repositories.Atomic
// runs the closure directly, so services can be exercised end to end.

func newTestRepos() *repo.Repositories {
	return &repo.Repositories{
		User:         &fakeUserRepo{},
		Company:      &fakeCompanyRepo{},
		Member:       &fakeMemberRepo{},
		Invitation:   &fakeInvitationRepo{},
		JoinRequest:  &fakeJoinRequestRepo{},
		Quiz:         &fakeQuizRepo{},
		Question:     &fakeQuestionRepo{},
		Answer:       &fakeAnswerRepo{},
		Result:       &fakeResultRepo{},
		Notification: &fakeNotificationRepo{},
		AnswerCache:  &fakeAnswerCacheRepo{entries: map[string]model.CachedAnswer{}},
	}
}

type fakeUserRepo struct {
	users []model.User
}

func (f *fakeUserRepo) AddUser(user *model.User) error {
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetUserById(userId string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].UserId == userId {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsernameOrEmail(username, email string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Username == username || (email != "" && f.users[i].Email == email) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateUser(userId string, fields map[string]interface{}) error {
	for i := range f.users {
		if f.users[i].UserId != userId {
			continue
		}
		if v, ok := fields["first_name"]; ok {
			f.users[i].FirstName = v.(string)
		}
		if v, ok := fields["last_name"]; ok {
			f.users[i].LastName = v.(string)
		}
		if v, ok := fields["password"]; ok {
			f.users[i].Password = v.(string)
		}
		if v, ok := fields["email"]; ok {
			f.users[i].Email = v.(string)
		}
		if v, ok := fields["phone"]; ok {
			f.users[i].Phone = v.(string)
		}
		if v, ok := fields["city"]; ok {
			f.users[i].City = v.(string)
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(userId string) error {
	kept := f.users[:0]
	for _, u := range f.users {
		if u.UserId != userId {
			kept = append(kept, u)
		}
	}
	f.users = kept
	return nil
}

func (f *fakeUserRepo) ListUsers(offset, pageSize int) ([]model.User, int64, error) {
	if offset >= len(f.users) {
		return nil, int64(len(f.users)), nil
	}
	end := offset + pageSize
	if end > len(f.users) {
		end = len(f.users)
	}
	return f.users[offset:end], int64(len(f.users)), nil
}

func (f *fakeUserRepo) SetToken(string, *model.TokenInfo, time.Duration) error { return nil }
func (f *fakeUserRepo) DelToken(string) error                                 { return nil }

type fakeCompanyRepo struct {
	companies []model.Company
}

func (f *fakeCompanyRepo) AddCompany(company *model.Company) error {
	f.companies = append(f.companies, *company)
	return nil
}

func (f *fakeCompanyRepo) GetCompanyById(companyId string) (*model.Company, error) {
	for i := range f.companies {
		if f.companies[i].CompanyId == companyId {
			c := f.companies[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCompanyRepo) UpdateCompany(companyId string, fields map[string]interface{}) error {
	for i := range f.companies {
		if f.companies[i].CompanyId != companyId {
			continue
		}
		if v, ok := fields["name"]; ok {
			f.companies[i].Name = v.(string)
		}
		if v, ok := fields["description"]; ok {
			f.companies[i].Description = v.(string)
		}
		if v, ok := fields["is_visible"]; ok {
			f.companies[i].IsVisible = v.(int)
		}
	}
	return nil
}

func (f *fakeCompanyRepo) DeleteCompany(companyId string) error {
	kept := f.companies[:0]
	for _, c := range f.companies {
		if c.CompanyId != companyId {
			kept = append(kept, c)
		}
	}
	f.companies = kept
	return nil
}

func (f *fakeCompanyRepo) ListVisibleCompanies() ([]model.Company, error) {
	var visible []model.Company
	for _, c := range f.companies {
		if c.IsVisible == 1 {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (f *fakeCompanyRepo) ListCompaniesByOwner(ownerUserId string) ([]model.Company, error) {
	var owned []model.Company
	for _, c := range f.companies {
		if c.OwnerUserId == ownerUserId {
			owned = append(owned, c)
		}
	}
	return owned, nil
}

type fakeMemberRepo struct {
	members []model.Member
}

func (f *fakeMemberRepo) GetMember(userId, companyId string) (*model.Member, error) {
	for i := range f.members {
		if f.members[i].UserId == userId && f.members[i].CompanyId == companyId {
			m := f.members[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeMemberRepo) GetMemberForUpdate(userId, companyId string) (*model.Member, error) {
	return f.GetMember(userId, companyId)
}

func (f *fakeMemberRepo) ListCompanyMembers(companyId string) ([]model.Member, error) {
	var members []model.Member
	for _, m := range f.members {
		if m.CompanyId == companyId {
			members = append(members, m)
		}
	}
	return members, nil
}

func (f *fakeMemberRepo) ListUserMemberships(userId string) ([]model.Member, error) {
	var members []model.Member
	for _, m := range f.members {
		if m.UserId == userId {
			members = append(members, m)
		}
	}
	return members, nil
}

func (f *fakeMemberRepo) AddMember(member *model.Member) error {
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeMemberRepo) UpdateMemberRole(userId, companyId, role string) error {
	for i := range f.members {
		if f.members[i].UserId == userId && f.members[i].CompanyId == companyId {
			f.members[i].Role = role
		}
	}
	return nil
}

func (f *fakeMemberRepo) RemoveMember(userId, companyId string) error {
	kept := f.members[:0]
	for _, m := range f.members {
		if !(m.UserId == userId && m.CompanyId == companyId) {
			kept = append(kept, m)
		}
	}
	f.members = kept
	return nil
}

type fakeInvitationRepo struct {
	nextId      uint64
	invitations []model.Invitation
}

func (f *fakeInvitationRepo) AddInvitation(invitation *model.Invitation) error {
	f.nextId++
	invitation.ID = f.nextId
	f.invitations = append(f.invitations, *invitation)
	return nil
}

func (f *fakeInvitationRepo) GetPendingInvitation(userId, companyId string) (*model.Invitation, error) {
	for i := range f.invitations {
		inv := f.invitations[i]
		if inv.UserId == userId && inv.CompanyId == companyId && inv.IsAccepted == nil {
			return &inv, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) GetPendingInvitationForUpdate(userId, companyId string) (*model.Invitation, error) {
	return f.GetPendingInvitation(userId, companyId)
}

func (f *fakeInvitationRepo) ResolveInvitation(id uint64, accepted bool) error {
	for i := range f.invitations {
		if f.invitations[i].ID == id && f.invitations[i].IsAccepted == nil {
			v := accepted
			f.invitations[i].IsAccepted = &v
		}
	}
	return nil
}

func (f *fakeInvitationRepo) DeleteInvitation(id uint64) error {
	kept := f.invitations[:0]
	for _, inv := range f.invitations {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	f.invitations = kept
	return nil
}

func (f *fakeInvitationRepo) ListPendingByUser(userId string) ([]model.Invitation, error) {
	var pending []model.Invitation
	for _, inv := range f.invitations {
		if inv.UserId == userId && inv.IsAccepted == nil {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}

func (f *fakeInvitationRepo) ListPendingByCompany(companyId string) ([]model.Invitation, error) {
	var pending []model.Invitation
	for _, inv := range f.invitations {
		if inv.CompanyId == companyId && inv.IsAccepted == nil {
			pending = append(pending, inv)
		}
	}
	return pending, nil
}

type fakeJoinRequestRepo struct {
	nextId   uint64
	requests []model.JoinRequest
}

func (f *fakeJoinRequestRepo) AddJoinRequest(request *model.JoinRequest) error {
	f.nextId++
	request.ID = f.nextId
	f.requests = append(f.requests, *request)
	return nil
}

func (f *fakeJoinRequestRepo) GetPendingJoinRequest(senderId, companyId string) (*model.JoinRequest, error) {
	for i := range f.requests {
		r := f.requests[i]
		if r.SenderId == senderId && r.CompanyId == companyId && r.IsAccepted == nil {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeJoinRequestRepo) GetPendingJoinRequestForUpdate(senderId, companyId string) (*model.JoinRequest, error) {
	return f.GetPendingJoinRequest(senderId, companyId)
}

func (f *fakeJoinRequestRepo) ResolveJoinRequest(id uint64, accepted bool) error {
	for i := range f.requests {
		if f.requests[i].ID == id && f.requests[i].IsAccepted == nil {
			v := accepted
			f.requests[i].IsAccepted = &v
		}
	}
	return nil
}

func (f *fakeJoinRequestRepo) DeleteJoinRequest(id uint64) error {
	kept := f.requests[:0]
	for _, r := range f.requests {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.requests = kept
	return nil
}

func (f *fakeJoinRequestRepo) ListPendingBySender(senderId string) ([]model.JoinRequest, error) {
	var pending []model.JoinRequest
	for _, r := range f.requests {
		if r.SenderId == senderId && r.IsAccepted == nil {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

func (f *fakeJoinRequestRepo) ListPendingByCompany(companyId string) ([]model.JoinRequest, error) {
	var pending []model.JoinRequest
	for _, r := range f.requests {
		if r.CompanyId == companyId && r.IsAccepted == nil {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

type fakeQuizRepo struct {
	quizzes []model.Quiz
}

func (f *fakeQuizRepo) AddQuiz(quiz *model.Quiz) error {
	f.quizzes = append(f.quizzes, *quiz)
	return nil
}

func (f *fakeQuizRepo) GetQuizById(quizId string) (*model.Quiz, error) {
	for i := range f.quizzes {
		if f.quizzes[i].QuizId == quizId {
			q := f.quizzes[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuizRepo) GetQuizByName(companyId, quizName string) (*model.Quiz, error) {
	for i := range f.quizzes {
		if f.quizzes[i].CompanyId == companyId && f.quizzes[i].QuizName == quizName {
			q := f.quizzes[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuizRepo) UpdateQuiz(quizId string, fields map[string]interface{}) error {
	for i := range f.quizzes {
		if f.quizzes[i].QuizId != quizId {
			continue
		}
		if v, ok := fields["quiz_title"]; ok {
			f.quizzes[i].QuizTitle = v.(string)
		}
		if v, ok := fields["description"]; ok {
			f.quizzes[i].Description = v.(string)
		}
		if v, ok := fields["quiz_frequency"]; ok {
			f.quizzes[i].QuizFrequency = v.(int)
		}
		if v, ok := fields["updated_by"]; ok {
			f.quizzes[i].UpdatedBy = v.(string)
		}
	}
	return nil
}

func (f *fakeQuizRepo) SetLastPassedAt(quizId string, at time.Time) error {
	for i := range f.quizzes {
		if f.quizzes[i].QuizId == quizId {
			t := at
			f.quizzes[i].LastPassedAt = &t
		}
	}
	return nil
}

func (f *fakeQuizRepo) DeleteQuiz(quizId string) error {
	kept := f.quizzes[:0]
	for _, q := range f.quizzes {
		if q.QuizId != quizId {
			kept = append(kept, q)
		}
	}
	f.quizzes = kept
	return nil
}

func (f *fakeQuizRepo) ListQuizzesByCompany(companyId string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	for _, q := range f.quizzes {
		if q.CompanyId == companyId {
			quizzes = append(quizzes, q)
		}
	}
	return quizzes, nil
}

func (f *fakeQuizRepo) ListAllQuizzes() ([]model.Quiz, error) {
	return append([]model.Quiz(nil), f.quizzes...), nil
}

type fakeQuestionRepo struct {
	questions []model.Question
}

func (f *fakeQuestionRepo) AddQuestion(question *model.Question) error {
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) GetQuestionById(questionId string) (*model.Question, error) {
	for i := range f.questions {
		if f.questions[i].QuestionId == questionId {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, nil
}

func (f *fakeQuestionRepo) UpdateQuestion(questionId string, fields map[string]interface{}) error {
	for i := range f.questions {
		if f.questions[i].QuestionId != questionId {
			continue
		}
		if v, ok := fields["question_text"]; ok {
			f.questions[i].QuestionText = v.(string)
		}
	}
	return nil
}

func (f *fakeQuestionRepo) DeleteQuestion(questionId string) error {
	kept := f.questions[:0]
	for _, q := range f.questions {
		if q.QuestionId != questionId {
			kept = append(kept, q)
		}
	}
	f.questions = kept
	return nil
}

func (f *fakeQuestionRepo) DeleteQuestionsByQuiz(quizId string) error {
	kept := f.questions[:0]
	for _, q := range f.questions {
		if q.QuizId != quizId {
			kept = append(kept, q)
		}
	}
	f.questions = kept
	return nil
}

func (f *fakeQuestionRepo) ListQuestionsByQuiz(quizId string) ([]model.Question, error) {
	var questions []model.Question
	for _, q := range f.questions {
		if q.QuizId == quizId {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (f *fakeQuestionRepo) CountQuestionsByQuiz(quizId string) (int64, error) {
	questions, _ := f.ListQuestionsByQuiz(quizId)
	return int64(len(questions)), nil
}

type fakeAnswerRepo struct {
	answers []model.Answer
}

func (f *fakeAnswerRepo) AddAnswer(answer *model.Answer) error {
	f.answers = append(f.answers, *answer)
	return nil
}

func (f *fakeAnswerRepo) GetAnswerById(answerId string) (*model.Answer, error) {
	for i := range f.answers {
		if f.answers[i].AnswerId == answerId {
			a := f.answers[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAnswerRepo) UpdateAnswer(answerId string, fields map[string]interface{}) error {
	for i := range f.answers {
		if f.answers[i].AnswerId != answerId {
			continue
		}
		if v, ok := fields["answer_data"]; ok {
			f.answers[i].AnswerData = v.(string)
		}
		if v, ok := fields["is_correct"]; ok {
			f.answers[i].IsCorrect = v.(bool)
		}
	}
	return nil
}

func (f *fakeAnswerRepo) DeleteAnswer(answerId string) error {
	kept := f.answers[:0]
	for _, a := range f.answers {
		if a.AnswerId != answerId {
			kept = append(kept, a)
		}
	}
	f.answers = kept
	return nil
}

func (f *fakeAnswerRepo) DeleteAnswersByQuestion(questionId string) error {
	kept := f.answers[:0]
	for _, a := range f.answers {
		if a.QuestionId != questionId {
			kept = append(kept, a)
		}
	}
	f.answers = kept
	return nil
}

func (f *fakeAnswerRepo) ListAnswersByQuestion(questionId string) ([]model.Answer, error) {
	var answers []model.Answer
	for _, a := range f.answers {
		if a.QuestionId == questionId {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

func (f *fakeAnswerRepo) ListAnswersByQuestions(questionIds []string) ([]model.Answer, error) {
	wanted := map[string]bool{}
	for _, id := range questionIds {
		wanted[id] = true
	}
	var answers []model.Answer
	for _, a := range f.answers {
		if wanted[a.QuestionId] {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

func (f *fakeAnswerRepo) CountAnswersByQuestion(questionId string) (int64, error) {
	answers, _ := f.ListAnswersByQuestion(questionId)
	return int64(len(answers)), nil
}

type fakeResultRepo struct {
	results []model.Result
}

func (f *fakeResultRepo) UpsertResult(result *model.Result) error {
	for i := range f.results {
		r := &f.results[i]
		if r.UserId == result.UserId && r.CompanyId == result.CompanyId && r.QuizId == result.QuizId {
			r.ResultRightCount = result.ResultRightCount
			r.ResultTotalCount = result.ResultTotalCount
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	result.CreatedAt = time.Now()
	result.UpdatedAt = result.CreatedAt
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultRepo) GetResult(userId, companyId, quizId string) (*model.Result, error) {
	for i := range f.results {
		r := f.results[i]
		if r.UserId == userId && r.CompanyId == companyId && r.QuizId == quizId {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeResultRepo) ListResultsByUser(userId string) ([]model.Result, error) {
	var results []model.Result
	for _, r := range f.results {
		if r.UserId == userId {
			results = append(results, r)
		}
	}
	return results, nil
}

func (f *fakeResultRepo) ListResultsByUserAndCompany(userId, companyId string) ([]model.Result, error) {
	var results []model.Result
	for _, r := range f.results {
		if r.UserId == userId && r.CompanyId == companyId {
			results = append(results, r)
		}
	}
	return results, nil
}

func (f *fakeResultRepo) ListResultsByCompany(companyId string) ([]model.Result, error) {
	var results []model.Result
	for _, r := range f.results {
		if r.CompanyId == companyId {
			results = append(results, r)
		}
	}
	return results, nil
}

func (f *fakeResultRepo) ListResultsByQuiz(quizId string) ([]model.Result, error) {
	var results []model.Result
	for _, r := range f.results {
		if r.QuizId == quizId {
			results = append(results, r)
		}
	}
	return results, nil
}

func (f *fakeResultRepo) ListAllResults() ([]model.Result, error) {
	return append([]model.Result(nil), f.results...), nil
}

func (f *fakeResultRepo) DeleteResultsByQuiz(quizId string) error {
	kept := f.results[:0]
	for _, r := range f.results {
		if r.QuizId != quizId {
			kept = append(kept, r)
		}
	}
	f.results = kept
	return nil
}

func (f *fakeResultRepo) DeleteResultsByMember(userId, companyId string) error {
	kept := f.results[:0]
	for _, r := range f.results {
		if !(r.UserId == userId && r.CompanyId == companyId) {
			kept = append(kept, r)
		}
	}
	f.results = kept
	return nil
}

type fakeNotificationRepo struct {
	notifications []model.Notification
}

func (f *fakeNotificationRepo) AddNotification(notification *model.Notification) error {
	f.notifications = append(f.notifications, *notification)
	return nil
}

func (f *fakeNotificationRepo) AddNotifications(notifications []model.Notification) error {
	f.notifications = append(f.notifications, notifications...)
	return nil
}

func (f *fakeNotificationRepo) GetNotificationById(notificationId string) (*model.Notification, error) {
	for i := range f.notifications {
		if f.notifications[i].NotificationId == notificationId {
			n := f.notifications[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(notificationId string) error {
	for i := range f.notifications {
		if f.notifications[i].NotificationId == notificationId {
			f.notifications[i].Status = model.NotificationStatusRead
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ListByReceiver(receiverId string) ([]model.Notification, error) {
	var list []model.Notification
	for _, n := range f.notifications {
		if n.ReceiverId == receiverId {
			list = append(list, n)
		}
	}
	return list, nil
}

func (f *fakeNotificationRepo) ListByReceiverAndStatus(receiverId, status string) ([]model.Notification, error) {
	var list []model.Notification
	for _, n := range f.notifications {
		if n.ReceiverId == receiverId && n.Status == status {
			list = append(list, n)
		}
	}
	return list, nil
}

// fakeAnswerCacheRepo is safe for concurrent use because the attempt mirror
// runs on its own goroutine.
type fakeAnswerCacheRepo struct {
	mu      sync.Mutex
	entries map[string]model.CachedAnswer
}

func (f *fakeAnswerCacheRepo) PutAnswer(_ context.Context, answer *model.CachedAnswer, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := consts.AnswerCacheKey(answer.UserId, answer.CompanyId, answer.QuizId, answer.QuestionId)
	f.entries[key] = *answer
	return nil
}

func (f *fakeAnswerCacheRepo) GetAnswer(_ context.Context, userId, companyId, quizId, questionId string) (*model.CachedAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := consts.AnswerCacheKey(userId, companyId, quizId, questionId)
	if a, ok := f.entries[key]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeAnswerCacheRepo) ScanUserAnswers(ctx context.Context, userId string) ([]model.CachedAnswer, error) {
	return f.ScanPrefix(ctx, consts.AnswerUserPrefix(userId))
}

func (f *fakeAnswerCacheRepo) ScanPrefix(_ context.Context, prefix string) ([]model.CachedAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var answers []model.CachedAnswer
	for key, a := range f.entries {
		if strings.HasPrefix(key, prefix) {
			answers = append(answers, a)
		}
	}
	return answers, nil
}
