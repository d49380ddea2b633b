package service

import (
	"time"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/internal/engine/repo"
	"github.com/go-quizhub/quizhub/pkg/errs"
	"github.com/go-quizhub/quizhub/pkg/id"
	"github.com/go-quizhub/quizhub/pkg/log"
)

type NotificationService struct {
	repos *repo.Repositories
}

func NewNotificationService(repos *repo.Repositories) *NotificationService {
	return &NotificationService{repos: repos}
}

// DueQuiz marks one member as due to retake one quiz.
type DueQuiz struct {
	UserId   string
	QuizId   string
	QuizName string
}

// ComputeDueQuizzes decides who is due to retake what. A member is due when
// they never attempted the quiz, or when the days elapsed since their last
// attempt reach the quiz frequency. Quizzes with frequency 0 never come due.
func ComputeDueQuizzes(members []model.Member, quizzes []model.Quiz, results []model.Result, now time.Time) []DueQuiz {
	lastAttempt := make(map[string]time.Time, len(results))
	for _, r := range results {
		lastAttempt[r.UserId+":"+r.QuizId] = r.UpdatedAt
	}

	var due []DueQuiz
	for _, quiz := range quizzes {
		if quiz.QuizFrequency <= 0 {
			continue
		}
		for _, m := range members {
			if m.CompanyId != quiz.CompanyId {
				continue
			}
			at, attempted := lastAttempt[m.UserId+":"+quiz.QuizId]
			if attempted {
				elapsedDays := int(now.Sub(at).Hours() / 24)
				if elapsedDays < quiz.QuizFrequency {
					continue
				}
			}
			due = append(due, DueQuiz{UserId: m.UserId, QuizId: quiz.QuizId, QuizName: quiz.QuizName})
		}
	}
	return due
}

// RunDueScan is the cron entry. It loads the whole membership/quiz/result
// graph, computes who is due and emits one Sent notification per due pair,
// skipping pairs that already carry an unread reminder.
func (s *NotificationService) RunDueScan(now time.Time) error {
	quizzes, err := s.repos.Quiz.ListAllQuizzes()
	if err != nil {
		return errs.Wrap(err, "list quizzes failed")
	}

	companyIds := map[string]bool{}
	for _, q := range quizzes {
		companyIds[q.CompanyId] = true
	}
	var members []model.Member
	for companyId := range companyIds {
		companyMembers, err := s.repos.Member.ListCompanyMembers(companyId)
		if err != nil {
			return errs.Wrap(err, "list members failed")
		}
		members = append(members, companyMembers...)
	}

	results, err := s.repos.Result.ListAllResults()
	if err != nil {
		return errs.Wrap(err, "list results failed")
	}

	due := ComputeDueQuizzes(members, quizzes, results, now)
	emitted := 0
	for _, d := range due {
		data := dueNotificationData(d.QuizName)
		unread, err := s.repos.Notification.ListByReceiverAndStatus(d.UserId, model.NotificationStatusSent)
		if err != nil {
			return errs.Wrap(err, "list notifications failed")
		}
		duplicate := false
		for _, n := range unread {
			if n.NotificationData == data {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		err = s.repos.Notification.AddNotification(&model.Notification{
			NotificationId:   id.GetUUID(),
			ReceiverId:       d.UserId,
			Status:           model.NotificationStatusSent,
			NotificationData: data,
		})
		if err != nil {
			return errs.Wrap(err, "create notification failed")
		}
		emitted++
	}

	log.Infow("due scan finished", "due", len(due), "emitted", emitted)
	return nil
}

func dueNotificationData(quizName string) string {
	return "It is time to retake the quiz \"" + quizName + "\""
}

// ReadNotification marks a notification read; only its receiver may do so.
func (s *NotificationService) ReadNotification(notificationId string, actor *model.User) error {
	notification, err := s.repos.Notification.GetNotificationById(notificationId)
	if err != nil {
		return errs.Wrap(err, "load notification failed")
	}
	if notification == nil {
		return errs.NotFound("notification not found")
	}
	if notification.ReceiverId != actor.UserId {
		return errs.Forbidden("not the receiver of this notification")
	}
	return s.repos.Notification.MarkRead(notificationId)
}

// ListMyNotifications returns the actor's unread notifications.
func (s *NotificationService) ListMyNotifications(actor *model.User) ([]model.Notification, error) {
	return s.repos.Notification.ListByReceiverAndStatus(actor.UserId, model.NotificationStatusSent)
}

// ListAllMyNotifications returns every notification of the actor.
func (s *NotificationService) ListAllMyNotifications(actor *model.User) ([]model.Notification, error) {
	return s.repos.Notification.ListByReceiver(actor.UserId)
}
