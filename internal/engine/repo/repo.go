package repo

import (
	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/pkg/cache"
	"github.com/go-quizhub/quizhub/pkg/database"
)

// Repositories bundles every repository behind one handle.
type Repositories struct {
	User         IUserRepository
	Company      ICompanyRepository
	Member       IMemberRepository
	Invitation   IInvitationRepository
	JoinRequest  IJoinRequestRepository
	Quiz         IQuizRepository
	Question     IQuestionRepository
	Answer       IAnswerRepository
	Result       IResultRepository
	Notification INotificationRepository
	AnswerCache  IAnswerCacheRepository

	db    database.IDatabase
	cache cache.ICache
}

// NewRepositories wires every repository against the given stores.
func NewRepositories(db database.IDatabase, c cache.ICache) *Repositories {
	return &Repositories{
		User:         NewUserRepo(db, c),
		Company:      NewCompanyRepo(db),
		Member:       NewMemberRepo(db),
		Invitation:   NewInvitationRepo(db),
		JoinRequest:  NewJoinRequestRepo(db),
		Quiz:         NewQuizRepo(db),
		Question:     NewQuestionRepo(db),
		Answer:       NewAnswerRepo(db),
		Result:       NewResultRepo(db),
		Notification: NewNotificationRepo(db),
		AnswerCache:  NewAnswerCacheRepo(c),
		db:           db,
		cache:        c,
	}
}

// Atomic runs fn against repositories bound to a single transaction. A second
// writer racing the same invariant check serializes on the row locks taken
// inside fn. When no database is attached (test doubles) fn runs directly.
func (r *Repositories) Atomic(fn func(tx *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Database().Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(database.NewGormDB(tx), r.cache))
	})
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
