package service

import (
	"time"

	"github.com/go-quizhub/quizhub/internal/engine/repo"
	httpx "github.com/go-quizhub/quizhub/pkg/http"
)

// Services bundles every service behind one handle.
type Services struct {
	Permission   *PermissionService
	User         *UserService
	Company      *CompanyService
	Action       *ActionService
	Quiz         *QuizService
	Result       *ResultService
	Notification *NotificationService
}

// NewServices wires every service against the repositories.
func NewServices(repos *repo.Repositories, auth httpx.Auth, answerTTL time.Duration) *Services {
	permissionService := NewPermissionService(repos.Member)

	return &Services{
		Permission:   permissionService,
		User:         NewUserService(repos.User, permissionService, auth),
		Company:      NewCompanyService(repos.Company, repos.Member, permissionService),
		Action:       NewActionService(repos, permissionService),
		Quiz:         NewQuizService(repos, permissionService),
		Result:       NewResultService(repos, permissionService, answerTTL),
		Notification: NewNotificationService(repos),
	}
}
