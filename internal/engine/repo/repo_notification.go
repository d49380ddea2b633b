package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-quizhub/quizhub/internal/engine/model"
	"github.com/go-quizhub/quizhub/pkg/database"
)

type INotificationRepository interface {
	AddNotification(notification *model.Notification) error
	AddNotifications(notifications []model.Notification) error
	GetNotificationById(notificationId string) (*model.Notification, error)
	MarkRead(notificationId string) error
	ListByReceiver(receiverId string) ([]model.Notification, error)
	ListByReceiverAndStatus(receiverId, status string) ([]model.Notification, error)
}

type NotificationRepo struct {
	database.IDatabase
}

func NewNotificationRepo(db database.IDatabase) INotificationRepository {
	return &NotificationRepo{IDatabase: db}
}

func (r *NotificationRepo) AddNotification(notification *model.Notification) error {
	return r.Database().Create(notification).Error
}

func (r *NotificationRepo) AddNotifications(notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.Database().Create(&notifications).Error
}

func (r *NotificationRepo) GetNotificationById(notificationId string) (*model.Notification, error) {
	var notification model.Notification
	err := r.Database().Where("notification_id = ?", notificationId).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepo) MarkRead(notificationId string) error {
	return r.Database().Model(&model.Notification{}).
		Where("notification_id = ?", notificationId).
		Update("status", model.NotificationStatusRead).Error
}

func (r *NotificationRepo) ListByReceiver(receiverId string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.Database().Where("receiver_id = ?", receiverId).
		Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepo) ListByReceiverAndStatus(receiverId, status string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.Database().Where("receiver_id = ? AND status = ?", receiverId, status).
		Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}
