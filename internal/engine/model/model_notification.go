package model

type Notification struct {
	BaseModel
	NotificationId   string `gorm:"column:notification_id;uniqueIndex" json:"notificationId"`
	ReceiverId       string `gorm:"column:receiver_id;index" json:"receiverId"`
	Status           string `gorm:"column:status;index" json:"status"`
	NotificationData string `gorm:"column:notification_data" json:"notificationData"`
}

func (Notification) TableName() string {
	return "t_notification"
}

// Notification statuses
const (
	NotificationStatusSent = "Sent"
	NotificationStatusRead = "Read"
)
