package event

const RegistrationCompletedDestination string = "registration_completed"
const RegistrationCompletedConsumerNotification string = "registration_completed_notification"

type RegistrationCompleted struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
