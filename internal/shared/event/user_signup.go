package event

const UserSignupDestination string = "user_signup"
const UserSignupConsumerNotification string = "user_signup_notification"

type UserSignup struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
