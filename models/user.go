package models

import "time"

// User roles.
const (
	RoleAttorney = "attorney"
	RoleAdmin    = "admin"
	RoleJuror    = "juror"
)

// User is the minimal account record this service needs: role gating for
// the middleware and an FCM token for the notification gateway. Account
// creation and authentication live elsewhere.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
