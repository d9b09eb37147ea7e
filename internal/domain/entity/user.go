package entity

import "time"

type User struct {
	UID       string    `json:"uid" firestore:"uid"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	City      string    `json:"city" firestore:"city"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
