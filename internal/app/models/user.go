package models

import "time"

// User is keyed by the external identity subject
type User struct {
	ID              string    `json:"id" example:"jane@lab.edu"`
	Email           *string   `json:"email" example:"jane@lab.edu"`
	FirstName       *string   `json:"firstName" example:"Jane"`
	LastName        *string   `json:"lastName" example:"Doe"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	Role            Role      `json:"role" example:"student"`
	IsActive        bool      `json:"isActive" example:"true"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserSummary is the hydrated requester shown on joined reads
type UserSummary struct {
	ID        string  `json:"id"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}
