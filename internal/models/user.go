package models

import "time"

type UserRole string

const (
	UserRoleAdmin           UserRole = "admin"
	UserRoleCampaignManager UserRole = "campaign_manager"
	UserRoleClient          UserRole = "client"
	UserRoleViewer          UserRole = "viewer"
)

func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleAdmin, UserRoleCampaignManager, UserRoleClient, UserRoleViewer:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
