package domain

import "time"

type UserRole string

const (
	UserRoleAdmin     UserRole = "admin"
	UserRoleManager   UserRole = "manager"
	UserRoleCollector UserRole = "collector"
)

// User is a back-office operator. Collector-role users are linked to their
// collector record and only see their own reports.
type User struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CollectorID  *int32    `json:"collector_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
