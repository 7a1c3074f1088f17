package models

// UserRole represents the available roles for the RBAC system. Accounts are
// managed by the external identity service; this API only consumes the role
// carried in the access token.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleExaminer   UserRole = "EXAMINER"
	RoleCoach      UserRole = "COACH"
	RoleViewer     UserRole = "VIEWER"
)

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
