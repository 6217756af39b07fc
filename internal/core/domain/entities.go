package domain

// Role represents a user role in the system
type Role string

const (
	RoleUser    Role = "user"
	RoleOfficer Role = "officer"
)

// RoleFromDirectory maps the directory's raw role field onto a system role.
// The directory marks elevated accounts as "admin"; everyone else is a
// regular user.
func RoleFromDirectory(raw string) Role {
	if raw == "admin" {
		return RoleOfficer
	}
	return RoleUser
}

// UserRecord represents a user sourced from the external directory.
// Immutable after fetch except through re-fetch.
type UserRecord struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`
	Role      Role   `json:"role"`
}

// DisplayName returns the name used for reviewer attribution.
func (u *UserRecord) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Session holds the authentication state for one user.
// Invariant: IsAuthenticated == (User != nil). A token may be present
// without a resolved user only while hydration is in flight.
type Session struct {
	Token           string      `json:"-"`
	User            *UserRecord `json:"user"`
	IsAuthenticated bool        `json:"is_authenticated"`
	IsLoading       bool        `json:"is_loading"`
}

// NewSession builds a session, enforcing the authenticated/user invariant.
func NewSession(token string, user *UserRecord) Session {
	return Session{
		Token:           token,
		User:            user,
		IsAuthenticated: user != nil,
	}
}

// AnonymousSession returns the logged-out session.
func AnonymousSession() Session {
	return Session{}
}

// Role returns the session user's role, or the empty role when anonymous.
func (s Session) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// IsOfficer reports whether the session belongs to an officer.
func (s Session) IsOfficer() bool {
	return s.Role() == RoleOfficer
}

// ReviewStatus represents a review verdict
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// IsValid reports whether the status is one of the known verdicts.
func (s ReviewStatus) IsValid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// ReviewRecord is one ledger entry keyed by subject user id.
type ReviewRecord struct {
	Status     ReviewStatus `json:"status"`
	ReviewedAt string       `json:"reviewed_at,omitempty"`
	ReviewedBy string       `json:"reviewed_by,omitempty"`
}

// PendingReview is the implicit record for subjects never reviewed.
func PendingReview() ReviewRecord {
	return ReviewRecord{Status: ReviewPending}
}
