// Package guard holds the pure access-control decisions. Guards never
// touch I/O and never panic: a missing user always resolves to a redirect.
package guard

import (
	"fmt"

	"simplekyc/internal/core/domain"
)

// Client-side route table. Decisions carry these as redirect targets so
// the UI can navigate without re-deriving policy.
const (
	RouteLogin     = "/auth/login"
	RouteHome      = "/pages/home"
	RouteReview    = "/pages/review"
	RouteForbidden = "/pages/403"
)

// PersonalInfoRoute returns the personal-information route for a subject.
func PersonalInfoRoute(subjectID int) string {
	return fmt.Sprintf("/pages/user/%d/personal-information", subjectID)
}

// KYCRoute returns the KYC form route for a subject.
func KYCRoute(subjectID int) string {
	return fmt.Sprintf("/pages/user/%d/kyc", subjectID)
}

// Decision is the outcome of one guard evaluation: either render the
// requested resource, or navigate to RedirectTo.
type Decision struct {
	Allow      bool   `json:"allow"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(target string) Decision {
	return Decision{RedirectTo: target}
}

// RequireAuthenticated passes any authenticated session and sends
// everyone else to the login page.
func RequireAuthenticated(s domain.Session) Decision {
	if !s.IsAuthenticated || s.User == nil {
		return redirect(RouteLogin)
	}
	return allow()
}

// RequireRole passes authenticated sessions holding the required role.
// Unauthenticated callers go to login; authenticated callers with the
// wrong role go to the forbidden page.
func RequireRole(s domain.Session, role domain.Role) Decision {
	if d := RequireAuthenticated(s); !d.Allow {
		return d
	}
	if s.User.Role != role {
		return redirect(RouteForbidden)
	}
	return allow()
}

// RequireOwnProfile restricts subject-scoped resources to their owner.
// The restriction applies only to the user role: officers bypass the
// check entirely. A non-owner user is sent to their own profile.
func RequireOwnProfile(s domain.Session, subjectID int) Decision {
	if d := RequireAuthenticated(s); !d.Allow {
		return d
	}
	if s.User.Role == domain.RoleUser && subjectID != s.User.ID {
		return redirect(PersonalInfoRoute(s.User.ID))
	}
	return allow()
}

// DefaultLanding computes the post-login landing route by role:
// officers land on the review queue, users on their own
// personal-information page.
func DefaultLanding(s domain.Session) string {
	if s.User == nil {
		return RouteLogin
	}
	if s.User.Role == domain.RoleOfficer {
		return RouteReview
	}
	return PersonalInfoRoute(s.User.ID)
}
