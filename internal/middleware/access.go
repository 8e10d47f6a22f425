package middleware

import (
	"net/http"
	"net/url"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/jwt"
	"brandlink/internal/pkg/metrics"
	"brandlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Policy is the access requirement of one route.
type Policy struct {
	Public          bool
	Roles           []domain.UserRole // empty: any authenticated user
	Page            bool              // redirect instead of JSON errors
	RequireApproved bool              // influencer sessions must be APPROVED
}

func Public() Policy { return Policy{Public: true} }

func Authenticated() Policy { return Policy{} }

func Roles(roles ...domain.UserRole) Policy { return Policy{Roles: roles} }

func (p Policy) AsPage() Policy {
	p.Page = true
	return p
}

func (p Policy) Approved() Policy {
	p.RequireApproved = true
	return p
}

func (p Policy) allows(role string) bool {
	if len(p.Roles) == 0 {
		return true
	}
	for _, r := range p.Roles {
		if string(r) == role {
			return true
		}
	}
	return false
}

type Decision int

const (
	Allow Decision = iota
	NeedLogin
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case NeedLogin:
		return "need_login"
	default:
		return "forbidden"
	}
}

// Decide is a pure function of the session and the route policy.
func Decide(sess *jwt.Session, p Policy) Decision {
	if p.Public {
		return Allow
	}
	if sess == nil {
		return NeedLogin
	}
	if !p.allows(sess.Role) {
		return Forbidden
	}
	return Allow
}

// AccessTable maps "METHOD /route/:pattern" to its policy.
type AccessTable map[string]Policy

func RouteKey(method, fullPath string) string {
	return method + " " + fullPath
}

func (t AccessTable) Lookup(method, fullPath string) Policy {
	if p, ok := t[RouteKey(method, fullPath)]; ok {
		return p
	}
	return Public()
}

// Gate applies the access table to every request and, for routes that need
// it, the influencer approval gate. Nothing is cached between requests.
func Gate(table AccessTable, approvals ApprovalLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		policy := table.Lookup(c.Request.Method, c.FullPath())
		sess := CurrentSession(c)

		decision := Decide(sess, policy)
		if decision != Allow {
			metrics.AccessDenials.WithLabelValues(decision.String()).Inc()
		}
		switch decision {
		case NeedLogin:
			if policy.Page {
				c.Redirect(http.StatusFound, LoginPath+"?callbackUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
				c.Abort()
				return
			}
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		case Forbidden:
			if policy.Page {
				c.Redirect(http.StatusFound, UnauthorizedPath)
				c.Abort()
				return
			}
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}

		if policy.RequireApproved && sess != nil && sess.Role == string(domain.RoleInfluencer) {
			if !approvalGate(c, approvals, sess.UserID, policy.Page) {
				return
			}
		}

		c.Next()
	}
}
