package middleware

import (
	"net/http"

	"healthlink/internal/domain/entity"
	"healthlink/pkg/response"
)

// RequireRole checks that the authenticated user's role is one of the
// allowed roles. Role is read from context, set by AuthMiddleware.
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			for _, allowed := range allowedRoleIDs {
				if roleID == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You don't have permission to access this resource")
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin)(next)
}

// RequirePractitioner is a convenience middleware for practitioner-only endpoints
func RequirePractitioner(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPractitioner)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}

// RequireAdminOrPractitioner is a convenience middleware for staff endpoints
func RequireAdminOrPractitioner(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDAdmin, entity.RoleIDPractitioner)(next)
}
