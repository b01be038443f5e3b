package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/worklane/timekeep-backend-go/internal/domain/user"
	"github.com/worklane/timekeep-backend-go/internal/handler/http/response"
)

// RequireApprover requires admin or HR role. Approvals and company-wide
// listings sit behind this gate; the policy itself is decided by the
// identity collaborator that minted the token.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		if !user.Role(roleStr).CanActForOthers() {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
