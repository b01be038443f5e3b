package user

import "errors"

var (
	ErrInvalidToken         = errors.New("invalid or missing access token")
	ErrApproverRoleRequired = errors.New("admin or HR role required")
	ErrForbidden            = errors.New("access denied")
)
