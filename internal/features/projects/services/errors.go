package projects_services

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("access denied")
	ErrDuplicateMembership = errors.New("a membership for this user and project already exists")
	ErrInvalidTransition   = errors.New("membership is already active")
	ErrLeadSuccession      = errors.New("cannot remove the only active lead, assign another lead first")
)
