package projects_policy

import (
	users_models "clubhub/internal/features/users/models"
)

// Action names an operation on a resource type.
type Action string

const (
	ActionCreate     Action = "create"
	ActionRead       Action = "read"
	ActionList       Action = "list"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionApprove    Action = "approve"
	ActionChangeRole Action = "change_role"
	ActionRemove     Action = "remove"
)

// ResourceType partitions the dispatch table.
type ResourceType string

const (
	ResourceProject    ResourceType = "project"
	ResourceMembership ResourceType = "membership"
)

type ruleKey struct {
	Resource ResourceType
	Action   Action
}

// rule decides for one (resource, action) pair. target is the entity under
// consideration, nil for collection-level actions.
type rule func(actor *users_models.User, target any) bool

func denyAll(actor *users_models.User, target any) bool {
	return false
}

// rules is the complete dispatch table. Every pair maps to deny: the policy
// layer is a hard gate, and the only path past it is the admin-allowlist
// middleware, which is a separate coarser layer. A relaxation (say, leads
// approving their own project's memberships) must be added here as a new
// explicit entry, never inferred from roles elsewhere.
var rules = map[ruleKey]rule{
	{ResourceProject, ActionCreate}: denyAll,
	{ResourceProject, ActionRead}:   denyAll,
	{ResourceProject, ActionList}:   denyAll,
	{ResourceProject, ActionUpdate}: denyAll,
	{ResourceProject, ActionDelete}: denyAll,

	{ResourceMembership, ActionCreate}:     denyAll,
	{ResourceMembership, ActionRead}:       denyAll,
	{ResourceMembership, ActionList}:       denyAll,
	{ResourceMembership, ActionApprove}:    denyAll,
	{ResourceMembership, ActionChangeRole}: denyAll,
	{ResourceMembership, ActionRemove}:     denyAll,
}

// Decide reports whether actor may perform action on the resource. Pure
// lookup, no I/O. Unknown (resource, action) pairs deny.
func Decide(actor *users_models.User, resource ResourceType, action Action, target any) bool {
	rule, ok := rules[ruleKey{Resource: resource, Action: action}]
	if !ok {
		return false
	}

	return rule(actor, target)
}
