// Package authz is the authorization decision engine: pure functions mapping
// (actor, operation, target) to allow or a structured denial. It never touches
// storage, so the whole role matrix is unit-testable in isolation.
package authz

import "skyfare/internal/core/domain"

// Operation identifies a privileged action submitted to Authorize.
type Operation string

const (
	OpCreateFlight   Operation = "flight.create"
	OpListAllFlights Operation = "flight.list_all"
	OpCreateUser     Operation = "user.create"
	OpReadUser       Operation = "user.read"
	OpUpdateUser     Operation = "user.update"
	OpDeleteUser     Operation = "user.delete"
	OpPurchaseTicket Operation = "ticket.purchase"
	OpReadTickets    Operation = "ticket.read_by_user"
	OpCancelTicket   Operation = "ticket.cancel"
)

// Target describes the entity an operation acts upon. For ticket operations
// ID is the passenger's user id; Role is only meaningful for user targets.
type Target struct {
	ID   uint
	Role domain.Role
}

// ListScope is the visibility a role gets from the user listing.
type ListScope int

const (
	ScopeNone ListScope = iota
	ScopeClients
	ScopeAll
)

// Authorize evaluates the role matrix for one operation. A nil result means
// allow; otherwise the denial names the rule that fired.
func Authorize(actor domain.Actor, op Operation, target *Target) *domain.Denial {
	switch op {
	case OpCreateFlight, OpListAllFlights:
		if actor.Role == domain.RoleClient {
			return domain.Deny(domain.RuleFlightsStaffOnly, "clients cannot manage or list flights")
		}
		return nil

	case OpCreateUser:
		if actor.Role == domain.RoleClient {
			return domain.Deny(domain.RuleUserCreateByStaff, "clients cannot create users")
		}
		return nil

	case OpReadUser:
		return authorizeUserRead(actor, target)

	case OpUpdateUser:
		return authorizeUserUpdate(actor, target)

	case OpDeleteUser:
		if actor.Role != domain.RoleAdministrator {
			return domain.Deny(domain.RuleUserDeleteAdmin, "only administrators can delete users")
		}
		return nil

	case OpPurchaseTicket:
		if actor.Role == domain.RoleClient && target.ID != actor.ID {
			return domain.Deny(domain.RuleSelfPurchaseOnly, "clients can only buy tickets for themselves")
		}
		return nil

	case OpReadTickets, OpCancelTicket:
		if actor.Role == domain.RoleClient && target.ID != actor.ID {
			return domain.Deny(domain.RuleTicketOwnership, "clients can only act on their own tickets")
		}
		return nil
	}

	return domain.Deny(string(op), "unknown operation")
}

func authorizeUserRead(actor domain.Actor, target *Target) *domain.Denial {
	switch actor.Role {
	case domain.RoleAdministrator:
		return nil
	case domain.RoleEmployee:
		// Own record or any client record.
		if target.ID == actor.ID || target.Role == domain.RoleClient {
			return nil
		}
		return domain.Deny(domain.RuleUserReadScope, "employees can only see their own record and client records")
	default:
		if target.ID == actor.ID {
			return nil
		}
		return domain.Deny(domain.RuleUserReadScope, "clients can only see their own record")
	}
}

func authorizeUserUpdate(actor domain.Actor, target *Target) *domain.Denial {
	switch actor.Role {
	case domain.RoleAdministrator:
		return nil
	case domain.RoleEmployee:
		if target.ID == actor.ID || target.Role == domain.RoleClient {
			return nil
		}
		return domain.Deny(domain.RuleUserUpdateScope, "employees can only update their own record and client records")
	default:
		if target.ID == actor.ID {
			return nil
		}
		return domain.Deny(domain.RuleUserUpdateScope, "clients can only update their own record")
	}
}

// CanChangeRole reports whether the actor may change a user's role. Only
// administrators may; clients and employees are both barred, closing the
// precedence gap the legacy rule left open.
func CanChangeRole(actor domain.Actor) *domain.Denial {
	if actor.Role != domain.RoleAdministrator {
		return domain.Deny(domain.RuleRoleChangeAdmin, "only administrators can change roles")
	}
	return nil
}

// RoleForCreatedUser resolves the role a privileged create may assign.
// Administrators assign any valid role; employees are silently downgraded to
// creating clients, whatever they asked for.
func RoleForCreatedUser(creator domain.Role, requested domain.Role) domain.Role {
	if creator == domain.RoleEmployee {
		return domain.RoleClient
	}
	return requested
}

// ListUsersScope resolves what the user listing shows each role.
func ListUsersScope(role domain.Role) ListScope {
	switch role {
	case domain.RoleAdministrator:
		return ScopeAll
	case domain.RoleEmployee:
		return ScopeClients
	default:
		return ScopeNone
	}
}
