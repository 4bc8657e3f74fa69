package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Session errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotSignedIn        = errors.New("no session matches this token")
	ErrStoreInconsistency = errors.New("token held by more than one user")
)

// User errors
var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUsernameTaken            = errors.New("username already taken")
	ErrRoleRequired             = errors.New("role is required")
	ErrImmutableCredentialField = errors.New("username and password cannot be updated")
	ErrAlreadyDeleted           = errors.New("user already deleted")
	ErrHasFutureActiveTickets   = errors.New("user still holds active tickets for future flights")
)

// Flight errors
var (
	ErrFlightNotFound      = errors.New("flight not found")
	ErrDestinationTooShort = errors.New("destination must have at least 3 characters")
)

// Ticket errors
var (
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrFlightFull        = errors.New("no available seats on this flight")
	ErrAlreadyCanceled   = errors.New("ticket already canceled")
	ErrTooLateToCancel   = errors.New("tickets can only be canceled up to one day before departure")
)

// Authorization rule identifiers carried by Denial values, so that the
// transport layer can report which rule fired without parsing text.
const (
	RuleFlightsStaffOnly  = "flights_staff_only"
	RuleUserCreateByStaff = "user_create_staff_only"
	RuleUserReadScope     = "user_read_scope"
	RuleUserUpdateScope   = "user_update_scope"
	RuleRoleChangeAdmin   = "role_change_admin_only"
	RuleUserListScope     = "user_list_scope"
	RuleSelfPurchaseOnly  = "client_self_purchase_only"
	RuleTicketOwnership   = "client_own_tickets_only"
	RuleUserDeleteAdmin   = "user_delete_admin_only"
)

// Denial is a structured authorization failure: the rule that fired plus a
// human-readable message. It matches ErrForbidden under errors.Is.
type Denial struct {
	Rule    string
	Message string
}

func (d *Denial) Error() string {
	return fmt.Sprintf("forbidden (%s): %s", d.Rule, d.Message)
}

// Is makes errors.Is(err, ErrForbidden) hold for every denial.
func (d *Denial) Is(target error) bool {
	return target == ErrForbidden
}

// Deny builds a Denial for the given rule.
func Deny(rule, message string) *Denial {
	return &Denial{Rule: rule, Message: message}
}

// StoreError wraps an infrastructure failure from a repository so that it is
// never mistaken for a business outcome. Not-found conditions must be mapped
// to their own sentinels before calling this.
func StoreError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
