// Package authz holds the two gates every privileged operation passes
// through: membership resolution (user → company → role) and the permission
// check over the resolved role.
package authz

import "github.com/hugh/go-desk/internal/apperr"

// Permission is a named capability carried by a role.
type Permission string

const (
	// PermAll is the superuser grant attached to the Administrator role.
	PermAll      Permission = "ALL_ADM"
	PermWildcard Permission = "*"

	PermCreateDomain Permission = "CREATE_DOMAIN"

	PermCreateRole   Permission = "CREATE_ROLE"
	PermUpdateRole   Permission = "UPDATE_ROLE"
	PermDeleteRole   Permission = "DELETE_ROLE"
	PermGetRole      Permission = "GET_ROLE"
	PermListFullRole Permission = "LIST_FULL_ROLE"
)

// Can allows when any one required permission appears in the caller's grant
// set (OR semantics, including wildcard grants when the operation lists
// them). It is a pure predicate over two string sets; denial surfaces as a
// client-request error, matching the observable API contract.
func Can(required []Permission, granted []string) error {
	for _, req := range required {
		for _, g := range granted {
			if string(req) == g {
				return nil
			}
		}
	}
	return apperr.BadRequest("You're not allowed to access this route")
}
