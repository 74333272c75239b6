package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxTenantID      ContextKey = "ctx_tenant_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxStaffUserID   ContextKey = "ctx_staff_user_id"
	CtxRoles         ContextKey = "ctx_roles"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	// RoleAdmin grants unrestricted draft visibility in listings.
	RoleAdmin = "admin"

	HeaderRequestID     = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	HeaderTenantID      = "X-Tenant-ID"

	// DefaultTenantID is the single-tenant fallback used when no tenant
	// header is present on the request.
	DefaultTenantID int64 = 1

	// SystemUser is the actor recorded on automated status transitions
	// (scheduled publish, close-due) so they are distinguishable from
	// user-attributed writes.
	SystemUser = "system"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

// GetStaffUserID returns the serial id of the provisioned staff user record
// behind the caller's token, or 0 when the caller is anonymous.
func GetStaffUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(CtxStaffUserID).(int64); ok {
		return id
	}
	return 0
}

func GetTenantID(ctx context.Context) int64 {
	if tenantID, ok := ctx.Value(CtxTenantID).(int64); ok {
		return tenantID
	}
	return DefaultTenantID
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetRoles returns the roles array extracted from the caller's token
func GetRoles(ctx context.Context) []string {
	if roles, ok := ctx.Value(CtxRoles).([]string); ok {
		return roles
	}
	return []string{}
}

// SetTenantID sets the tenant ID in the context
func SetTenantID(ctx context.Context, tenantID int64) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// ValidateTenantContext validates that the required tenant context fields are present
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	if GetTenantID(ctx) == 0 {
		return fmt.Errorf("no tenant context found in context")
	}

	return nil
}
