package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ApprovalFlow is the ordered sequence of roles required to terminally
// approve a leave request. It is persisted as a comma-joined text column.
type ApprovalFlow []ApprovalRole

// First returns the initial approval level of the flow.
func (f ApprovalFlow) First() (ApprovalRole, bool) {
	if len(f) == 0 {
		return "", false
	}
	return f[0], true
}

// Last reports whether role is the final step of the flow.
func (f ApprovalFlow) Last(role ApprovalRole) bool {
	return len(f) > 0 && f[len(f)-1] == role
}

// Contains reports membership of role in the flow.
func (f ApprovalFlow) Contains(role ApprovalRole) bool {
	for _, r := range f {
		if r == role {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer.
func (f ApprovalFlow) Value() (driver.Value, error) {
	parts := make([]string, len(f))
	for i, r := range f {
		parts[i] = string(r)
	}
	return strings.Join(parts, ","), nil
}

// Scan implements sql.Scanner.
func (f *ApprovalFlow) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*f = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("unsupported approval flow column type %T", src)
	}
	if raw == "" {
		*f = nil
		return nil
	}
	parts := strings.Split(raw, ",")
	flow := make(ApprovalFlow, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			flow = append(flow, ApprovalRole(part))
		}
	}
	*f = flow
	return nil
}
