package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalFlowRoundTrip(t *testing.T) {
	flow := ApprovalFlow(DefaultApprovalFlow())

	value, err := flow.Value()
	require.NoError(t, err)
	assert.Equal(t, "TEACHER,HOD", value)

	var scanned ApprovalFlow
	require.NoError(t, scanned.Scan("TEACHER,HOD"))
	assert.Equal(t, flow, scanned)

	require.NoError(t, scanned.Scan([]byte(" TEACHER , HOD ")))
	assert.Equal(t, flow, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestApprovalFlowOrdering(t *testing.T) {
	flow := ApprovalFlow(DefaultApprovalFlow())

	first, ok := flow.First()
	require.True(t, ok)
	assert.Equal(t, ApprovalRoleTeacher, first)
	assert.True(t, flow.Last(ApprovalRoleHOD))
	assert.False(t, flow.Last(ApprovalRoleTeacher))
	assert.True(t, flow.Contains(ApprovalRoleTeacher))
}

func TestLeaveStatusLifecycle(t *testing.T) {
	assert.False(t, LeaveStatusPending.Terminal())
	assert.True(t, LeaveStatusApproved.Terminal())
	assert.True(t, LeaveStatusReturned.Terminal())

	assert.False(t, LeaveStatusApproved.ReapplyEligible())
	assert.True(t, LeaveStatusRejected.ReapplyEligible())
	assert.True(t, LeaveStatusReturned.ReapplyEligible())

	assert.False(t, LeaveStatus("CANCELLED").Valid())
}
