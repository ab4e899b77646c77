package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventStatus(t *testing.T) {
	st, ok := ParseEventStatus(" confirmed ")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, st)

	_, ok = ParseEventStatus("DONE")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to EventStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRoleElevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.True(t, RoleStaff.Elevated())
	assert.False(t, RoleStudent.Elevated())
	assert.False(t, RoleProfessor.Elevated())
	assert.False(t, Role("").Elevated())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("professor")
	assert.True(t, ok)
	assert.Equal(t, RoleProfessor, r)
	assert.True(t, r.SelfRegistrable())

	_, ok = ParseRole("ROOT")
	assert.False(t, ok)
	assert.False(t, RoleAdmin.SelfRegistrable())
}
