package model

import (
	"errors"
	"testing"
)

func TestMemberStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to MemberStatus
		ok       bool
	}{
		{MemberPending, MemberAccepted, true},
		{MemberPending, MemberRejected, true},
		{MemberPending, MemberRemoved, false},
		{MemberAccepted, MemberRemoved, true},
		{MemberAccepted, MemberPending, false},
		{MemberAccepted, MemberRejected, false},
		{MemberAccepted, MemberAccepted, false},
		{MemberRejected, MemberAccepted, false},
		{MemberRejected, MemberPending, false},
		{MemberRemoved, MemberAccepted, false},
		{MemberRemoved, MemberPending, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("%s -> %s: CanTransition = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestTransitionMutatesOnlyWhenLegal(t *testing.T) {
	m := &TeamMember{ID: "m1", Status: MemberPending}

	if err := m.Transition(MemberAccepted); err != nil {
		t.Fatalf("pending -> accepted: %v", err)
	}
	if m.Status != MemberAccepted {
		t.Fatalf("status = %s, want accepted", m.Status)
	}

	err := m.Transition(MemberPending)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	// A failed transition leaves the status alone.
	if m.Status != MemberAccepted {
		t.Errorf("status changed to %s after illegal transition", m.Status)
	}
}
