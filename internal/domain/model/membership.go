package model

import (
	"errors"
	"fmt"
)

type MemberRole string
type MemberStatus string

const (
	MemberRoleLeader MemberRole = "leader"
	MemberRoleMember MemberRole = "member"

	MemberPending  MemberStatus = "pending"
	MemberAccepted MemberStatus = "accepted"
	MemberRejected MemberStatus = "rejected"
	MemberRemoved  MemberStatus = "removed"
)

var ErrInvalidTransition = errors.New("invalid membership status transition")

// memberTransitions is the full transition table for membership rows. A join
// request starts at pending; the leader moves it to accepted or rejected, and
// an accepted member can later be removed. Everything else is illegal, in
// particular accepted can never go back to pending.
var memberTransitions = map[MemberStatus][]MemberStatus{
	MemberPending:  {MemberAccepted, MemberRejected},
	MemberAccepted: {MemberRemoved},
	MemberRejected: {},
	MemberRemoved:  {},
}

// CanTransition reports whether s may move to next.
func (s MemberStatus) CanTransition(next MemberStatus) bool {
	for _, allowed := range memberTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the membership to next, or fails with ErrInvalidTransition.
func (m *TeamMember) Transition(next MemberStatus) error {
	if !m.Status.CanTransition(next) {
		return fmt.Errorf("%s -> %s: %w", m.Status, next, ErrInvalidTransition)
	}
	m.Status = next
	return nil
}
