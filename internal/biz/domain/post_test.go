package domain

import (
	"testing"
	"time"
)

func TestScheduledPost_Due(t *testing.T) {
	now := time.Now()

	post := &ScheduledPost{Status: PostPending, ScheduledAt: now.Add(-time.Minute)}
	if !post.Due(now) {
		t.Error("Expected past pending post to be due")
	}

	post = &ScheduledPost{Status: PostPending, ScheduledAt: now}
	if !post.Due(now) {
		t.Error("Expected post scheduled exactly now to be due")
	}

	post = &ScheduledPost{Status: PostPending, ScheduledAt: now.Add(time.Minute)}
	if post.Due(now) {
		t.Error("Expected future post to not be due")
	}

	post = &ScheduledPost{Status: PostSent, ScheduledAt: now.Add(-time.Minute)}
	if post.Due(now) {
		t.Error("Expected sent post to not be due")
	}
}

func TestRole_Privileged(t *testing.T) {
	if RoleMember.Privileged() {
		t.Error("Expected member to not be privileged")
	}
	if !RoleAdmin.Privileged() {
		t.Error("Expected admin to be privileged")
	}
	if !RoleOwner.Privileged() {
		t.Error("Expected owner to be privileged")
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := User{Username: "alice", FirstName: "Alice B"}
	if u.DisplayName() != "alice" {
		t.Errorf("Expected username, got %q", u.DisplayName())
	}

	u = User{FirstName: "Alice B"}
	if u.DisplayName() != "Alice B" {
		t.Errorf("Expected first name fallback, got %q", u.DisplayName())
	}
}
