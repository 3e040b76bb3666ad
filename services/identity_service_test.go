package services

import (
	"errors"
	"testing"
)

func TestResolveIdentityCreateThenUpdate(t *testing.T) {
	setupTestDB(t)

	user, created, err := ResolveIdentity(IdentityAssertion{
		TelegramID: 1200,
		Username:   "makeda",
		FirstName:  "Makeda",
	})
	if err != nil {
		t.Fatalf("ResolveIdentity failed: %v", err)
	}
	if !created {
		t.Fatal("expected first resolve to create")
	}
	if user.CurrentLevel != 1 || user.Points != 0 {
		t.Errorf("fresh user level=%d points=%d, want level 1, 0 points", user.CurrentLevel, user.Points)
	}
	if user.InviteCode == nil || *user.InviteCode == "" {
		t.Error("fresh user missing invite code")
	}

	// Accumulate some progress, then resolve again with new display fields.
	if _, err := CompleteTask(user.ID, "1"); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	again, created, err := ResolveIdentity(IdentityAssertion{
		TelegramID: 1200,
		Username:   "queen_makeda",
		FirstName:  "Makeda",
		LastName:   "of Sheba",
	})
	if err != nil {
		t.Fatalf("second resolve failed: %v", err)
	}
	if created {
		t.Fatal("second resolve must not create")
	}
	if again.ID != user.ID {
		t.Errorf("resolved id changed: %s vs %s", again.ID, user.ID)
	}
	if again.Username != "queen_makeda" {
		t.Errorf("username = %q, want refreshed value", again.Username)
	}
	if again.Points != 50 {
		t.Errorf("points = %d, want progress untouched at 50", again.Points)
	}
}

func TestResolveIdentityMissingID(t *testing.T) {
	setupTestDB(t)

	_, _, err := ResolveIdentity(IdentityAssertion{Username: "ghost"})
	if !errors.Is(err, ErrMissingTelegramID) {
		t.Fatalf("error = %v, want ErrMissingTelegramID", err)
	}
}

func TestFindUserByInviteCode(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 1201)

	found, err := FindUserByInviteCode(*user.InviteCode)
	if err != nil {
		t.Fatalf("FindUserByInviteCode failed: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found id = %s, want %s", found.ID, user.ID)
	}

	if _, err := FindUserByInviteCode("NOPE1234"); err == nil {
		t.Error("unknown invite code resolved, want error")
	}
}
