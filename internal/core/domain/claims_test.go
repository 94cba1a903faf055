package domain

import "testing"

func TestSessionClaims_IsImpersonating(t *testing.T) {
	cases := []struct {
		name   string
		claims SessionClaims
		want   bool
	}{
		{"normal photographer", NewClaims("u1", RolePhotographer, "p1"), false},
		{"normal admin", NewClaims("a1", RoleAdmin, ""), false},
		{"impersonating", NewImpersonatedClaims("a1", "p1"), true},
		{"missing admin id", SessionClaims{
			UserID: "u1", Role: RolePhotographer, PhotographerID: "p1",
			Impersonation: &Impersonation{OriginalRole: RoleAdmin},
		}, false},
		{"wrong original role", SessionClaims{
			UserID: "u1", Role: RolePhotographer, PhotographerID: "p1",
			Impersonation: &Impersonation{AdminUserID: "a1", OriginalRole: RolePhotographer},
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.claims.IsImpersonating(); got != tc.want {
				t.Fatalf("IsImpersonating() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSessionClaims_IsAdmin(t *testing.T) {
	if !NewClaims("a1", RoleAdmin, "").IsAdmin() {
		t.Fatalf("admin claim must pass admin checks")
	}
	if !NewImpersonatedClaims("a1", "p1").IsAdmin() {
		t.Fatalf("impersonating admin must still pass admin checks")
	}
	if NewClaims("u1", RolePhotographer, "p1").IsAdmin() {
		t.Fatalf("photographer must not pass admin checks")
	}
	if NewClaims("c1", RoleClient, "p1").IsAdmin() {
		t.Fatalf("client must not pass admin checks")
	}
}

func TestGalleryStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to GalleryStatus
		want     bool
	}{
		{GalleryDraft, GalleryProofing, true},
		{GalleryDraft, GalleryArchived, true},
		{GalleryDraft, GalleryDelivered, false},
		{GalleryProofing, GalleryDelivered, true},
		{GalleryProofing, GalleryDraft, true},
		{GalleryDelivered, GalleryArchived, true},
		{GalleryDelivered, GalleryDraft, false},
		{GalleryArchived, GalleryDraft, false},
		{GalleryArchived, GalleryProofing, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestPhotographer_SubscriptionChecks(t *testing.T) {
	for _, status := range []SubscriptionStatus{SubscriptionTrialing, SubscriptionActive, SubscriptionUnlimited} {
		p := Photographer{SubscriptionStatus: status}
		if !p.IsSubscriptionActive() {
			t.Fatalf("%s should count as active", status)
		}
	}
	for _, status := range []SubscriptionStatus{SubscriptionPastDue, SubscriptionCanceled, "", "paused"} {
		p := Photographer{SubscriptionStatus: status}
		if p.IsSubscriptionActive() {
			t.Fatalf("%s should not count as active", status)
		}
	}
}
