package domain

import "testing"

func TestLooksLikeEmail(t *testing.T) {
	emails := []string{
		"test@gmail.com",
		"anicet@gmail.com",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	for _, s := range emails {
		if !LooksLikeEmail(s) {
			t.Errorf("expected %q to look like an email", s)
		}
	}

	notEmails := []string{
		"Anicet",
		"no-at-sign.com",
		"@missing-local.com",
		"user@",
	}
	for _, s := range notEmails {
		if LooksLikeEmail(s) {
			t.Errorf("did not expect %q to look like an email", s)
		}
	}
}

func TestUser_IsSearchableBy(t *testing.T) {
	author := &User{ID: 1, Username: "anicet", Role: RoleAuthor}
	hidden := &User{ID: 2, Username: "lurker", Role: RoleNone}

	if !author.IsSearchableBy(nil) {
		t.Error("role-holding user should be visible to anonymous viewers")
	}
	if hidden.IsSearchableBy(nil) {
		t.Error("role-less user should be hidden from anonymous viewers")
	}
	if !hidden.IsSearchableBy(&Viewer{ID: 2, Role: RoleNone}) {
		t.Error("users should always see themselves")
	}
	if !hidden.IsSearchableBy(&Viewer{ID: 99, Role: RoleAdmin}) {
		t.Error("admins should see everyone")
	}
	if hidden.IsSearchableBy(&Viewer{ID: 99, Role: RoleAuthor}) {
		t.Error("other users should not see role-less accounts")
	}
}

func TestUser_ProfileFor(t *testing.T) {
	user := &User{ID: 7, Username: "anicet", Email: "anicet@gmail.com", Role: RoleAuthor}

	public := user.ProfileFor(nil)
	if public.Email != "" {
		t.Error("anonymous viewers should not see the email")
	}
	if public.ID != 7 || public.Username != "anicet" || public.Role != RoleAuthor {
		t.Errorf("unexpected public profile: %+v", public)
	}

	other := user.ProfileFor(&Viewer{ID: 8, Role: RoleAuthor})
	if other.Email != "" {
		t.Error("other users should not see the email")
	}

	owner := user.ProfileFor(&Viewer{ID: 7, Role: RoleAuthor})
	if owner.Email != "anicet@gmail.com" {
		t.Error("owners should see their own email")
	}

	admin := user.ProfileFor(&Viewer{ID: 1, Role: RoleAdmin})
	if admin.Email != "anicet@gmail.com" {
		t.Error("admins should see the email")
	}
}
