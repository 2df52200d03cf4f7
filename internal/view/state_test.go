package view

import "testing"

func TestParseView(t *testing.T) {
	cases := []struct {
		raw  string
		want View
		ok   bool
	}{
		{"home", ViewHome, true},
		{" Menu ", ViewMenu, true},
		{"ADMIN", ViewAdmin, true},
		{"blog", ViewBlog, true},
		{"contact", ViewContact, true},
		{"checkout", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseView(tc.raw)
		if ok != tc.ok {
			t.Fatalf("ParseView(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseView(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseAdminTab(t *testing.T) {
	for _, raw := range []string{"overview", "menu", "bookings", "design", "seo"} {
		if _, ok := ParseAdminTab(raw); !ok {
			t.Fatalf("expected %q to be a valid tab", raw)
		}
	}
	if _, ok := ParseAdminTab("billing"); ok {
		t.Fatalf("unknown tab accepted")
	}
}

func TestDefaults(t *testing.T) {
	if DefaultView != ViewHome {
		t.Fatalf("initial view must be home")
	}
	if DefaultAdminTab != TabOverview {
		t.Fatalf("initial admin tab must be overview")
	}
}
