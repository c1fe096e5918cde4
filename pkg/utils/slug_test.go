package utils

import "testing"

func TestDeriveSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello, World!!", "hello-world"},
		{"", "untitled-page"},
		{"___", "untitled-page"},
		{"  Payroll   Software ", "payroll-software"},
		{"Crème brûlée", "creme-brulee"},
		{"Привет мир", "privet-mir"},
		{"Already-hyphen--ated", "already-hyphen-ated"},
		{"-leading and trailing-", "leading-and-trailing"},
	}

	for _, tc := range cases {
		if got := DeriveSlug(tc.in); got != tc.want {
			t.Fatalf("DeriveSlug(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"my-page-2", "home", "a-b-c"}
	invalid := []string{"My Page", "my_page", "page!", ""}

	for _, slug := range valid {
		if !IsValidSlug(slug) {
			t.Fatalf("expected %q to be accepted", slug)
		}
	}
	for _, slug := range invalid {
		if IsValidSlug(slug) {
			t.Fatalf("expected %q to be rejected", slug)
		}
	}
}
