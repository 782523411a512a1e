package branding

import "testing"

func TestAppName(t *testing.T) {
	if AppName != "HyperLocal" {
		t.Fatalf("AppName = %q, want %q", AppName, "HyperLocal")
	}
}

func TestMonogramIsFirstLetterOfAppName(t *testing.T) {
	if Monogram != AppName[:1] {
		t.Fatalf("Monogram = %q, want %q", Monogram, AppName[:1])
	}
}
