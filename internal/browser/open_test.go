package browser

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://sportex.app/event/e1", false},
		{"http://localhost:5173", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"/event/e1", true},
		{"://bad", true},
	}
	for _, tc := range tests {
		err := Validate(tc.url)
		if (err != nil) != tc.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tc.url, err, tc.wantErr)
		}
	}
}

func TestCommand(t *testing.T) {
	name, args, err := command("linux", "https://sportex.app")
	if err != nil || name != "xdg-open" || len(args) != 1 {
		t.Errorf("linux: got %q %v %v", name, args, err)
	}
	name, args, err = command("windows", "https://sportex.app")
	if err != nil || name != "rundll32" || args[1] != "https://sportex.app" {
		t.Errorf("windows: got %q %v %v", name, args, err)
	}
	if _, _, err := command("plan9", "https://sportex.app"); err == nil {
		t.Error("expected error for unsupported OS")
	}
}
