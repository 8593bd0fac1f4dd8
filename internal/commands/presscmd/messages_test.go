package presscmd

import "testing"

func TestMessageTypes(t *testing.T) {
	if got := (CheckDirectoryCommand{}).Type(); got != "press.check_directory" {
		t.Fatalf("unexpected check type %q", got)
	}
	if got := (ImportDirectoryCommand{}).Type(); got != "press.import_directory" {
		t.Fatalf("unexpected import type %q", got)
	}
	if got := (SyncDirectoryCommand{}).Type(); got != "press.sync_directory" {
		t.Fatalf("unexpected sync type %q", got)
	}
}

func TestValidateRequiresDirectory(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"check", CheckDirectoryCommand{}.Validate()},
		{"import", ImportDirectoryCommand{}.Validate()},
		{"sync", SyncDirectoryCommand{}.Validate()},
		{"check blank", CheckDirectoryCommand{Directory: "  "}.Validate()},
	}
	for _, tc := range cases {
		if tc.err == nil {
			t.Fatalf("%s: expected validation error for missing directory", tc.name)
		}
	}

	if err := (SyncDirectoryCommand{Directory: "content"}).Validate(); err != nil {
		t.Fatalf("expected valid sync command, got %v", err)
	}
}
