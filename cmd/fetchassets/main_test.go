package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := validate(dir); err == nil {
		t.Fatal("expected error for empty pack")
	}

	write("cloud_0.json", `{"rows":["##"],"legend":{"#":"CLOUD"}}`)
	write("cloud_1.json", `{"rows":["#.","##"],"legend":{"#":"CLOUD"},"origin":[1,1]}`)
	n, err := validate(dir)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if n != 2 {
		t.Fatalf("validate = %d, want 2", n)
	}

	write("cloud_2.json", `{"rows":["#"],"legend":{"#":"UNOBTAINIUM"}}`)
	if _, err := validate(dir); err == nil {
		t.Fatal("expected error for unknown material")
	}
}
