package encode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/tony-edit/parse"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	src := `{a: 1, b: 2}`
	tree, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(tree, path, false, Preserve(true)); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != src {
		t.Errorf("wrote %q, want %q", d, src)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("backup created without being asked for")
	}
}

func TestWriteFileBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("old contents\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tree, err := parse.Parse([]byte(`{a: 1}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(tree, path, true); err != nil {
		t.Fatal(err)
	}
	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatal(err)
	}
	if string(bak) != "old contents\n" {
		t.Errorf("backup = %q", bak)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "a: 1\n" {
		t.Errorf("file = %q", d)
	}
}

func TestWriteFileBackupKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.yaml")
	if err := os.WriteFile(path, []byte("token: abc\n"), 0600); err != nil {
		t.Fatal(err)
	}
	tree, err := parse.Parse([]byte(`{token: "xyz"}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(tree, path, true); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(path + ".bak")
	if err != nil {
		t.Fatal(err)
	}
	if got := fi.Mode().Perm(); got != 0600 {
		t.Errorf("backup mode = %o, want 600", got)
	}
}
