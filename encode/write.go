package encode

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/signadot/tony-edit/doc"
)

// WriteFile serializes t and atomically replaces path with the result.
// With backup set, the previous contents are kept in a ".bak" sibling
// first.
func WriteFile(t *doc.Tree, path string, backup bool, opts ...EncodeOption) error {
	buf := bytes.NewBuffer(nil)
	if err := EncodeTree(t, buf, opts...); err != nil {
		return err
	}
	if backup {
		if prev, err := os.ReadFile(path); err == nil {
			mode := os.FileMode(0644)
			if fi, err := os.Stat(path); err == nil {
				mode = fi.Mode().Perm()
			}
			if err := os.WriteFile(path+".bak", prev, mode); err != nil {
				return fmt.Errorf("%w: backup: %v", ErrEncoding, err)
			}
		}
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
