// Package fileio resolves the converter's input and output streams. The
// conventional "-" path selects stdin or stdout; file destinations are
// written atomically under an advisory lock so concurrent batch invocations
// cannot interleave on one destination.
package fileio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Stdin is the pseudo-path selecting the standard streams.
const Stdin = "-"

// ReadInput returns the full contents of path, or of stdin when path is "-".
func ReadInput(path string) (string, error) {
	if path == Stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// WriteOutput writes content to path, or to stdout when path is "-". File
// writes go through a uuid-suffixed temp file renamed into place while
// holding a lock next to the destination.
func WriteOutput(path, content string) error {
	if path == Stdin {
		if _, err := io.WriteString(os.Stdout, content); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock output: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString())
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}
