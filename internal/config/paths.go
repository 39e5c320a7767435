package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// percentRef matches a Windows-style %NAME% environment reference.
var percentRef = regexp.MustCompile(`%[A-Za-z_][A-Za-z0-9_()]*%`)

// resolveTaskFile turns the configured task_file into an absolute path.
// $NAME and ${NAME} are expanded everywhere, %NAME% only on Windows, and a
// leading ~ names the home directory. Relative paths resolve against the
// working directory.
func resolveTaskFile(p string) (string, error) {
	p = os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		p = percentRef.ReplaceAllStringFunc(p, func(ref string) string {
			if v, ok := os.LookupEnv(ref[1 : len(ref)-1]); ok {
				return v
			}
			return ref
		})
	}

	if rest, ok := strings.CutPrefix(p, "~"); ok && (rest == "" || isSeparator(rest[0])) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~ in %q: %w", p, err)
		}
		p = filepath.Join(home, rest)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", p, err)
	}
	return abs, nil
}

// isSeparator accepts / everywhere and \ on Windows.
func isSeparator(c byte) bool {
	return c == '/' || (runtime.GOOS == "windows" && c == '\\')
}
