package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scenes/*.yaml scripts/*.tengo
var FS embed.FS

// Load returns a scene or script file. A copy under ./prefabs on disk wins
// over the embedded one so edits are picked up without rebuilding.
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return FS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	return Load(scriptPath(name))
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Dirs returns the on-disk directories worth watching for hot reload.
func Dirs() []string {
	var out []string
	for _, dir := range []string{"scenes", "scripts"} {
		path := diskPath(dir)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			out = append(out, path)
		}
	}
	return out
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	return s
}

func scriptPath(path string) string {
	s := cleanPath(path)
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
