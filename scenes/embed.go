package scenes

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed *.yaml
var ScenesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Dir is checked before the embedded files so scenes can be edited without
// rebuilding.
var Dir = "scenes"

// Load returns the raw bytes of a scene file.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	data, err := ScenesFS.ReadFile(clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	return data, err
}

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// ModTime reports the on-disk modification time of a scene, if it exists
// on disk.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(filepath.Join(Dir, filepath.FromSlash(cleanScenePath(name))))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the embedded scenes without extension.
func Names() []string {
	entries, err := fs.ReadDir(ScenesFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if isSpecFile(e.Name()) {
			out = append(out, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		}
	}
	sort.Strings(out)
	return out
}

func cleanScenePath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}
	if !isSpecFile(s) {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	if !isScriptFile(s) {
		s += ".tengo"
	}

	return fmt.Sprintf("scripts/%s", s)
}
