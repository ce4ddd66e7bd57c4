package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

var formatExt = map[string]string{
	"json":     ".json",
	"markdown": ".md",
	"html":     ".html",
}

// MakeDefaultOutputPath generates a default output path:
// ./reports/<dbname>_<timestamp>.<ext>.
func MakeDefaultOutputPath(format, dbname string) string {
	ts := time.Now().Format("20060102_150405")
	ext := formatExt[format]
	name := dbname
	if name == "" {
		name = "dqcheck"
	}
	return filepath.Join("reports", name+"_"+ts+ext)
}

// MakeOutputPath inserts a timestamp into a user-provided output path,
// or places an auto-named file inside it if it names a directory.
func MakeOutputPath(userPath, format, dbname string) string {
	ts := time.Now().Format("20060102_150405")
	ext := formatExt[format]
	name := dbname
	if name == "" {
		name = "dqcheck"
	}

	if info, err := os.Stat(userPath); err == nil && info.IsDir() {
		return filepath.Join(userPath, name+"_"+ts+ext)
	}

	base := userPath
	existingExt := filepath.Ext(userPath)
	if existingExt != "" {
		base = strings.TrimSuffix(userPath, existingExt)
	} else {
		existingExt = ext
	}
	return base + "_" + ts + existingExt
}

func writeOutput(output string, of outputFlags, dbname string) error {
	var path string
	if of.Output != "" {
		path = MakeOutputPath(of.Output, of.Format, dbname)
	} else {
		path = MakeDefaultOutputPath(of.Format, dbname)
	}

	dir := filepath.Dir(path)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return err
	}
	os.Stderr.WriteString("report written to " + path + "\n")
	return nil
}
