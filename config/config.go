package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Dir returns the tictac configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "tictac")
}

// BotsDir returns the directory searched for bots given by name.
func BotsDir() string {
	return filepath.Join(Dir(), "bots")
}

// ResolveBot maps a -bot value to a script path. Anything that looks like a
// path is returned unchanged; a bare name is looked up in BotsDir.
func ResolveBot(name string) string {
	if name == "" {
		return ""
	}
	if strings.ContainsAny(name, `/\`) || strings.HasSuffix(name, ".lua") || strings.HasPrefix(name, "~") {
		return name
	}
	return filepath.Join(BotsDir(), name+".lua")
}
