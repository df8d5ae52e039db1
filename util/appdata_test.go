package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppDataDir(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %s", err)
	}

	tests := []struct {
		goos    string
		appName string
		want    string
	}{
		{"linux", "cellwallet", filepath.Join(homeDir, ".cellwallet")},
		{"linux", ".cellwallet", filepath.Join(homeDir, ".cellwallet")},
		{"linux", "Cellwallet", filepath.Join(homeDir, ".cellwallet")},
		{"darwin", "cellwallet", filepath.Join(homeDir, "Library", "Application Support", "Cellwallet")},
		{"plan9", "cellwallet", filepath.Join(homeDir, "cellwallet")},
		{"linux", "", "."},
		{"linux", ".", "."},
	}
	for _, test := range tests {
		got := appDataDir(test.goos, test.appName, false)
		if got != test.want {
			t.Errorf("appDataDir(%q, %q): got %s, want %s", test.goos, test.appName, got, test.want)
		}
	}
}
