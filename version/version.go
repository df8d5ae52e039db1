package version

import (
	"fmt"
	"regexp"
)

const (
	appMajor uint = 0
	appMinor uint = 1
	appPatch uint = 0
)

// appBuild is defined as a variable so it can be overridden during the build
// process with '-ldflags "-X github.com/kaspanet/cellwallet/version.appBuild=foo"' if needed.
// It's ignored unless it matches validAppBuild.
var appBuild string

var validAppBuild = regexp.MustCompile(`^[0-9A-Za-z-]+$`)

// Version returns the application version as a properly formed string,
// e.g. "0.1.0" or "0.1.0-abc123".
func Version() string {
	return version(appBuild)
}

func version(build string) string {
	semver := fmt.Sprintf("%d.%d.%d", appMajor, appMinor, appPatch)
	if !validAppBuild.MatchString(build) {
		return semver
	}
	return semver + "-" + build
}
