// Package platform answers questions about the host environment that the
// focus tracker needs to work around.
package platform

import "strings"

// Probe reports platform traits.
type Probe interface {
	// IsKnownBuggyMobilePlatform reports whether the platform is the mobile
	// browser that lets a range's native boundaries drift from the
	// normalized ones across a focus transition.
	IsKnownBuggyMobilePlatform() bool
}

// Static is a Probe with fixed answers.
type Static struct {
	BuggyMobile bool
}

// IsKnownBuggyMobilePlatform implements Probe.
func (s Static) IsKnownBuggyMobilePlatform() bool { return s.BuggyMobile }

// UserAgent is a Probe that inspects a user agent string.
type UserAgent string

// IsKnownBuggyMobilePlatform reports true for Chrome on Android. Other
// Chromium browsers on Android that advertise their own token are excluded.
func (ua UserAgent) IsKnownBuggyMobilePlatform() bool {
	s := string(ua)
	if !strings.Contains(s, "Android") || !strings.Contains(s, "Chrome/") {
		return false
	}
	for _, other := range []string{"Edg/", "OPR/", "SamsungBrowser/", "Firefox/"} {
		if strings.Contains(s, other) {
			return false
		}
	}
	return true
}
