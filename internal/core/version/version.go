// Package version reports build metadata stamped in with -ldflags
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Service is the default service name reported when none is stamped
const Service = "claimboard-api"

// Info returns the build information
// -ldflags "-X 'claimboard/internal/core/version.version=v0.1.0' -X 'claimboard/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service: Service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
