// Package buildinfo holds version metadata injected at link time:
//
//	go build -ldflags "\
//	  -X github.com/KhanhRomVN/GoFlow-sub001/pkg/buildinfo.Version=v1.0.0 \
//	  -X github.com/KhanhRomVN/GoFlow-sub001/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	  -X github.com/KhanhRomVN/GoFlow-sub001/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Defaults apply to plain `go build` with no ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build info for log output.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns cobra's --version output template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
