// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/blockcanvas/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/blockcanvas/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/blockcanvas/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/blockcanvas
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns "version+commit", which identifies the rendering code of a
// build.
func Short() string { return Version + "+" + Commit }

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
