package version

// Set at build time using: -ldflags "-X github.com/app-sre/tabqa/pkg/version.version=..."
var version = "devel"

func Version() string {
	return version
}
