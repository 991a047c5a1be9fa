// Package config collects the sanity-bound constants the container
// scanner and register locator use as implementer judgment calls, so a
// host can tune them for a modified game build without a code change.
package config

// Heuristics are the tunable thresholds the scanner uses to accept or
// reject a candidate. See fileFormat in toml.go for the bgui.toml override
// format.
type Heuristics struct {
	// MaxNameLength bounds a container's name length byte.
	MaxNameLength uint8
	// MaxContainerID is the first-pass sanity bound on a container id
	// before the register has been cross-checked.
	MaxContainerID uint32
	// ResourceFlagsLength is the length of the flags region after the BD
	// tag in the standard case; decodeResource tries this offset first
	// before falling back to the multi-offset search.
	ResourceFlagsLength uint8
	// MaxResourceStringLength bounds the inner resource string length
	// byte before it's treated as implausible.
	MaxResourceStringLength uint8
	// MaxManifestStringLength bounds a Pascal-style manifest/page string.
	MaxManifestStringLength uint8
	// MaxManifestStringCount bounds the declared string_count field of
	// the manifest container (id 0) before it's treated as corrupt.
	MaxManifestStringCount uint32
	// RegisterSignatureScanWindow is how far back from EOF the primary
	// register-signature scan looks before giving up.
	RegisterSignatureScanWindow uint32
}

// Default returns the standard heuristic bounds.
func Default() Heuristics {
	return Heuristics{
		MaxNameLength:               64,
		MaxContainerID:              100000,
		ResourceFlagsLength:         5,
		MaxResourceStringLength:     200,
		MaxManifestStringLength:     100,
		MaxManifestStringCount:      10000,
		RegisterSignatureScanWindow: 1 << 20,
	}
}
