// Package config holds tunable parameters for the glyph cache engine.
//
// It follows the same global-struct-with-getters-and-setters shape used
// throughout this codebase's configuration surface: a package-level Config
// value, mutated via SetConfig/individual setters and read via GetConfig,
// so callers can tune cache behavior without touching call sites.
package config

import "strconv"

// Config holds the global configuration for the glyph cache engine.
type Config struct {
	// CacheCount is the maximum number of non-tofu glyphs a single cache
	// entry may hold before eviction kicks in. Corresponds to the firmware
	// constant CACHE_COUNT.
	CacheCount int

	// HashScanBound caps how many offset-table entries a hash bucket scan
	// will examine before giving up, even if the bucket's own recorded
	// offset_table_size claims more. This guards against a malformed or
	// adversarial font image turning a lookup into an unbounded scan.
	HashScanBound int

	// DebugGlyphDump, when true, logs the codepoints added to a cache on
	// every insertion. Mirrors the firmware's compile-time DEBUG_FONT
	// glyph dump, gated at runtime since Go has no preprocessor.
	DebugGlyphDump bool
}

// Default cache parameters, matching the firmware's CACHE_COUNT = 22.
const (
	DefaultCacheCount    = 22
	DefaultHashScanBound = 1024
)

var globalConfig = Config{
	CacheCount:     DefaultCacheCount,
	HashScanBound:  DefaultHashScanBound,
	DebugGlyphDump: false,
}

// SetConfig replaces the global configuration.
func SetConfig(cfg Config) {
	globalConfig = cfg
}

// GetConfig returns the current global configuration.
func GetConfig() Config {
	return globalConfig
}

// SetCacheCount sets the per-entry glyph capacity.
func SetCacheCount(n int) {
	globalConfig.CacheCount = n
}

// CacheCount returns the configured per-entry glyph capacity, or
// DefaultCacheCount when the configured value is not positive.
func CacheCount() int {
	if globalConfig.CacheCount <= 0 {
		return DefaultCacheCount
	}
	return globalConfig.CacheCount
}

// HashScanBound returns the configured hash-bucket scan bound.
func HashScanBound() int {
	return globalConfig.HashScanBound
}

// SetDebugGlyphDump toggles the per-codepoint glyph-insertion debug dump.
func SetDebugGlyphDump(enabled bool) {
	globalConfig.DebugGlyphDump = enabled
}

// DebugGlyphDump reports whether the per-codepoint glyph-insertion debug
// dump is enabled.
func DebugGlyphDump() bool {
	return globalConfig.DebugGlyphDump
}

// ValidateConfig reports configuration values that are structurally legal
// but likely to surprise a caller.
func ValidateConfig() []ConfigWarning {
	var warnings []ConfigWarning

	if globalConfig.CacheCount <= 0 {
		warnings = append(warnings, ConfigWarning{
			Type:    WarningInvalid,
			Message: "CacheCount must be positive; falling back to DefaultCacheCount",
		})
	}
	if globalConfig.HashScanBound <= 0 {
		warnings = append(warnings, ConfigWarning{
			Type:    WarningInvalid,
			Message: "HashScanBound is not positive; bucket scans are bounded only by each bucket's recorded size",
		})
	}

	return warnings
}

// ConfigWarning represents a configuration warning.
type ConfigWarning struct {
	Type    WarningType
	Message string
}

// WarningType represents the type of configuration warning.
type WarningType int

const (
	WarningInvalid WarningType = iota
)

// String returns a string representation of the warning type.
func (wt WarningType) String() string {
	switch wt {
	case WarningInvalid:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// PrintableConfig returns a human-readable representation of the current configuration.
func PrintableConfig() string {
	cfg := globalConfig
	result := "glyphcache Configuration:\n"
	result += "  CacheCount: " + strconv.Itoa(cfg.CacheCount) + "\n"
	result += "  HashScanBound: " + strconv.Itoa(cfg.HashScanBound) + "\n"

	warnings := ValidateConfig()
	if len(warnings) > 0 {
		result += "  Warnings:\n"
		for _, w := range warnings {
			result += "    - " + w.Type.String() + ": " + w.Message + "\n"
		}
	}

	return result
}
