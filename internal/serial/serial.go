// Package serial implements the serial-number mini-grammar used on minted
// banknotes. A serial looks like "SN-<group>-<group>..."; two groups are
// classified as body+checksum, more as a combined serial. The checksum is a
// structural slot only, no arithmetic is verified.
package serial

import (
	"fmt"
	"regexp"
	"strings"
)

// Prefix is the literal prefix every valid serial starts with.
const Prefix = "SN-"

// ResultType classifies a valid serial.
type ResultType string

const (
	TypeWithChecksum ResultType = "with_checksum"
	TypeCombined     ResultType = "combined"
)

var groupPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validation is the structured outcome of validating a serial string.
type Validation struct {
	Valid  bool       `json:"valid"`
	Type   ResultType `json:"type,omitempty"`
	Reason string     `json:"reason,omitempty"`

	// Set for TypeWithChecksum.
	SerialBody string `json:"serial_body,omitempty"`
	Checksum   string `json:"checksum,omitempty"`

	// Set for TypeCombined.
	Groups []string `json:"groups,omitempty"`
}

// Validate checks a serial string against the grammar. It is total: any
// input, including the empty string, yields a structured result.
func Validate(serialID string) Validation {
	if !strings.HasPrefix(serialID, Prefix) {
		return Validation{Valid: false, Reason: "Missing prefix 'SN-'"}
	}

	raw := strings.Split(serialID, "-")[1:]
	groups := make([]string, 0, len(raw))
	for _, g := range raw {
		if g != "" {
			groups = append(groups, g)
		}
	}

	if len(groups) == 0 {
		return Validation{Valid: false, Reason: "No valid groups after SN- prefix"}
	}

	if len(groups) == 2 && groupPattern.MatchString(groups[0]) && groupPattern.MatchString(groups[1]) {
		return Validation{
			Valid:      true,
			Type:       TypeWithChecksum,
			SerialBody: groups[0],
			Checksum:   groups[1],
		}
	}

	for _, g := range groups {
		if !groupPattern.MatchString(g) {
			return Validation{Valid: false, Reason: "Invalid format"}
		}
	}

	return Validation{
		Valid:  true,
		Type:   TypeCombined,
		Groups: groups,
	}
}

// HasPrefix reports whether a candidate payload looks like a serial. Used by
// ingestion to decide whether an embedded payload can serve as the serial.
func HasPrefix(payload string) bool {
	return strings.HasPrefix(payload, Prefix)
}

// Synthesize builds the deterministic fallback serial for an artifact that
// carries no usable embedded payload.
func Synthesize(identity, denomination, side string) string {
	return fmt.Sprintf("SN-%s-%s-%s", identity, denomination, side)
}
