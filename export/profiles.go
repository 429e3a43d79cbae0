package export

import (
	"fmt"
	"sort"
)

// Profile determines how much of each record is exported.
type Profile string

const (
	// ProfileMinimal includes type assertions and the descriptive DCAT,
	// Dublin Core and FOAF predicates.
	ProfileMinimal Profile = "minimal"

	// ProfileOffers adds offered policies and Dublin Core type tags.
	ProfileOffers Profile = "offers"

	// ProfileFull adds extension members under connector vocabulary IRIs.
	ProfileFull Profile = "full"
)

// ProfileConfig contains configuration for an export profile.
type ProfileConfig struct {
	// Name is the profile identifier.
	Name Profile

	// Description describes the profile.
	Description string

	// IncludePolicies links datasets to the policies they offer.
	IncludePolicies bool

	// IncludeTypeTags emits dct:type tags.
	IncludeTypeTags bool

	// IncludeExtensions emits members without a dedicated field.
	IncludeExtensions bool
}

// Profiles contains the configuration for all available export profiles.
var Profiles = map[Profile]ProfileConfig{
	ProfileMinimal: {
		Name:        ProfileMinimal,
		Description: "DCAT types and descriptive predicates only",
	},
	ProfileOffers: {
		Name:            ProfileOffers,
		Description:     "Minimal plus offered policies and type tags",
		IncludePolicies: true,
		IncludeTypeTags: true,
	},
	ProfileFull: {
		Name:              ProfileFull,
		Description:       "Offers plus every extension member",
		IncludePolicies:   true,
		IncludeTypeTags:   true,
		IncludeExtensions: true,
	},
}

// GetProfileConfig returns the configuration for a profile.
func GetProfileConfig(profile Profile) (ProfileConfig, bool) {
	config, ok := Profiles[profile]
	return config, ok
}

// ParseProfile validates a profile name.
func ParseProfile(s string) (Profile, error) {
	if _, ok := Profiles[Profile(s)]; ok {
		return Profile(s), nil
	}
	return "", fmt.Errorf("unknown profile %q (want one of %v)", s, ProfileNames())
}

// ProfileNames returns the profile identifiers in sorted order.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for p := range Profiles {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}
