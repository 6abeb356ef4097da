package config

import (
	"sort"

	"github.com/san-kum/orbsim/internal/domain"
)

// Preset is a built-in system description in the loader's text format.
type Preset struct {
	Domain      domain.Kind
	Description string
	Source      string
}

var Presets = map[domain.Kind]map[string]*Preset{
	domain.Atom: {
		"hydrogen": {
			Domain: domain.Atom, Description: "one electron on the first shell",
			Source: "ElementName ::= H\nNumberOfTracks ::= 1\nNumberOfElectron ::= 1/1\n",
		},
		"carbon": {
			Domain: domain.Atom, Description: "2/4 ground state",
			Source: "ElementName ::= C\nNumberOfTracks ::= 2\nNumberOfElectron ::= 1/2;2/4\n",
		},
		"neon": {
			Domain: domain.Atom, Description: "closed second shell",
			Source: "ElementName ::= Ne\nNumberOfTracks ::= 2\nNumberOfElectron ::= 1/2;2/8\n",
		},
		"sodium": {
			Domain: domain.Atom, Description: "single valence electron",
			Source: "ElementName ::= Na\nNumberOfTracks ::= 3\nNumberOfElectron ::= 1/2;2/8;3/1\n",
		},
	},
	domain.Stellar: {
		"inner": {
			Domain: domain.Stellar, Description: "the sun and the four rocky planets",
			Source: `Stellar ::= <Sun,6.96392e5,1.9885e30>
Planet ::= <Mercury,Solid,Gray,2439.7,5.79e7,47.36,CCW,0>
Planet ::= <Venus,Solid,Yellow,6051.8,1.082e8,35.02,CW,45>
Planet ::= <Earth,Solid,Blue,6378.137,1.496e8,29.78,CCW,90>
Planet ::= <Mars,Solid,Red,3396.2,2.279e8,24.07,CCW,135>
`,
		},
		"giants": {
			Domain: domain.Stellar, Description: "the sun and the gas giants",
			Source: `Stellar ::= <Sun,6.96392e5,1.9885e30>
Planet ::= <Jupiter,Gas,Orange,69911,7.785e8,13.07,CCW,0>
Planet ::= <Saturn,Gas,Yellow,58232,1.4335e9,9.68,CCW,90>
Planet ::= <Uranus,Gas,Cyan,25362,2.8725e9,6.8,CCW,180>
Planet ::= <Neptune,Gas,Blue,24622,4.4951e9,5.43,CCW,270>
`,
		},
	},
	domain.Social: {
		"small": {
			Domain: domain.Social, Description: "a central user with three rings of friends",
			Source: `CentralUser ::= <Alex,30,M>
Friend ::= <Beth,28,F>
Friend ::= <Carl,35,M>
Friend ::= <Dana,24,F>
Friend ::= <Evan,41,M>
Friend ::= <Fay,19,F>
SocialTie ::= <Alex,Beth,0.9>
SocialTie ::= <Alex,Carl,0.6>
SocialTie ::= <Beth,Dana,0.5>
SocialTie ::= <Carl,Dana,0.3>
SocialTie ::= <Dana,Evan,0.8>
`,
		},
		"lonely": {
			Domain: domain.Social, Description: "friends nobody links to the center",
			Source: `CentralUser ::= <Sam,50,M>
Friend ::= <Tia,47,F>
Friend ::= <Uma,52,F>
SocialTie ::= <Tia,Uma,0.4>
`,
		},
	},
}

func GetPreset(kind domain.Kind, name string) *Preset {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	p, ok := kindPresets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the preset names of kind in alphabetical order.
func ListPresets(kind domain.Kind) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
