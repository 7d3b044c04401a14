package entity

import "strings"

// CityCode is the short identifier of an airport-serving city, e.g. "BJS"
type CityCode string

// NormalizeCityCode trims and upper-cases a raw city code
func NormalizeCityCode(raw string) CityCode {
	return CityCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// NormalizeCityCodes normalizes a list of raw codes into a set.
// Blank entries are dropped and duplicates keep their first position.
func NormalizeCityCodes(raw []string) []CityCode {
	seen := make(map[CityCode]struct{}, len(raw))
	codes := make([]CityCode, 0, len(raw))

	for _, r := range raw {
		code := NormalizeCityCode(r)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}

		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes
}

func (c CityCode) String() string {
	return string(c)
}
