package entity

import (
	"fmt"
	"strings"
)

// Destination is one entry of a city's listing page
type Destination struct {
	Name string // display label, e.g. "北京-上海"
	Link string // href of the listing anchor, e.g. "schedule/bjs.sha.html"
}

// ParseDestinationCode derives the destination city code from a listing link.
// The code is the second dot-delimited segment of the link.
func ParseDestinationCode(link string) (CityCode, error) {
	parts := strings.Split(link, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: link %q has no destination segment", ErrParse, link)
	}

	code := NormalizeCityCode(parts[1])
	if code == "" {
		return "", fmt.Errorf("%w: link %q has an empty destination segment", ErrParse, link)
	}

	return code, nil
}
