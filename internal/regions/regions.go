// Package regions defines the fixed set of isolation regions and token parsing.
// Every operation that accepts a region token must pass through Parse before
// any store handle is resolved.
package regions

// Region selects which physical store instance serves a request.
type Region string

const (
	Russia Region = "russia"
	Dubai  Region = "dubai"
)

// All lists every supported region in declaration order.
var All = []Region{Russia, Dubai}

// Parse validates a region token against the closed region set.
// Returns ErrInvalidRegion for any other value.
func Parse(token string) (Region, error) {
	switch Region(token) {
	case Russia:
		return Russia, nil
	case Dubai:
		return Dubai, nil
	default:
		return "", ErrInvalidRegion
	}
}

func (r Region) String() string {
	return string(r)
}
