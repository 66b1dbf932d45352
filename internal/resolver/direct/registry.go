package direct

import (
	"context"

	"albumlink/internal/resolver"
)

// Resolver resolves a single domestic platform.
type Resolver interface {
	// Key returns the stable short platform code (e.g. "melon").
	Key() string
	// Name returns the display name shown to operators.
	Name() string
	// Resolve searches the platform for the release. Failures are absorbed
	// into a found=false result; Resolve never returns an error.
	Resolve(ctx context.Context, query resolver.ReleaseQuery) resolver.ResolvedLink
}

// Registry returns the fixed set of domestic platform resolvers, in the
// order results are reported. Passing empty base URLs selects the production
// endpoints; tests substitute their own.
func Registry(client *Client) []Resolver {
	return []Resolver{
		NewMelon(client, ""),
		NewGenie(client, ""),
		NewBugs(client, ""),
		NewVibe(client, ""),
		NewFlo(client, ""),
	}
}
