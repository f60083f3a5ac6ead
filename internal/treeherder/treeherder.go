// Package treeherder builds result-set and job submissions and posts them to a Treeherder instance.
package treeherder

import "context"

// Collection is a payload that can be posted to a project endpoint.
type Collection interface {
	// Endpoint is the path segment under /api/project/<project>/.
	Endpoint() string
}

// Client posts collections to the results dashboard.
type Client interface {
	Post(ctx context.Context, c Collection) error
	Name() string
}
