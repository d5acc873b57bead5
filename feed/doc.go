// Package feed discovers article links in RSS and Atom feeds,
// filtering out newsletter plumbing like unsubscribe links, tracking
// redirects and social profiles.
package feed
