// Package instance names the running process for logs.
package instance

import "github.com/angelmondragon/luxe-storefront/pkg/env"

const defaultID = "local"

// GetID returns the instance identifier from LUXE_INSTANCE_ID, the platform dyno name or
// the hostname, in that order.
func GetID() string {
	if id := env.First("LUXE_INSTANCE_ID", "DYNO", "HOSTNAME"); id != "" {
		return id
	}
	return defaultID
}
