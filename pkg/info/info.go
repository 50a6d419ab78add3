// Package info carries build metadata and the per-run instance id.
package info

import (
	"github.com/google/uuid"
)

var (
	Version    = "0.0.0"
	Dist       = "1"
	GitRev     = "000000"
	BuildTime  = "2000-01-01_00:00:00"
	InstanceID = uuid.New().String()
)
