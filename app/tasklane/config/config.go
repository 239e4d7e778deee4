// Package config carries the composed dependencies for the tasklane api.
package config

import (
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/sdk/logger"
)

// Tasklane is the composition root configuration handed to the route
// registration.
type Tasklane struct {
	Build    string
	Log      *logger.Logger
	Usecases *usecases.Usecases
}
