//go:build windows || no_cgo

package smoothing

import (
	"github.com/pkg/errors"

	"go.viam.com/wayfinder/logging"
)

// newNloptMinimizer is not supported on no_cgo builds.
func newNloptMinimizer(logger logging.Logger) (Minimizer, error) {
	return nil, errors.New("the nlopt backend is not supported on this build")
}
