//go:build !windows && !no_cgo

package smoothing

import (
	"context"
	"testing"

	"go.viam.com/test"

	"go.viam.com/wayfinder/logging"
)

func TestNloptOptimizeSCurve(t *testing.T) {
	opts := DefaultOptions()
	opts.Backend = NloptBackend

	wps := sCurve()
	out, res, err := Optimize(context.Background(), wps, opts, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Cost, test.ShouldBeLessThanOrEqualTo, res.InitialCost)
	test.That(t, out, test.ShouldHaveLength, len(wps))
	test.That(t, out[0], test.ShouldResemble, wps[0])
	test.That(t, out[3], test.ShouldResemble, wps[3])
}
