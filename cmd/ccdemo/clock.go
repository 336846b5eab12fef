package main

import (
	"time"

	"github.com/warpmatrix/ccdemo/internal/cctime"
)

// wallClock implements congestion.Clock over the standard library clock.
type wallClock struct{}

func (wallClock) Now() cctime.Timepoint {
	return cctime.FromTime(time.Now())
}
