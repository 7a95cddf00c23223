package settings

import (
	"time"
)

const (
	LOOP_DELAY         = 20 * time.Millisecond
	EXTENDED_OUT_DELAY = 1 * time.Second
	INPUT_TIMEOUT      = 500 * time.Millisecond
)
