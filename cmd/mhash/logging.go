package main

import (
	"github.com/streamingfast/logging"
)

var zlog, tracer = logging.RootLogger("mhash", "github.com/unkn0wn-root/mhash/cmd/mhash")
