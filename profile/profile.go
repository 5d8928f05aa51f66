package profile

// Tag is the build tag that enables profiling, also used as the name of the
// default output directory.
const Tag = "pprof"

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Config describes a profiling session.
type Config struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log output
}

// Start begins profiling as described by c.
// It returns a no-op [Stopper] when c.Mode is empty, unknown, or profiling
// is not compiled in.
func (c Config) Start() Stopper {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c)
}

// Enabled reports whether profiling is compiled in.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}
