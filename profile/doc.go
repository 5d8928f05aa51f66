// Package profile starts optional runtime profiling with
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	modreq --pprof-mode cpu --pprof-dir ./profiles parse < ids.txt
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Without the tag, [Modes] is empty and [Config.Start] always returns a
// no-op [Stopper].
package profile
