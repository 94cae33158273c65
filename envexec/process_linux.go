package envexec

import (
	"os"
	"syscall"
)

func processStats(ps *os.ProcessState) (signal int, memory Size) {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		signal = int(ws.Signal())
	}
	if ru, ok := ps.SysUsage().(*syscall.Rusage); ok {
		// maxrss in KiB on linux
		memory = Size(ru.Maxrss) << 10
	}
	return
}
