package main

import (
	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadPriority = kernel32.NewProc("SetThreadPriority")
)

const threadPriorityHighest = 2

// raisePriority lifts the worker thread above the game's own threads so
// every hook is armed before the engine reaches the patched code.
func raisePriority() {
	procSetThreadPriority.Call(uintptr(windows.CurrentThread()), threadPriorityHighest)
}
