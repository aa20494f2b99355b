//go:build !windows

package main

// enableVirtualTerminal is a no-op; POSIX terminals already speak ANSI.
func enableVirtualTerminal() {}
