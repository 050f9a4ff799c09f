//go:build linux

// Package ioctl wraps the ioctl system call for the device backends.
package ioctl

import (
	"fmt"
	"reflect"
	"syscall"
)

// Mode is the IOCTL direction.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		cmd  = c & 0xffff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) 0x%04x", str, size, uintptr(cmd))
}

// Do executes the ioctl call with a pointer argument, ptr may be nil.
func Do(fd uintptr, command Command, ptr any) error {
	var p uintptr
	if ptr != nil {
		p = reflect.ValueOf(ptr).Pointer()
	}
	return Call(fd, uintptr(command), p)
}

// Call does a plain ioctl system call.
func Call(fd, command, arg uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, command, arg)
	if errno != 0 {
		return fmt.Errorf("%s failed: %w", Command(command), errno)
	}
	return nil
}
