//go:build linux

package ioctl

import (
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	tests := []struct {
		command Command
		want    string
	}{
		{0x4611, "ioctl (0 bytes) 0x4611"},
		{Command(Write)<<30 | 4<<16 | 0x12, "ioctl write (4 bytes) 0x0012"},
		{Command(Read)<<30 | 160<<16 | 0x4600, "ioctl read (160 bytes) 0x4600"},
		{Command(Read|Write)<<30 | 8<<16 | 0x01, "ioctl write read (8 bytes) 0x0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.command.String())
	}
}

func TestCallError(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "ioctl")
	require.NoError(t, err)
	defer f.Close()

	// regular files don't implement framebuffer requests
	err = Do(f.Fd(), 0x4600, new([160]byte))
	require.Error(t, err)
	assert.True(t, errors.Is(err, syscall.ENOTTY))
	assert.Contains(t, err.Error(), "0x4600")
}
