package ioctl

import "unsafe"

// Request number fields as laid out by the asm-generic ioctl.h macros.
const (
	nrShift   = 0
	typeShift = 8
	sizeShift = 16
	dirShift  = 30

	dirWrite = 1
	dirRead  = 2
)

func request(dir, typ, nr, size uintptr) uint {
	return uint(dir<<dirShift | size<<sizeShift | typ<<typeShift | nr<<nrShift)
}

// IOR is _IOR(typ, nr, size).
func IOR(typ byte, nr uint8, size uintptr) uint {
	return request(dirRead, uintptr(typ), uintptr(nr), size)
}

// IOW is _IOW(typ, nr, size).
func IOW(typ byte, nr uint8, size uintptr) uint {
	return request(dirWrite, uintptr(typ), uintptr(nr), size)
}

const ptrSize = unsafe.Sizeof(uintptr(0))

var (
	// GuitarReaderRead reads the controller register as an int.
	GuitarReaderRead = IOR('q', 1, ptrSize)

	// FramebufferUpdate hands the VGA driver a pointer to a packet of pixel
	// words.
	FramebufferUpdate = IOW('q', 1, ptrSize)
)
