package spinor

import "strconv"

// Errno is the stable error taxonomy shared by the Driver, the SPI engine
// model, and the flash device model. Values are fixed so they can cross a
// register or wire boundary as plain integers.
type Errno int32

const (
	OK     Errno = 0
	EInval Errno = -1
	EIO    Errno = -2
	EBusy  Errno = -3
	ETime  Errno = -4
	EOOB   Errno = -5
)

func (e Errno) Error() string {
	switch e {
	case OK:
		return "ok"
	case EInval:
		return "invalid argument"
	case EIO:
		return "controller did not make progress"
	case EBusy:
		return "device busy"
	case ETime:
		return "operation timed out"
	case EOOB:
		return "address out of bounds"
	default:
		return "errno " + strconv.Itoa(int(e))
	}
}
