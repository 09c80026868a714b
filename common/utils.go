package common

import "github.com/go-gl/mathgl/mgl32"

type Vec3 = mgl32.Vec3

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// DoWhile runs do once and then keeps running it while while() holds.
// do returning true stops the loop early.
func DoWhile(do func() (stop bool), while func() bool) {
	if do() {
		return
	}
	for while() {
		if do() {
			return
		}
	}
}

