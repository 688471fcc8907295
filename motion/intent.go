package motion

import "github.com/go-gl/mathgl/mgl64"

// JumpDeadzone is the squared intent length below which a jump is vertical only.
const JumpDeadzone = 0.005

// ProjectInput maps raw axes onto the camera's horizontal basis. The result
// never exceeds unit length.
func ProjectInput(right, forward mgl64.Vec3, horizontal, vertical float64) mgl64.Vec3 {
	right = flatten(right)
	forward = flatten(forward)
	dir := right.Mul(horizontal).Add(forward.Mul(vertical))
	if dir.LenSqr() > 1 {
		dir = dir.Normalize()
	}
	return dir
}

func flatten(v mgl64.Vec3) mgl64.Vec3 {
	v[1] = 0
	if v.LenSqr() == 0 {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

// JumpRequest is a jump waiting for the next physics step. The direction is
// locked when the request is made.
type JumpRequest struct {
	pending   bool
	direction mgl64.Vec3
}

// Request records a jump along intent. A request that is already pending keeps
// its original direction.
func (j *JumpRequest) Request(intent mgl64.Vec3) bool {
	if j == nil || j.pending {
		return false
	}
	j.pending = true
	if intent.LenSqr() > JumpDeadzone {
		j.direction = intent.Normalize()
	} else {
		j.direction = mgl64.Vec3{}
	}
	return true
}

func (j *JumpRequest) Cancel() {
	if j == nil {
		return
	}
	j.pending = false
	j.direction = mgl64.Vec3{}
}

func (j *JumpRequest) Pending() bool {
	return j != nil && j.pending
}

func (j *JumpRequest) Direction() mgl64.Vec3 {
	if j == nil {
		return mgl64.Vec3{}
	}
	return j.direction
}
