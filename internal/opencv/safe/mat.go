package safe

import "gocv.io/x/gocv"

// Scope owns the Mats created during one operation and closes them together.
// A Mat handed to the caller must be released from the scope with Keep.
type Scope struct {
	mats []*gocv.Mat
}

func NewScope() *Scope {
	return &Scope{}
}

// NewMat allocates an empty Mat owned by the scope.
func (s *Scope) NewMat() *gocv.Mat {
	m := gocv.NewMat()
	s.mats = append(s.mats, &m)
	return &m
}

// Track takes ownership of a Mat created elsewhere.
func (s *Scope) Track(m gocv.Mat) *gocv.Mat {
	s.mats = append(s.mats, &m)
	return &m
}

// TrackAll takes ownership of every Mat in ms, e.g. the result of gocv.Split.
func (s *Scope) TrackAll(ms []gocv.Mat) []gocv.Mat {
	for i := range ms {
		s.mats = append(s.mats, &ms[i])
	}
	return ms
}

// Keep removes m from the scope so Close leaves it open.
func (s *Scope) Keep(m *gocv.Mat) {
	for i, owned := range s.mats {
		if owned == m {
			s.mats = append(s.mats[:i], s.mats[i+1:]...)
			return
		}
	}
}

// Close releases every Mat still owned by the scope.
func (s *Scope) Close() {
	for _, m := range s.mats {
		if m != nil {
			m.Close()
		}
	}
	s.mats = nil
}

// Len reports how many Mats the scope still owns.
func (s *Scope) Len() int {
	return len(s.mats)
}
