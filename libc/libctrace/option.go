//go:build linux && cgo

package libctrace

import "github.com/sirupsen/logrus"

type Option interface {
	apply(*Tracker)
}

type optionLogger [1]*logrus.Entry

func (o optionLogger) apply(t *Tracker) {
	t.log = o[0]
}

// WithLogger sets the logger every native call is reported to at debug level.
// Ownership violations are reported at warn level.
func WithLogger(log *logrus.Entry) Option {
	return optionLogger{log}
}
