package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// recoverSession turns a panic on the session goroutine into an error, logs
// the stack and puts a short notice on the status strip.
func recoverSession(log logrus.FieldLogger, s *Session, errp *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := string(debug.Stack())
	entry := log.WithField("panic", v)
	for _, line := range strings.Split(stack, "\n") {
		if line == "" {
			continue
		}
		entry.Debug(line)
	}
	entry.Error("session: panic")

	s.setStatus("montepi panic:", fmt.Sprint(v))
	_ = s.scr.Update()

	*errp = fmt.Errorf("session panic: %v", v)
}
