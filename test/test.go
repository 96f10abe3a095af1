package test

import (
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConfigLogging quiets the global logger so test output stays readable.
func ConfigLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// CallWatcher records invocations made against a mock so tests can assert
// how many times each function was hit. Calls are keyed by the short name
// of the recording function.
type CallWatcher struct {
	functionCalls map[string][][]interface{}
}

func NewCallWatcher() *CallWatcher {
	return &CallWatcher{functionCalls: make(map[string][][]interface{})}
}

func (w *CallWatcher) GetCall(funcName string) [][]interface{} {
	return w.functionCalls[funcName]
}

func (w *CallWatcher) GetCallCount(funcName string) int {
	return len(w.functionCalls[funcName])
}

func (w *CallWatcher) AddCall(args ...interface{}) {
	pc := make([]uintptr, 15)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	frame, _ := frames.Next()
	funcName := shortFuncName(frame.Func.Name())

	calls := w.functionCalls[funcName]
	w.functionCalls[funcName] = append(calls, args)
}

func (w *CallWatcher) VerifyCount(funcName string, count int, t *testing.T) {
	if got := w.GetCallCount(funcName); got != count {
		t.Errorf("unexpected call count for %s got=%d want=%d", funcName, got, count)
	}
}

// shortFuncName trims "stocktrack/db/artrepo.MockRepo.Create" down to
// "Create".
func shortFuncName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
