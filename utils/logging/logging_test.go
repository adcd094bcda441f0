package logging

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	defer SetLogger(New(0))

	var got []string
	SetLogger(logr.New(&sink{msgs: &got}))

	Named("matrix").Info("row reduce", "rows", 4)
	Logger().V(1).Info("trace")

	require.Equal(t, []string{"matrix: row reduce"}, got)
}

func TestNew(t *testing.T) {
	defer stdr.SetVerbosity(stdr.SetVerbosity(0))
	for v, want := range map[int]int{-1: 0, 0: 0, 1: 1, 2: 2, 5: 2} {
		New(v)
		require.Equal(t, want, stdr.SetVerbosity(0), "v=%d", v)
	}
}

type sink struct {
	name string
	msgs *[]string
}

func (s *sink) Init(logr.RuntimeInfo)   {}
func (s *sink) Enabled(level int) bool { return level == 0 }
func (s *sink) Info(_ int, msg string, _ ...interface{}) {
	if s.name != "" {
		msg = s.name + ": " + msg
	}
	*s.msgs = append(*s.msgs, msg)
}
func (s *sink) Error(err error, msg string, _ ...interface{}) {
	*s.msgs = append(*s.msgs, msg+": "+err.Error())
}
func (s *sink) WithValues(...interface{}) logr.LogSink { return s }
func (s *sink) WithName(name string) logr.LogSink {
	return &sink{name: name, msgs: s.msgs}
}
