package command

import (
	"gridbase/expr"
	"gridbase/rules"
)

// Env is the ambient dependency set every command body may draw on,
// injected rather than reached for globally so tests can substitute a
// fixed Clock and a scratch DataDir. Modeled on the teacher's
// Database carrying its eventStore/catalog/indexes as fields rather
// than package-level state.
type Env struct {
	DataDir string
	Clock   expr.Clock
	Rules   *rules.Cache
}

// DefaultEnv returns an Env backed by the system clock and a fresh
// rules cache, for production callers.
func DefaultEnv(dataDir string) Env {
	return Env{DataDir: dataDir, Clock: expr.SystemClock{}, Rules: rules.NewCache()}
}
