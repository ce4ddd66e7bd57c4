package constraint

import "github.com/pgEdge/dqcheck/internal/dqerr"

func dqerrConfig(op, msg string) error { return dqerr.Config(op, msg) }

func dqerrConfigf(op, format string, args ...any) error { return dqerr.Configf(op, format, args...) }
