package logsvc

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/session"
)

// ZapLogger is the structured console logger used in debug mode.
type ZapLogger struct {
	z *zap.Logger
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

// NewDevelopmentZapLogger returns a ZapLogger writing human friendly logs to stderr.
func NewDevelopmentZapLogger(name string) (*ZapLogger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(z.Named(name)), nil
}

// expected fmt: msg | error, map[string]interface{}, session.Identity
func (l ZapLogger) fields(args []interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(args))
	var nErrs, nArgs int
	for _, arg := range args {
		switch a := arg.(type) {
		case session.Identity:
			fields = append(fields, zap.String("user", a.DisplayName), zap.Stringer("role", a.Role))
		case error:
			if nErrs == 0 {
				fields = append(fields, zap.Error(a))
			} else {
				fields = append(fields, zap.NamedError(fmt.Sprintf("error%d", nErrs), a))
			}
			nErrs++
		case map[string]interface{}:
			keys := make([]string, 0, len(a))
			for k := range a {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fields = append(fields, zap.Any(k, a[k]))
			}
		default:
			fields = append(fields, zap.Any(fmt.Sprintf("arg%d", nArgs), a))
			nArgs++
		}
	}
	return fields
}

func (l ZapLogger) Debug(msg string, args ...interface{}) { l.z.Debug(msg, l.fields(args)...) }
func (l ZapLogger) Info(msg string, args ...interface{})  { l.z.Info(msg, l.fields(args)...) }
func (l ZapLogger) Warn(msg string, args ...interface{})  { l.z.Warn(msg, l.fields(args)...) }
func (l ZapLogger) Error(msg string, args ...interface{}) { l.z.Error(msg, l.fields(args)...) }
func (l ZapLogger) Fatal(msg string, args ...interface{}) { l.z.Fatal(msg, l.fields(args)...) }

// Sync flushes buffered logs.
func (l ZapLogger) Sync() error {
	return l.z.Sync()
}
