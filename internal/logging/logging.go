// Package logging wraps github.com/go-kit/kit/log with a per-subsystem name
// and an exclude list, the way the lexer/parser/generator pipeline this
// repo is adapted from wraps its own logger.
package logging

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	kitlog "github.com/go-kit/kit/log"
)

var spd = spew.ConfigState{ContinueOnMethod: true, Indent: "\t", MaxDepth: 0}

// Config names and configures a Logger.
type Config struct {
	Name      string
	Caller    bool
	CallDepth int
	Logger    kitlog.Logger
	Excludes  []string
}

// Logger is a named, optionally-excluded wrapper around a kitlog.Logger.
type Logger struct {
	name      string
	caller    bool
	callDepth int
	log       kitlog.Logger
	excludes  []string
}

// New returns a Logger built from conf. A nil conf.Logger defaults to a
// logger that discards all output, so subsystems can be constructed without
// a caller wiring up logging explicitly.
func New(conf Config) Logger {
	l := conf.Logger
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	return Logger{
		name:      conf.Name,
		caller:    conf.Caller,
		callDepth: conf.CallDepth,
		log:       l,
		excludes:  conf.Excludes,
	}
}

func (l Logger) isExcluded() bool {
	for _, v := range l.excludes {
		if v == l.name {
			return true
		}
	}
	return false
}

// StdLogger returns the underlying go-kit logger.
func (l Logger) StdLogger() kitlog.Logger { return l.log }

// Named returns a copy of l scoped to a child subsystem name, inheriting the
// excludes list so one exclude config filters every subsystem.
func (l Logger) Named(name string) Logger {
	l2 := l
	l2.name = name
	return l2
}

func (l Logger) withPrefix(extra ...interface{}) kitlog.Logger {
	kv := append([]interface{}{"name", l.name}, extra...)
	if l.caller {
		kv = append(kv, "caller", kitlog.Caller(l.callDepth+1))
	}
	return kitlog.WithPrefix(l.log, kv...)
}

// Msg logs a message to the log context.
func (l Logger) Msg(message string) error {
	if l.isExcluded() {
		return nil
	}
	return l.withPrefix().Log("msg", message)
}

// Msgr logs a message with additional key/value fields.
func (l Logger) Msgr(message string, keyvals ...interface{}) error {
	if l.isExcluded() {
		return nil
	}
	return l.withPrefix("msg", message).Log(keyvals...)
}

// Err logs an error to the log context.
func (l Logger) Err(err error) error {
	if l.isExcluded() {
		return nil
	}
	return l.withPrefix().Log("error", err.Error())
}

// Log satisfies the go-kit Logger interface so a Logger can be passed
// anywhere one is expected.
func (l Logger) Log(keyvals ...interface{}) error {
	if l.isExcluded() {
		return nil
	}
	return l.withPrefix().Log(keyvals...)
}

// Dump logs a spew rendering of v under the "obj" key, with msg set to
// "dump". The leandoc command does not call it.
func (l Logger) Dump(v interface{}) {
	l.Msgr("dump", "obj", spd.Sdump(v))
}

// DumpExit pretty-prints v and terminates the process. Reserved for
// interactive debugging sessions; never called from library code.
func (l Logger) DumpExit(v interface{}) {
	l.Dump(v)
	os.Exit(1)
}
