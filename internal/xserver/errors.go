package xserver

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	log "github.com/sirupsen/logrus"
)

// ErrorGuard installs a scoped replacement for dynamd.c's global xerror
// handler. Unlike the C original's single static function pointer
// (xerrorxlib, swapped for xerrorstart during startup and restored
// afterward), the guard is a value the caller holds and releases
// explicitly, matching the "scoped type, not a package-level global"
// resolution in SPEC_FULL.md's ambient-stack error-handling section.
type ErrorGuard struct {
	conn     *Conn
	previous xgb.ErrorHandler
}

// isIgnoredXError reports whether err belongs to the BadWindow/BadMatch/
// BadDrawable/BadAccess classes dynamd.c's xerror() tolerates, because the
// window in question may have already been destroyed by the time the
// reply races back (§7's "Soft, mid-operation" error category).
func isIgnoredXError(err xgb.Error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.MatchError, xproto.DrawableError, xproto.AccessError:
		return true
	default:
		return false
	}
}

// Install replaces the connection's error handler with one that swallows
// the races xerror() tolerates and logs anything else, then defers to
// whatever handler preceded it — the translation of §7's "Other X
// errors: log code to stderr and defer to the default library handler".
func (c *Conn) Install() *ErrorGuard {
	g := &ErrorGuard{conn: c, previous: c.XU.Conn().ErrorHandler}
	c.XU.Conn().ErrorHandler = g.handle
	return g
}

func (g *ErrorGuard) handle(err xgb.Error) {
	if isIgnoredXError(err) {
		log.WithFields(log.Fields{"error": err.Error()}).Debug("xserver: ignoring expected X protocol error")
		return
	}
	log.WithFields(log.Fields{"error": err.Error()}).Error("xserver: unexpected X protocol error")
	if g.previous != nil {
		g.previous(err)
	}
}

// Release restores whatever handler (if any) preceded this guard.
func (g *ErrorGuard) Release() {
	g.conn.XU.Conn().ErrorHandler = g.previous
}
