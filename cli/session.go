package cli

import (
	"io"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	goutils "go.viam.com/utils"

	"github.com/ipcam/camhal/chipid"
	"github.com/ipcam/camhal/config"
	"github.com/ipcam/camhal/hal"
	"github.com/ipcam/camhal/logging"
)

const defaultConfigPath = config.DefaultPath

// session is everything a command needs: the config, a logger, the detected identity, and the
// bound HAL.
type session struct {
	conf   *config.Config
	logger logging.Logger
	id     chipid.Identity
	ops    *hal.Ops
	logs   io.Closer
}

func newSession(c *cli.Context) (*session, error) {
	conf, err := config.Read(c.String(generalFlagConfig))
	if err != nil {
		return nil, errors.Wrap(err, "cannot load config")
	}
	level := conf.Level(c.Bool(generalFlagDebug))
	var (
		logger logging.Logger
		logs   io.Closer
	)
	if conf.LogFile != "" {
		logger, logs = logging.NewRotatingLogger("camhal", level, conf.LogFile)
	} else {
		logger = logging.NewLogger("camhal")
		logger.SetLevel(level)
	}

	id, err := chipid.Detect(conf.SysRoot())
	if err != nil {
		// Carry on with an empty identity; commands that only need the kernel still work.
		logger.Warnw("could not identify the SoC", "error", err)
	}
	ops, err := hal.Setup(logger, id, conf.Env(logger))
	if err != nil && !errors.Is(err, hal.ErrUnknownVendor) {
		if logs != nil {
			goutils.UncheckedError(logs.Close())
		}
		return nil, err
	}
	return &session{conf: conf, logger: logger, id: id, ops: ops, logs: logs}, nil
}

func (s *session) close() {
	if s.ops.Has(hal.CapCleanup) {
		goutils.UncheckedError(s.ops.Cleanup())
	}
	goutils.UncheckedError(s.logger.Sync())
	if s.logs != nil {
		goutils.UncheckedError(s.logs.Close())
	}
}
