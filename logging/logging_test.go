package logging

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestLevelStrings(t *testing.T) {
	for _, level := range []Level{DEBUG, INFO, WARN, ERROR} {
		parsed, err := LevelFromString(level.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, level)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "loud")

	test.That(t, ERROR.AsZap(), test.ShouldEqual, zapcore.ErrorLevel)
}

func TestObservedSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("hal")

	sub.Infow("vendor selected", "vendor", "novatek")
	test.That(t, logs.FilterMessage("vendor selected").Len(), test.ShouldEqual, 1)
	entry := logs.All()[0]
	test.That(t, entry.LoggerName, test.ShouldEqual, "hal")
	test.That(t, entry.ContextMap()["vendor"], test.ShouldEqual, "novatek")

	logger.SetLevel(WARN)
	test.That(t, sub.GetLevel(), test.ShouldEqual, WARN)
	sub.Debug("dropped")
	test.That(t, logs.FilterMessage("dropped").Len(), test.ShouldEqual, 0)
}

func TestRotatingLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camhal.log")
	logger, closer := NewRotatingLogger("camhal", INFO, path)
	logger.Infow("backend selected", "backend", "gm")
	logger.Debug("hidden")
	//nolint:errcheck
	logger.Sync()
	test.That(t, closer.Close(), test.ShouldBeNil)

	contents, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(contents), test.ShouldContainSubstring, `"msg":"backend selected"`)
	test.That(t, string(contents), test.ShouldContainSubstring, `"backend":"gm"`)
	test.That(t, string(contents), test.ShouldContainSubstring, `"logger":"camhal"`)
	test.That(t, string(contents), test.ShouldNotContainSubstring, "hidden")
}

func TestSyncIgnoresConsoleErrors(t *testing.T) {
	test.That(t, dropConsoleSyncErrors(nil), test.ShouldBeNil)

	stderrSync := &os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.EINVAL}
	ttySync := &os.PathError{Op: "sync", Path: "/dev/stderr", Err: syscall.ENOTTY}
	test.That(t, dropConsoleSyncErrors(stderrSync), test.ShouldBeNil)
	test.That(t, dropConsoleSyncErrors(multierr.Combine(stderrSync, ttySync)), test.ShouldBeNil)

	diskFull := &os.PathError{Op: "sync", Path: "/var/log/camhal.log", Err: syscall.ENOSPC}
	err := dropConsoleSyncErrors(multierr.Combine(stderrSync, diskFull))
	test.That(t, errors.Is(err, syscall.ENOSPC), test.ShouldBeTrue)
	test.That(t, errors.Is(err, syscall.EINVAL), test.ShouldBeFalse)

	test.That(t, NewLogger("camhal").Sync(), test.ShouldBeNil)
}
