package launcher

import (
	"io/ioutil"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	require.Equal(t, log.FatalLevel, logLevel(-3))
	require.Equal(t, log.FatalLevel, logLevel(0))
	require.Equal(t, log.InfoLevel, logLevel(3))
	require.Equal(t, log.TraceLevel, logLevel(5))
	require.Equal(t, log.TraceLevel, logLevel(9))
}

func TestSetupLogging(t *testing.T) {
	require := require.New(t)

	logger := log.New()
	logger.SetOutput(ioutil.Discard)

	require.NoError(setupLogging(logger, LoggingConfig{Verbosity: 4, Format: "json"}))
	require.Equal(log.DebugLevel, logger.Level)
	require.IsType(&log.JSONFormatter{}, logger.Formatter)

	require.NoError(setupLogging(logger, LoggingConfig{Verbosity: 2, Format: "text", Color: true}))
	require.Equal(log.WarnLevel, logger.Level)
	require.True(logger.Formatter.(*log.TextFormatter).ForceColors)

	require.Error(setupLogging(logger, LoggingConfig{Format: "xml"}))
	require.Error(setupLogging(logger, LoggingConfig{SentryDSN: "not a dsn"}))
}
