package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_WritesDatedFile(t *testing.T) {
	dir := t.TempDir()

	file, err := Setup(LogConfig{Level: "debug", Format: "json", Dir: dir})
	require.NoError(t, err)
	require.NotNil(t, file)
	defer file.Close()

	l := WithComponent("test")
	l.Info().Msg("hello")

	want := filepath.Join(dir, "log_"+time.Now().Format("2006-01-02")+".log")
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), "hello")
}

func TestSetup_Stdout(t *testing.T) {
	file, err := Setup(DefaultConfig())

	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestSetup_BadLevel(t *testing.T) {
	_, err := Setup(LogConfig{Level: "loud"})

	assert.Error(t, err)
}
