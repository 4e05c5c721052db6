package whisper_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dentalbot/scribe/pkg/provider"
	"github.com/dentalbot/scribe/pkg/provider/whisper"

	"github.com/stretchr/testify/require"
)

// fakeCLI writes a shell script standing in for whisper-cli. The script
// records the staged audio path in a side file so the test can check cleanup.
func fakeCLI(t *testing.T, body string) (bin string, record string) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a posix shell")
	}

	dir := t.TempDir()

	bin = filepath.Join(dir, "whisper-cli")
	record = filepath.Join(dir, "staged")

	script := "#!/bin/sh\n" +
		"echo \"$4\" > " + record + "\n" +
		body + "\n"

	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))

	return bin, record
}

func stagedPath(t *testing.T, record string) string {
	data, err := os.ReadFile(record)
	require.NoError(t, err)

	return strings.TrimSpace(string(data))
}

func TestTranscribe(t *testing.T) {
	bin, record := fakeCLI(t, `printf ' The patient is\n forty two years old.\n\n'`)

	p, err := whisper.NewTranscriber("models/ggml-tiny.bin", whisper.WithBinary(bin))
	require.NoError(t, err)

	result, err := p.Transcribe(context.Background(), provider.File{
		Name:    "recording.webm",
		Content: []byte("audio"),
	}, nil)

	require.NoError(t, err)
	require.Equal(t, "The patient is forty two years old.", result.Text)
	require.Equal(t, "ggml-tiny.bin", result.Model)

	staged := stagedPath(t, record)
	require.True(t, strings.HasSuffix(staged, ".webm"), staged)

	_, err = os.Stat(staged)
	require.True(t, os.IsNotExist(err), "staged audio should be removed")
}

func TestTranscribeFailure(t *testing.T) {
	bin, record := fakeCLI(t, `echo "failed to load model" >&2; exit 1`)

	p, err := whisper.NewTranscriber("models/missing.bin", whisper.WithBinary(bin))
	require.NoError(t, err)

	_, err = p.Transcribe(context.Background(), provider.File{
		Content: []byte("audio"),
	}, nil)

	require.ErrorContains(t, err, "failed to load model")

	_, err = os.Stat(stagedPath(t, record))
	require.True(t, os.IsNotExist(err), "staged audio should be removed on failure")
}

func TestTranscribeMissingBinary(t *testing.T) {
	p, err := whisper.NewTranscriber("models/ggml-tiny.bin", whisper.WithBinary(filepath.Join(t.TempDir(), "nope")))
	require.NoError(t, err)

	_, err = p.Transcribe(context.Background(), provider.File{
		Name:    "a.wav",
		Content: []byte("audio"),
	}, nil)

	require.Error(t, err)
}
