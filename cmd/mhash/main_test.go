package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unkn0wn-root/mhash"
)

func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	return runCmdWithInput(t, "", args...)
}

func runCmdWithInput(t *testing.T, input string, args ...string) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestWriteSums(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, writeSums(out, mhash.Mix, 55, []string{"cat", "tac"}, true))

	assert.Equal(t, "78e38207fa2047b6  cat\n0449465b86415e4c  tac\n", out.String())
}

func TestSumCommand(t *testing.T) {
	out := runCmd(t, "sum", "--seed", "55", "--hex", "cat")
	assert.Equal(t, "78e38207fa2047b6  cat\n", out)

	out = runCmd(t, "sum", "--seed", "55", "--engine", "xxhash", "cat")
	assert.NotContains(t, out, "78e38207fa2047b6")

	out = runCmdWithInput(t, "cat\ntac\n", "sum", "--seed", "55", "--hex")
	assert.Equal(t, "78e38207fa2047b6  cat\n0449465b86415e4c  tac\n", out)

	out = runCmdWithInput(t, "", "sum", "--seed", "55")
	assert.Empty(t, out)
}

func TestSumCommandUnknownEngine(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"sum", "--engine", "md5", "x"})
	assert.ErrorIs(t, root.Execute(), mhash.ErrUnknownEngine)
}

func TestSeedFromEnvironment(t *testing.T) {
	t.Setenv("MHASH_SEED", "55")
	out := runCmd(t, "sum", "--hex", "cat")
	assert.Equal(t, "78e38207fa2047b6  cat\n", out)
}

func TestHashReaderChunkingIndependent(t *testing.T) {
	data := []byte(strings.Repeat("streaming composability ", 500))

	for _, e := range []mhash.Engine{mhash.Mix, mhash.FNV, mhash.XXHash, mhash.XXH3, mhash.Murmur3, mhash.Blake3} {
		whole, n, err := hashReader(e, 7, bytes.NewReader(data))
		require.NoError(t, err)
		assert.EqualValues(t, len(data), n)

		oneByte, _, err := hashReader(e, 7, iotest.OneByteReader(bytes.NewReader(data)))
		require.NoError(t, err)
		assert.Equal(t, whole, oneByte, "engine %s", e.Name())

		halves, _, err := hashReader(e, 7, iotest.HalfReader(bytes.NewReader(data)))
		require.NoError(t, err)
		assert.Equal(t, whole, halves, "engine %s", e.Name())
	}

	// the mixer path equals feeding seed then raw bytes.
	whole, _, err := hashReader(mhash.Mix, 7, bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, mhash.Hash(7, mhash.Raw(data)), whole)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("file body"), 0o644))

	d, n, err := hashFile(mhash.Mix, 3, path)
	require.NoError(t, err)
	assert.EqualValues(t, 9, n)
	assert.Equal(t, mhash.Hash(3, mhash.Raw("file body")), d)

	_, _, err = hashFile(mhash.Mix, 3, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	out := runCmd(t, "file", "--seed", "3", path)
	assert.Contains(t, out, path)
}

func TestFindDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   twinResult
	}{
		{"none", []int64{1, 2, 3, 4}, twinResult{}},
		{"single", []int64{9}, twinResult{}},
		{"adjacent", []int64{5, 5}, twinResult{Found: true, Value: 5, First: 0, Second: 1}},
		// earliest first occurrence wins, not earliest repeat.
		{"earliest first", []int64{7, 3, 3, 7}, twinResult{Found: true, Value: 7, First: 0, Second: 3}},
		{"negative", []int64{-1, 0, 1, -1}, twinResult{Found: true, Value: -1, First: 0, Second: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mhash.DefaultBloomConfig(len(tt.values))
			got, err := findDuplicates(tt.values, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindDuplicatesLarge(t *testing.T) {
	values := make([]int64, 5000)
	for i := range values {
		values[i] = int64(i * 3)
	}
	got, err := findDuplicates(values, mhash.DefaultBloomConfig(len(values)))
	require.NoError(t, err)
	assert.False(t, got.Found)

	values = append(values, 300)
	got, err = findDuplicates(values, mhash.DefaultBloomConfig(len(values)))
	require.NoError(t, err)
	assert.Equal(t, twinResult{Found: true, Value: 300, First: 100, Second: 5000}, got)
}

func TestFindDuplicatesInvalidConfig(t *testing.T) {
	_, err := findDuplicates([]int64{1}, mhash.BloomConfig{})
	assert.ErrorIs(t, err, mhash.ErrInvalidConfig)
}

func TestDupsCommand(t *testing.T) {
	out := runCmd(t, "dups", "4", "8", "15", "16", "23", "42", "15")
	assert.Equal(t, "twin integers found: 15 at positions 2 and 6\n", out)

	out = runCmd(t, "dups", "1", "2")
	assert.Equal(t, "no twin integers\n", out)
}

func TestMeasureAvalanche(t *testing.T) {
	st := measureAvalanche(mhash.Mix, 0, 200, 16, rand.New(rand.NewSource(1)))
	assert.Equal(t, 200*16*8, st.Flips)
	assert.InDelta(t, 32, st.Mean, 3)
	assert.Greater(t, st.StdDev, 0.0)
	assert.LessOrEqual(t, st.Min, st.Max)

	out := runCmd(t, "avalanche", "--trials", "20", "--width", "8")
	assert.Contains(t, out, "engine=mix")
}

func TestOwnersCommand(t *testing.T) {
	out := runCmd(t, "owners", "--nodes", "a, b,c", "--replicas", "2", "user:1", "user:2")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		assert.Len(t, strings.Split(fields[1], ","), 2)
	}

	assert.Equal(t, []string{"a", "b", "c"}, splitNodes(" a,,b , c,"))
}
