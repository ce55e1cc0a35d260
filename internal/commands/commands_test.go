package commands

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("  /bloom -strength 2  ")
	require.True(t, ok)
	assert.Equal(t, []string{"bloom", "-strength", "2"}, args)

	args, ok = Parse("play")
	assert.True(t, ok)
	assert.Equal(t, []string{"play"}, args)

	_, ok = Parse("   ")
	assert.False(t, ok)
}

func TestParseQuoting(t *testing.T) {
	for _, tc := range []struct {
		line string
		want []string
		ok   bool
	}{
		{`exposure -value "1.4"`, []string{"exposure", "-value", "1.4"}, true},
		{`/bloom -strength '2'`, []string{"bloom", "-strength", "2"}, true},
		{`say "two words"`, []string{"say", "two words"}, true},
		{`exposure -value "1.4`, nil, false},
	} {
		t.Run(tc.line, func(t *testing.T) {
			args, ok := Parse(tc.line)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, args)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	var got []float64
	r.Register("exposure", "set exposure", func(fs *flag.FlagSet) func() error {
		v := fs.Float64("value", 1, "exposure")
		return func() error {
			got = append(got, *v)
			return nil
		}
	})
	played := 0
	r.RegisterFunc("play", "resume", func() error {
		played++
		return nil
	})

	require.NoError(t, r.Execute([]string{"exposure", "-value", "1.5"}))
	require.NoError(t, r.Execute([]string{"exposure"}))
	assert.Equal(t, []float64{1.5, 1}, got, "flags reset between lines")
	require.NoError(t, r.Execute([]string{"play"}))
	assert.Equal(t, 1, played)

	assert.EqualError(t, r.Execute(nil), "missing subcommand")
	assert.EqualError(t, r.Execute([]string{"warp"}), "unknown command: warp")
	assert.Error(t, r.Execute([]string{"exposure", "-value", "bright"}))
	assert.Error(t, r.Execute([]string{"play", "-fast"}))

	assert.Equal(t, []string{"exposure - set exposure", "play - resume"}, r.Help())
}
