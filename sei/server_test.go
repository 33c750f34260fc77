package sei

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbeck/sower/kalah"
	"github.com/nbeck/sower/kgn"
)

func runSession(t *testing.T, script string) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	e := NewEngine(strings.NewReader(script), &out)
	err := e.Run(context.Background())
	text := strings.TrimSpace(out.String())
	if text == "" {
		return nil, err
	}
	return strings.Split(text, "\n"), err
}

func TestEngineHandshake(t *testing.T) {
	lines, err := runSession(t, "sei\nquit\n")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "id name Sower", lines[0])
	assert.Equal(t, "seiok", lines[2])
}

func TestEngineSearch(t *testing.T) {
	lines, err := runSession(t,
		"sei\nseinewgame\nposition startpos moves c\ngo depth 3\nquit\n")
	require.NoError(t, err)
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "bestmove "), "last line: %q", last)
	mv, err := kgn.ParseMove(strings.TrimPrefix(last, "bestmove "))
	require.NoError(t, err)
	// south already moved, so the engine answers for north
	assert.Equal(t, kalah.North, mv.Player)

	info := lines[len(lines)-2]
	assert.True(t, strings.HasPrefix(info, "info "), "info line: %q", info)
}

func TestEnginePositionKGN(t *testing.T) {
	lines, err := runSession(t,
		"seinewgame\nposition kgn 1,0,0,0,0,0,0,0/0,0,0,0,0,0,3,0 0-0 s\ngo depth 1\nquit\n")
	require.NoError(t, err)
	assert.Equal(t, "bestmove a", lines[len(lines)-1])
}

func TestEngineNoMove(t *testing.T) {
	// south to move with an empty row: the game is over
	lines, err := runSession(t,
		"seinewgame\nposition kgn 0,0,0,0,0,0,0,0/4,4,4,4,4,4,4,4 0-0 s\ngo depth 2\nquit\n")
	require.NoError(t, err)
	assert.Equal(t, "bestmove -", lines[len(lines)-1])
}

func TestEngineIsReady(t *testing.T) {
	lines, err := runSession(t, "isready\nquit\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"readyok"}, lines)
}

func TestEngineErrors(t *testing.T) {
	cases := []string{
		"bogus\n",
		"go depth 3\n",                    // no position
		"position startpos moves z9\n",    // unparseable move
		"position startpos moves a a\n",   // second 'a' is empty
		"seinewgame -1\n",                 // bad pit count
		"position kgn 4,4/4,4 0-0 s\ngo\n" +
			"go depth 0\n", // bad depth
	}
	for _, script := range cases {
		_, err := runSession(t, script)
		assert.Error(t, err, "script %q", script)
	}
}
