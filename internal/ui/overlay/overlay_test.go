package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func bgBlock(w, h int) string {
	lines := make([]string, h)
	for i := range lines {
		lines[i] = strings.Repeat(".", w)
	}
	return strings.Join(lines, "\n")
}

func TestPlace_CenterOverwritesMiddle(t *testing.T) {
	bg := bgBlock(10, 5)
	out := Place(Config{Width: 10, Height: 5, Position: Center}, "XX", bg)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "....XX....", lines[2])
	require.Equal(t, "..........", lines[0])
	require.Equal(t, "..........", lines[4])
}

func TestPlace_BottomRespectsPadY(t *testing.T) {
	bg := bgBlock(8, 6)
	out := Place(Config{Width: 8, Height: 6, Position: Bottom, PadY: 1}, "toast", bg)

	lines := strings.Split(out, "\n")
	require.Contains(t, lines[4], "toast")
	require.Equal(t, "........", lines[5])
}

func TestPlace_TopRespectsPadY(t *testing.T) {
	bg := bgBlock(8, 6)
	out := Place(Config{Width: 8, Height: 6, Position: Top, PadY: 2}, "hi", bg)

	lines := strings.Split(out, "\n")
	require.Equal(t, "........", lines[0])
	require.Contains(t, lines[2], "hi")
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 6, Height: 4, Position: Center}, "ab", "..")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	require.Contains(t, lines[1], "ab")
}

func TestPlace_OversizedForegroundClampsToOrigin(t *testing.T) {
	bg := bgBlock(4, 2)
	out := Place(Config{Width: 4, Height: 2, Position: Center}, "wider-than-bg", bg)

	lines := strings.Split(out, "\n")
	require.True(t, strings.HasPrefix(lines[0], "wider-than-bg") || strings.HasPrefix(lines[1], "wider-than-bg"))
}

func TestPlace_PreservesBackgroundRightOfOverlay(t *testing.T) {
	bg := "abcdefghij"
	out := Place(Config{Width: 10, Height: 1, Position: Center}, "XX", bg)

	require.Equal(t, "abcdXXghij", out)
}
