package article

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	require.Equal(t, "fed raises rates", NormalizeTitle("Fed raises rates"))
	require.Equal(t, "fed raises rates", NormalizeTitle("  fed raises rates  "))
	require.Equal(t, NormalizeTitle("Fed raises rates"), NormalizeTitle("fed raises rates  "))
	require.Equal(t, "한국 경제", NormalizeTitle(" 한국 경제\n"))
	require.Equal(t, "", NormalizeTitle("   "))
}

func TestTranslated(t *testing.T) {
	a := Article{Title: "제목"}
	require.False(t, a.Translated())

	a.Original = &Original{Title: "Title"}
	require.True(t, a.Translated())
}
