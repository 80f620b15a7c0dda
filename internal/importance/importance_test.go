package importance

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyKoreanKeywordInTitle(t *testing.T) {
	require.True(t, Classify("일본 남부 지진 발생", ""))
}

func TestClassifyNoKeyword(t *testing.T) {
	require.False(t, Classify("오늘의 날씨 맑음", "주말 나들이 추천 장소"))
	require.False(t, Classify("", ""))
}

func TestClassifyKeywordInSummaryOnly(t *testing.T) {
	require.True(t, Classify("A quiet morning", "Then the earthquake struck."))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	require.True(t, Classify("RECESSION fears grow", ""))
	require.True(t, Classify("Korea gdp beats forecast", ""))
}

func TestClassifyIsSubstringMatch(t *testing.T) {
	// "war" inside "award" still counts.
	require.True(t, Classify("Film award ceremony", ""))
}

func TestMatchedKeywordReturnsFirstHit(t *testing.T) {
	k, ok := MatchedKeyword("대통령 탄핵 표결", "")
	require.True(t, ok)
	// 탄핵 appears in the critical group, which is checked before the political group.
	require.Equal(t, "탄핵", k)

	_, ok = MatchedKeyword("맛집 소개", "")
	require.False(t, ok)
}

func TestKeywordsAreLowercased(t *testing.T) {
	for _, k := range allKeywords {
		require.NotContains(t, k, "GDP")
	}
}
