// Package importance flags articles that deserve visual emphasis.
//
// Matching is a plain case-insensitive substring search over title and
// summary without word boundaries, so "war" also hits "award".
package importance

import "strings"

// Crisis and disaster terms.
var criticalKeywords = []string{
	// korean
	"전쟁", "사망", "사고", "재난", "붕괴", "폭발", "화재", "지진", "태풍",
	"위기", "비상", "긴급", "경보", "파산", "부도", "폐쇄", "중단",
	"금리", "인상", "인하", "정책", "법안", "통과", "탄핵", "사퇴",
	"북한", "미사일", "핵", "테러", "감염", "확진", "팬데믹",
	// english
	"war", "death", "accident", "disaster", "collapse", "explosion", "fire", "earthquake",
	"crisis", "emergency", "urgent", "alert", "bankruptcy", "shutdown", "suspended",
	"interest rate", "policy", "bill", "impeachment", "resignation",
	"missile", "nuclear", "terror", "pandemic", "outbreak", "conflict",
}

// Economic shock terms.
var economicKeywords = []string{
	"금리", "환율", "주가", "폭락", "급등", "GDP", "실업률", "인플레이션",
	"경기침체", "부동산", "가격", "상승", "하락", "무역", "적자", "흑자",
	"interest rate", "exchange rate", "stock", "crash", "surge", "GDP", "unemployment",
	"inflation", "recession", "real estate", "price", "trade", "deficit", "surplus",
}

// Political upheaval terms.
var politicalKeywords = []string{
	"대통령", "국회", "법안", "선거", "투표", "정책", "개혁", "논란",
	"탄핵", "사퇴", "임명", "해임", "여당", "야당", "정부",
	"president", "congress", "parliament", "bill", "election", "vote", "policy",
	"reform", "controversy", "impeachment", "resignation", "appointment", "government",
}

var allKeywords = buildKeywords(criticalKeywords, economicKeywords, politicalKeywords)

func buildKeywords(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		for _, k := range g {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				out = append(out, k)
			}
		}
	}
	return out
}

// Classify reports whether title or summary contains any keyword.
func Classify(title, summary string) bool {
	_, ok := MatchedKeyword(title, summary)
	return ok
}

// MatchedKeyword returns the first keyword found in title + " " + summary.
func MatchedKeyword(title, summary string) (string, bool) {
	text := strings.ToLower(title + " " + summary)
	for _, k := range allKeywords {
		if strings.Contains(text, k) {
			return k, true
		}
	}
	return "", false
}
