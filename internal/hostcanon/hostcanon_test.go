package hostcanon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedHostNormativeExamples(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain host strips scheme and www",
			url:  "http://www.fomos.kr/game/news_view?lurl=%2Fgame%2Fnews_list%3Fnews_cate_id%3D2&entry_id=113622#111",
			want: "fomos.kr",
		},
		{
			name: "cafe naver keeps board segment",
			url:  "https://cafe.naver.com/paincare/9741",
			want: "cafe.naver.com/paincare",
		},
		{
			name: "twitter stops at first slash",
			url:  "http://twitter.com/yutaaaaaaaa1103/statuses/1559878365196468224",
			want: "twitter.com",
		},
		{
			name: "S1 cafe naver moonlightriverside",
			url:  "https://cafe.naver.com/moonlightriverside/185",
			want: "cafe.naver.com/moonlightriverside",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SeedHost(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeedHostDeterministic(t *testing.T) {
	url := "https://cafe.daum.net/board/42"
	a, err := SeedHost(url)
	require.NoError(t, err)
	b, err := SeedHost(url)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSeedHostNoPathStopsAtHash(t *testing.T) {
	got, err := SeedHost("http://example.com#frag")
	require.NoError(t, err)
	assert.Equal(t, "example.com", got)
}

func TestSeedHostWholeRemainderWhenNoDelimiter(t *testing.T) {
	got, err := SeedHost("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", got)
}

func TestSeedHostPathedPrefixMismatchFails(t *testing.T) {
	_, err := SeedHost("https://blog.naver.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CAFE_PTRN_NOT_MATCH")
}

func TestSeedHostMCafeDaum(t *testing.T) {
	got, err := SeedHost("http://m.cafe.daum.net/somegroup/1a2")
	require.NoError(t, err)
	assert.Equal(t, "m.cafe.daum.net/somegroup", got)
}
