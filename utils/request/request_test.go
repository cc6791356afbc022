package request

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSendsHeaders(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "agent=%s", r.Header.Get("User-Agent"))
	}))
	t.Cleanup(server.Close)

	body, err := Fetch(context.Background(), nil, server.URL, "User-Agent", "faresweep-test")
	require.NoError(t, err)
	assert.Equal(t, "agent=faresweep-test", string(body))
}

func TestFetchOddHeaderPairs(t *testing.T) {
	t.Parallel()
	_, err := Fetch(context.Background(), nil, "http://example.invalid", "User-Agent")
	assert.ErrorContains(t, err, "key/value pairs")
}

func TestResolveURL(t *testing.T) {
	t.Parallel()
	type testCase struct {
		base string
		href string
		want string
	}
	testCases := []testCase{
		{
			base: "https://flights.test/results?d=2025-06-01",
			href: "/results?d=2025-06-02",
			want: "https://flights.test/results?d=2025-06-02",
		},
		{
			base: "https://flights.test/a/b",
			href: "next",
			want: "https://flights.test/a/next",
		},
		{
			base: "https://flights.test/",
			href: "https://other.test/page",
			want: "https://other.test/page",
		},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ResolveURL(tc.base, tc.href), "href: %q", tc.href)
	}
}
