package main

import (
	"context"
	"io"
	"phishnet/internal/config"
	"phishnet/internal/predictor"
	"phishnet/pkg/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLeadingFlags(t *testing.T) {
	require.Equal(t,
		[]string{"-c", "prod.yml", "-e", "prod.env"},
		leadingFlags([]string{"--config", "prod.yml", "serve", "-e", "prod.env"}),
	)
	require.Equal(t,
		[]string{"-c", "a.yml"},
		leadingFlags([]string{"predict", "-n", "4", "-c", "a.yml", "https://example.com"}),
	)
	require.Empty(t, leadingFlags([]string{"serve", "-c"}))
}

func TestReadURLs(t *testing.T) {
	urls, err := readURLs([]string{"a.com", "b.com"}, strings.NewReader("ignored"))
	require.NoError(t, err)
	require.Equal(t, []string{"a.com", "b.com"}, urls)

	urls, err = readURLs(nil, strings.NewReader("http://a.com\n\n  b.com  \n"))
	require.NoError(t, err)
	require.Equal(t, []string{"http://a.com", "b.com"}, urls)
}

func TestPredictAll_Concurrency(t *testing.T) {
	p, err := predictor.New(predictor.Deps{}, predictor.Options{})
	require.NoError(t, err)

	urls := []string{"https://google.com", "https://www.github.com/x", "https://paypal.com"}
	for _, n := range []int{-1, 0, 1, 8} {
		results := predictAll(context.Background(), p, urls, n)
		require.Len(t, results, len(urls), "concurrency %d", n)
		for i, res := range results {
			require.NoError(t, res.err)
			require.Equal(t, urls[i], res.url)
			require.Equal(t, domain.VerdictSourceWhitelist, res.source)
		}
	}
}

func TestPredictCommand_RejectsZeroConcurrency(t *testing.T) {
	cmd := predictCommand(&config.Config{})
	cmd.SetArgs([]string{"-n", "0", "https://google.com"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.ErrorContains(t, err, "concurrency must be at least 1")
}
