package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsEmail(t *testing.T) {
	t.Parallel()

	require.True(t, IsEmail("john@example.com"))
	require.True(t, IsEmail("sue+tag@example.net"))

	require.False(t, IsEmail(""))
	require.False(t, IsEmail("not-an-email"))
	require.False(t, IsEmail("john@example.com,sue@example.net"))
	require.False(t, IsEmail("john@example.com sue@example.net"))
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	require.True(t, IsURL("http://example.com/logo.png"))
	require.True(t, IsURL("https://example.com"))

	require.False(t, IsURL(""))
	require.False(t, IsURL("example.com/no-scheme"))
	require.False(t, IsURL("http://example.com/a http://example.com/b"))
}

func TestIsEmailList(t *testing.T) {
	t.Parallel()

	require.True(t, IsEmailList("john@example.com"))
	require.True(t, IsEmailList("john@example.com sue@example.net eric@example.com"))

	// Comma is never the list separator.
	require.False(t, IsEmailList("john@example.com,sue@example.net"))
	require.False(t, IsEmailList("john@example.com, sue@example.net"))
	// Zero addresses is not a valid list.
	require.False(t, IsEmailList(""))
	// Doubled or dangling separators are malformed.
	require.False(t, IsEmailList("john@example.com  sue@example.net"))
	require.False(t, IsEmailList(" john@example.com"))
	require.False(t, IsEmailList("john@example.com "))
	require.False(t, IsEmailList("john@example.com not-an-email"))
}

func TestIsURLList(t *testing.T) {
	t.Parallel()

	require.True(t, IsURLList("http://example.com/cb"))
	require.True(t, IsURLList("http://example.com/cb https://example.net/cb"))

	require.False(t, IsURLList("http://example.com/cb,https://example.net/cb"))
	require.False(t, IsURLList(""))
	require.False(t, IsURLList("http://example.com/cb not-a-url"))
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	require.Nil(t, SplitList(""))
	require.Equal(t, []string{"a@b.com"}, SplitList("a@b.com"))
	require.Equal(t, []string{"a@b.com", "c@d.com"}, SplitList("a@b.com c@d.com"))
}
