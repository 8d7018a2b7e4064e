package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"go", "sql", "aws"}, SplitTags(" go, sql ,,aws , "))
	assert.Equal(t, []string{}, SplitTags(""))
	assert.Equal(t, []string{}, SplitTags(" , ,"))
}

func TestNormalizeTags(t *testing.T) {
	tags, err := NormalizeTags("Java, Spring, Java")
	require.NoError(t, err)
	assert.Equal(t, []string{"Java", "Spring"}, tags)

	tags, err = NormalizeTags([]interface{}{"React", " TypeScript ", "a,b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"React", "TypeScript", "a", "b"}, tags)

	tags, err = NormalizeTags(nil)
	require.NoError(t, err)
	assert.Empty(t, tags)

	_, err = NormalizeTags([]interface{}{"ok", 3})
	assert.Error(t, err)

	_, err = NormalizeTags(12)
	assert.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%Seoul%", LikePattern("Seoul"))
	assert.Equal(t, `%100\%%`, LikePattern("100%"))
	assert.Equal(t, `%a\_b%`, LikePattern("a_b"))
	assert.Equal(t, `%c:\\dir%`, LikePattern(`c:\dir`))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("student1@example.com"))
	assert.True(t, ValidEmail("first.last@mail.co.kr"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "great place", Sanitize("<b>great</b> place"))
	assert.Equal(t, "", Sanitize("<script>alert(1)</script>"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"user", "admin"}, "admin"))
	assert.False(t, Contains([]string{"user"}, "admin"))
}
