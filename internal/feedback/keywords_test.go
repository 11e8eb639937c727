package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	assert.Equal(t, "", ExtractKeywords(""))

	got := ExtractKeywords("The staff was very helpful and the venue was great!")
	assert.Equal(t, "staff, very, helpful, venue, great", got)

	// Stop words and short tokens vanish, duplicates collapse.
	got = ExtractKeywords("good good good it is ok")
	assert.Equal(t, "good", got)
}

func TestExtractKeywordsLowercasesAndSplitsPunctuation(t *testing.T) {
	got := ExtractKeywords("Amazing!!! Speakers,speakers;SPEAKERS... food?")
	assert.Equal(t, "amazing, speakers, food", got)
}
