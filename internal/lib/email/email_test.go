package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLoanReminder(t *testing.T) {
	html, err := Render(TemplateLoanReminder, LoanReminder{
		BookTitle: "Dune <Deluxe>",
		Imprint:   "Ace",
		DueBack:   "Mar 4, 2026",
		URL:       "/catalog/bookinstance/abc",
	}.data())
	require.NoError(t, err)

	assert.Contains(t, html, "Dune &lt;Deluxe&gt;")
	assert.Contains(t, html, "Mar 4, 2026")
	assert.Contains(t, html, `href="/catalog/bookinstance/abc"`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("missing", nil)
	assert.Error(t, err)
}

func TestPreviewDataRendersEveryTemplate(t *testing.T) {
	for name, data := range PreviewData {
		_, err := Render(name, data)
		assert.NoError(t, err, name)
	}
}
