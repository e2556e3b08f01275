package email

import "fmt"

// LoanReminder describes a copy whose loan is due.
type LoanReminder struct {
	BookTitle string
	Imprint   string
	DueBack   string
	URL       string
}

func (r LoanReminder) data() map[string]string {
	return map[string]string{
		"BookTitle": r.BookTitle,
		"Imprint":   r.Imprint,
		"DueBack":   r.DueBack,
		"URL":       r.URL,
	}
}

func (c *Client) SendLoanReminder(to string, r LoanReminder) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("Loan due: %s", r.BookTitle),
		TemplateLoanReminder,
		r.data(),
	)
}

// PreviewData renders each template with sample values.
var PreviewData = map[Template]map[string]string{
	TemplateLoanReminder: LoanReminder{
		BookTitle: "The Name of the Wind",
		Imprint:   "Gollancz, 2007",
		DueBack:   "Jan 2, 2026",
		URL:       "/catalog/bookinstance/00000000-0000-0000-0000-000000000000",
	}.data(),
}
