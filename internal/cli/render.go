package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"employee-management/pkg/client"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// formatUSD renders 75000 as $75,000.00.
func formatUSD(amount float64) string {
	return usd.Sprintf("$%.2f", amount)
}

func formatSalary(salary *float64) string {
	if salary == nil || *salary == 0 {
		return "Not specified"
	}
	return formatUSD(*salary)
}

// formatDate renders YYYY-MM-DD as "Jan 02, 2006", leaving anything else as is.
func formatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("Jan 02, 2006")
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderEmployeeTable(w io.Writer, employees []client.Employee) {
	if len(employees) == 0 {
		fmt.Fprintln(w, "No employees found")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPOSITION\tDEPARTMENT\tSALARY\tHIRED")
	for _, e := range employees {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.FullName(), e.Email, e.Position, e.Department,
			formatSalary(e.Salary), formatDate(e.HireDate))
	}
	tw.Flush()
}

func renderPagination(w io.Writer, p client.Pagination) {
	fmt.Fprintf(w, "\nPage %d of %d (%d employees)\n", p.CurrentPage, p.TotalPages, p.TotalEmployees)
	var hints []string
	if p.HasPrev {
		hints = append(hints, fmt.Sprintf("previous: --page %d", p.CurrentPage-1))
	}
	if p.HasNext {
		hints = append(hints, fmt.Sprintf("next: --page %d", p.CurrentPage+1))
	}
	if len(hints) > 0 {
		fmt.Fprintln(w, strings.Join(hints, "  "))
	}
}

func renderEmployeeCard(w io.Writer, e client.Employee) {
	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%d\n", e.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", e.FullName())
	fmt.Fprintf(tw, "Email:\t%s\n", e.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", orDash(e.Phone))
	fmt.Fprintf(tw, "Position:\t%s\n", e.Position)
	fmt.Fprintf(tw, "Department:\t%s\n", e.Department)
	fmt.Fprintf(tw, "Salary:\t%s\n", formatSalary(e.Salary))
	fmt.Fprintf(tw, "Hired:\t%s\n", formatDate(e.HireDate))
	fmt.Fprintf(tw, "Address:\t%s\n", orDash(e.Address))
	tw.Flush()
}

func renderStats(w io.Writer, s client.Stats) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total Employees:\t%d\n", s.Total)
	fmt.Fprintf(tw, "Departments:\t%d\n", len(s.ByDepartment))
	fmt.Fprintf(tw, "Average Salary:\t%s\n", formatUSD(s.AverageSalary))
	tw.Flush()

	if len(s.ByDepartment) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "DEPARTMENT\tEMPLOYEES\tPERCENTAGE\t")
	for _, d := range s.ByDepartment {
		pct := 0.0
		if s.Total > 0 {
			pct = float64(d.Count) / float64(s.Total) * 100
		}
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\t%s\n", d.Department, d.Count, pct, strings.Repeat("#", int(pct/5)))
	}
	tw.Flush()
}

func renderAPIError(w io.Writer, err *client.Error) {
	fmt.Fprintf(w, "Error: %s\n", err.Message)
	for _, fe := range err.FieldErrors {
		fmt.Fprintf(w, "  - %s: %s\n", fe.Field, fe.Message)
	}
}
