package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gotour/internal/domain"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

func tourLabel(ref domain.TourRef) string {
	if title := ref.Title(); title != "" {
		return title
	}
	if ref.ID != "" {
		return ref.ID
	}
	return "-"
}

func paymentLabel(b domain.Booking) string {
	switch b.PaymentState() {
	case domain.PaymentPaid:
		return "pago"
	case domain.PaymentUnpaid:
		return "não pago"
	}
	return "?"
}
