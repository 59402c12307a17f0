// Package presenter holds the read-only presentation transforms applied by
// table columns: date formatting, status→color tag mapping and currency
// formatting. All functions are pure and never touch the source records.
package presenter

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/geodonnees/admin-console/internal/core/domain"
)

// Placeholder rendered for null/absent values.
const Placeholder = "—"

const (
	dateLayout     = "02-01-2006"
	dateTimeLayout = "02-01-2006 15:04"
)

// Tag is a colored label cell.
type Tag struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Date renders a nullable date as DD-MM-YYYY, or the placeholder.
func Date(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format(dateLayout)
}

// DateTime renders a nullable timestamp as DD-MM-YYYY HH:MM, or the placeholder.
func DateTime(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format(dateTimeLayout)
}

// Amount renders a currency amount with thousands separators, e.g. "$1,250.50".
func Amount(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// Access maps a dataset access level to its tag. The mapping is deterministic
// per value: public → green, abonne → blue.
func Access(a domain.AccessLevel) Tag {
	switch a {
	case domain.AccessPublic:
		return Tag{Label: "PUBLIC", Color: "green"}
	case domain.AccessSubscriber:
		return Tag{Label: "ABONNE", Color: "blue"}
	default:
		return Tag{Label: strings.ToUpper(string(a)), Color: "default"}
	}
}

// PaymentStatus maps a settlement state to its tag:
// success → green, failed → red, pending → orange.
func PaymentStatus(s domain.PaymentStatus) Tag {
	var color string
	switch s {
	case domain.PaymentSuccess:
		color = "green"
	case domain.PaymentFailed:
		color = "red"
	case domain.PaymentPending:
		color = "orange"
	default:
		color = "default"
	}
	return Tag{Label: strings.ToUpper(string(s)), Color: color}
}

// Role maps an account role to its tag: admin → red, abonne → blue.
func Role(r domain.Role) Tag {
	switch r {
	case domain.RoleAdmin:
		return Tag{Label: "ADMIN", Color: "red"}
	case domain.RoleSubscriber:
		return Tag{Label: "ABONNE", Color: "blue"}
	default:
		return Tag{Label: strings.ToUpper(string(r)), Color: "default"}
	}
}
