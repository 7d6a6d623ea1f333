package bills

import (
	"github.com/dromero/financepro/internal/domain"
)

// Ledger is the slice of the ledger store the projection engine needs:
// reading the general ledger and materializing bill payments into it.
type Ledger interface {
	Transactions() []domain.Transaction
	AddTransaction(t domain.Transaction) (domain.Transaction, error)
}

// AlertSink receives due-soon warnings and lets the engine check for an
// existing unread warning so the same bill is not flagged twice.
type AlertSink interface {
	Push(message string, typ domain.NotificationType)
	HasUnreadWarning(substr string) bool
}

// nopAlertSink is used when no sink is wired in.
type nopAlertSink struct{}

func (nopAlertSink) Push(string, domain.NotificationType) {}
func (nopAlertSink) HasUnreadWarning(string) bool         { return false }
