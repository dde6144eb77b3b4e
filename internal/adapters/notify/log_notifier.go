package notify

import (
	"context"
	"log/slog"

	"github.com/Aquaier/Savoo/internal/core/domain"
	portssvc "github.com/Aquaier/Savoo/internal/core/ports/services"
	"github.com/Aquaier/Savoo/internal/middleware"
)

// LogNotifier writes budget alerts to the request logger. It is the fallback when no broker is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

var _ portssvc.BudgetNotifier = (*LogNotifier)(nil)

func (n *LogNotifier) NotifyBudget(ctx context.Context, notification domain.BudgetNotification) error {
	middleware.GetLoggerFromCtx(ctx).WarnContext(ctx, "Budget alert",
		slog.String("budget_id", notification.BudgetID),
		slog.String("user_id", notification.UserID),
		slog.String("budget_name", notification.BudgetName),
		slog.String("spent_base", notification.SpentBase.StringFixed(2)),
		slog.String("limit_base", notification.LimitBase.StringFixed(2)),
		slog.Bool("exceeded", notification.Exceeded),
		slog.String("message", notification.Message))
	return nil
}
