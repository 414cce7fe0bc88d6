package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/klokku/cashflow/internal/config"
	"github.com/klokku/cashflow/internal/event_bus"
	"github.com/klokku/cashflow/internal/utils"
	"github.com/klokku/cashflow/pkg/calendar"
	"github.com/klokku/cashflow/pkg/cashflow"
	"github.com/klokku/cashflow/pkg/credit_card"
	"github.com/klokku/cashflow/pkg/instance_override"
	"github.com/klokku/cashflow/pkg/projection"
	"github.com/klokku/cashflow/pkg/stats"
	"github.com/klokku/cashflow/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrNotCreditCard = errors.New("expense is not a credit card")

type Service interface {
	Get(ctx context.Context) (cashflow.Data, error)
	ProjectMonth(ctx context.Context, month calendar.YearMonth) (MonthProjection, error)
	StatsFor(ctx context.Context, month calendar.YearMonth) (MonthStats, error)
	Ledger(ctx context.Context, month calendar.YearMonth) (string, error)
	CreditCardStatus(ctx context.Context, expenseId string, month calendar.YearMonth) (credit_card.Status, error)
	PaymentImpact(ctx context.Context, expenseId string, month calendar.YearMonth, adjusted decimal.Decimal) (credit_card.PaymentImpact, error)
	TodaysBalance(ctx context.Context) (TodaysBalance, error)
	Timeline(ctx context.Context, from calendar.YearMonth, months int) ([]stats.MonthSummary, error)

	Replace(ctx context.Context, data cashflow.Data) (cashflow.Data, error)
	UpdateSettings(ctx context.Context, settings cashflow.Settings) (cashflow.Data, error)
	AddIncome(ctx context.Context, income cashflow.Income) (cashflow.Data, cashflow.Income, error)
	UpdateIncome(ctx context.Context, income cashflow.Income) (cashflow.Data, error)
	DeleteIncome(ctx context.Context, id string) (cashflow.Data, error)
	AddExpense(ctx context.Context, expense cashflow.Expense) (cashflow.Data, cashflow.Expense, error)
	UpdateExpense(ctx context.Context, expense cashflow.Expense) (cashflow.Data, error)
	DeleteExpense(ctx context.Context, id string) (cashflow.Data, error)
	SaveInstanceOverride(ctx context.Context, kind cashflow.Kind, itemId string, override instance_override.Override) (cashflow.Data, error)
	RemoveInstanceOverride(ctx context.Context, kind cashflow.Kind, itemId string, originalDate calendar.Date) (cashflow.Data, error)
}

type ServiceImpl struct {
	repo                Repository
	eventBus            *event_bus.EventBus
	clock               utils.Clock
	renderer            stats.LedgerRenderer
	timelineParallelism int
}

func NewService(
	repo Repository,
	eventBus *event_bus.EventBus,
	clock utils.Clock,
	renderer stats.LedgerRenderer,
	cfg config.Projection,
) *ServiceImpl {
	return &ServiceImpl{
		repo:                repo,
		eventBus:            eventBus,
		clock:               clock,
		renderer:            renderer,
		timelineParallelism: cfg.TimelineParallelism,
	}
}

// Get returns the stored document of the current user, or a fresh one starting today
// when nothing was saved yet.
func (s *ServiceImpl) Get(ctx context.Context) (cashflow.Data, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return cashflow.Data{}, fmt.Errorf("failed to get current user: %w", err)
	}
	data, err := s.repo.Get(ctx, currentUser.Id)
	if errors.Is(err, ErrDataNotFound) {
		log.Debugf("no cash-flow data for user %d yet, starting empty", currentUser.Id)
		return cashflow.NewData(s.today(currentUser)), nil
	}
	if err != nil {
		return cashflow.Data{}, err
	}
	return data, nil
}

func (s *ServiceImpl) ProjectMonth(ctx context.Context, month calendar.YearMonth) (MonthProjection, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return MonthProjection{}, err
	}
	projector := projection.New(data)
	return MonthProjection{
		Month:           month,
		StartingBalance: projector.BalanceAtMonthStart(month),
		Days:            projector.BuildMonth(month),
	}, nil
}

func (s *ServiceImpl) StatsFor(ctx context.Context, month calendar.YearMonth) (MonthStats, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return MonthStats{}, err
	}
	projector := projection.New(data)
	startingBalance := projector.BalanceAtMonthStart(month)
	summary := stats.Summarize(projector.BuildMonth(month), startingBalance)
	thresholds := stats.ThresholdsOf(data)
	return MonthStats{
		Month:           month,
		StartingBalance: startingBalance,
		Summary:         summary,
		Status:          thresholds.StatusOf(summary.LowestBalance),
		Alerts:          stats.AlertsFor(summary, thresholds),
	}, nil
}

func (s *ServiceImpl) Ledger(ctx context.Context, month calendar.YearMonth) (string, error) {
	projected, err := s.ProjectMonth(ctx, month)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderLedger(projected.Days, stats.Summarize(projected.Days, projected.StartingBalance))
}

func (s *ServiceImpl) CreditCardStatus(ctx context.Context, expenseId string, month calendar.YearMonth) (credit_card.Status, error) {
	expense, err := s.creditCard(ctx, expenseId)
	if err != nil {
		return credit_card.Status{}, err
	}
	return credit_card.StatusAt(expense, month), nil
}

// PaymentImpact compares paying adjusted once in month with keeping the regular payment.
func (s *ServiceImpl) PaymentImpact(
	ctx context.Context,
	expenseId string,
	month calendar.YearMonth,
	adjusted decimal.Decimal,
) (credit_card.PaymentImpact, error) {
	expense, err := s.creditCard(ctx, expenseId)
	if err != nil {
		return credit_card.PaymentImpact{}, err
	}
	balance := credit_card.BalanceAtMonth(expense, month).RemainingBalance
	return credit_card.OneOffPaymentImpact(balance, expense.Amount, adjusted, expense.CreditCard.Apr), nil
}

func (s *ServiceImpl) creditCard(ctx context.Context, expenseId string) (cashflow.Expense, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return cashflow.Expense{}, err
	}
	expense, ok := data.FindExpense(expenseId)
	if !ok {
		return cashflow.Expense{}, fmt.Errorf("expense %s: %w", expenseId, cashflow.ErrItemNotFound)
	}
	if expense.CreditCard == nil {
		return cashflow.Expense{}, fmt.Errorf("expense %s: %w", expenseId, ErrNotCreditCard)
	}
	return expense, nil
}

// TodaysBalance is the balance at the end of today in the current user's timezone.
func (s *ServiceImpl) TodaysBalance(ctx context.Context) (TodaysBalance, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return TodaysBalance{}, fmt.Errorf("failed to get current user: %w", err)
	}
	data, err := s.Get(ctx)
	if err != nil {
		return TodaysBalance{}, err
	}
	today := s.today(currentUser)
	balance := projection.New(data).BalanceOn(today)
	return TodaysBalance{
		Date:    today,
		Balance: balance,
		Status:  stats.ThresholdsOf(data).StatusOf(balance),
	}, nil
}

func (s *ServiceImpl) Timeline(ctx context.Context, from calendar.YearMonth, months int) ([]stats.MonthSummary, error) {
	data, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return stats.Timeline(ctx, projection.New(data), stats.ThresholdsOf(data), from, months, s.timelineParallelism)
}

func (s *ServiceImpl) Replace(ctx context.Context, data cashflow.Data) (cashflow.Data, error) {
	if err := data.Validate(); err != nil {
		return cashflow.Data{}, err
	}
	return s.mutate(ctx, func(cashflow.Data) (cashflow.Data, error) {
		return data, nil
	})
}

func (s *ServiceImpl) UpdateSettings(ctx context.Context, settings cashflow.Settings) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.WithSettings(settings), nil
	})
}

func (s *ServiceImpl) AddIncome(ctx context.Context, income cashflow.Income) (cashflow.Data, cashflow.Income, error) {
	var added cashflow.Income
	data, err := s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		updated, created, err := data.AddIncome(income)
		added = created
		return updated, err
	})
	return data, added, err
}

func (s *ServiceImpl) UpdateIncome(ctx context.Context, income cashflow.Income) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.UpdateIncome(income)
	})
}

func (s *ServiceImpl) DeleteIncome(ctx context.Context, id string) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.DeleteIncome(id)
	})
}

func (s *ServiceImpl) AddExpense(ctx context.Context, expense cashflow.Expense) (cashflow.Data, cashflow.Expense, error) {
	var added cashflow.Expense
	data, err := s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		updated, created, err := data.AddExpense(expense)
		added = created
		return updated, err
	})
	return data, added, err
}

func (s *ServiceImpl) UpdateExpense(ctx context.Context, expense cashflow.Expense) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.UpdateExpense(expense)
	})
}

func (s *ServiceImpl) DeleteExpense(ctx context.Context, id string) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.DeleteExpense(id)
	})
}

func (s *ServiceImpl) SaveInstanceOverride(
	ctx context.Context,
	kind cashflow.Kind,
	itemId string,
	override instance_override.Override,
) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.SaveInstanceOverride(kind, itemId, override)
	})
}

func (s *ServiceImpl) RemoveInstanceOverride(
	ctx context.Context,
	kind cashflow.Kind,
	itemId string,
	originalDate calendar.Date,
) (cashflow.Data, error) {
	return s.mutate(ctx, func(data cashflow.Data) (cashflow.Data, error) {
		return data.RemoveInstanceOverride(kind, itemId, originalDate)
	})
}

// mutate applies change to the current document and publishes the result. The new document
// is returned even when saving it fails; the failure is only logged.
func (s *ServiceImpl) mutate(ctx context.Context, change func(cashflow.Data) (cashflow.Data, error)) (cashflow.Data, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return cashflow.Data{}, fmt.Errorf("failed to get current user: %w", err)
	}
	data, err := s.Get(ctx)
	if err != nil {
		return cashflow.Data{}, err
	}
	updated, err := change(data)
	if err != nil {
		return cashflow.Data{}, err
	}

	event := event_bus.NewEvent(ctx, event_bus.CashflowDataChangedType, event_bus.CashflowDataChanged{
		UserId: userId,
		Data:   updated,
	})
	if err := s.eventBus.Publish(event); err != nil {
		log.Errorf("failed to save cash-flow data of user %d: %v", userId, err)
	}
	return updated, nil
}

func (s *ServiceImpl) today(u user.User) calendar.Date {
	return utils.Today(s.clock, u.Settings.Location())
}
