package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/klokku/cashflow/pkg/projection"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type LedgerRenderer interface {
	RenderLedger(days []projection.DayRecord, summary Summary) (string, error)
}

type CsvLedgerRendererImpl struct {
}

func NewCsvLedgerRenderer() *CsvLedgerRendererImpl {
	return &CsvLedgerRendererImpl{}
}

func (r *CsvLedgerRendererImpl) RenderLedger(days []projection.DayRecord, summary Summary) (string, error) {
	data := make([][]string, 0, len(days)+5)
	data = append(data, []string{"Date", "Events", "Change", "Balance"})
	for _, day := range days {
		data = append(data, []string{
			day.Date.String(),
			describeEvents(day.Events),
			amountToString(day.Change),
			amountToString(day.Balance),
		})
	}
	data = append(data,
		[]string{"Total income", "", amountToString(summary.TotalIncome), ""},
		[]string{"Total expenses", "", amountToString(summary.TotalExpenses.Neg()), ""},
		[]string{"Lowest balance", "day " + strconv.Itoa(summary.LowestDay), "", amountToString(summary.LowestBalance)},
		[]string{"Ending balance", "", "", amountToString(summary.EndingBalance)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func describeEvents(events []projection.Event) string {
	descriptions := make([]string, 0, len(events))
	for _, e := range events {
		if e.IsSkipped {
			descriptions = append(descriptions, e.Name+" (skipped)")
			continue
		}
		descriptions = append(descriptions, e.Name+" "+signedAmountToString(e.Signed()))
	}
	return strings.Join(descriptions, "; ")
}

func signedAmountToString(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return amountToString(amount)
	}
	return "+" + amountToString(amount)
}

func amountToString(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
