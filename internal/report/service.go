// Package report agrega ventas cerradas y gastos en resúmenes por periodo.
// Las funciones de cálculo son puras; los handlers sólo consultan filas y las
// pasan por aquí.
package report

import (
	"sort"
	"time"

	"asador-backend/internal/models"
	"asador-backend/internal/money"
)

type Period string

const (
	PeriodToday    Period = "today"
	PeriodWeek     Period = "week"
	PeriodBiweekly Period = "biweekly"
	PeriodMonth    Period = "month"
	PeriodQuarter  Period = "quarter"
	PeriodSemester Period = "semester"
	PeriodYear     Period = "year"
	PeriodAll      Period = "all"
)

// PeriodRange traduce un periodo a un rango [start, end]. Para "all" regresa
// ok=false: sin filtro. La semana corre de lunes a domingo.
func PeriodRange(p Period, now time.Time) (start, end time.Time, ok bool) {
	y, m, d := now.Date()
	loc := now.Location()

	switch p {
	case PeriodToday:
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), loc)
	case PeriodWeek:
		daysToMonday := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			daysToMonday = 6
		}
		start = time.Date(y, m, d-daysToMonday, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case PeriodBiweekly:
		start = time.Date(y, m, d-13, 0, 0, 0, 0, loc)
		end = time.Date(y, m, d+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case PeriodQuarter:
		qm := time.Month((int(m)-1)/3*3 + 1)
		start = time.Date(y, qm, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	case PeriodSemester:
		sm := time.January
		if m >= time.July {
			sm = time.July
		}
		start = time.Date(y, sm, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 6, 0).Add(-time.Nanosecond)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type Summary struct {
	// Revenue es la suma de totales de venta; las propinas van aparte y no
	// cuentan como ingreso del negocio.
	Revenue            float64                            `json:"revenue"`
	Tips               float64                            `json:"tips"`
	Expenses           float64                            `json:"expenses"`
	NetProfit          float64                            `json:"net_profit"`
	SaleCount          int                                `json:"sale_count"`
	AverageTicket      float64                            `json:"average_ticket"`
	Payments           map[models.PaymentMethod]float64   `json:"payments"`
	ExpensesByCategory map[models.ExpenseCategory]float64 `json:"expenses_by_category"`
	TopProducts        []ProductSales                     `json:"top_products"`
}

// Summarize calcula el resumen del periodo sobre filas ya filtradas.
func Summarize(sales []models.ClosedSale, expenses []models.Expense) Summary {
	s := Summary{
		Payments:           PaymentTotals(sales),
		ExpensesByCategory: make(map[models.ExpenseCategory]float64),
		TopProducts:        TopProducts(sales, 5),
		SaleCount:          len(sales),
	}

	for i := range sales {
		s.Revenue = money.Add(s.Revenue, sales[i].Total)
		s.Tips = money.Add(s.Tips, sales[i].Tip)
	}
	for i := range expenses {
		s.Expenses = money.Add(s.Expenses, expenses[i].Amount)
		cat := expenses[i].Category
		s.ExpensesByCategory[cat] = money.Add(s.ExpensesByCategory[cat], expenses[i].Amount)
	}

	s.NetProfit = money.Sub(s.Revenue, s.Expenses)
	if s.SaleCount > 0 {
		s.AverageTicket = money.Round2(s.Revenue / float64(s.SaleCount))
	}
	return s
}

// PaymentTotals reparte los ingresos por método de pago. Cuando la venta trae
// desglose (pago dividido) se usan sus montos; si no, todo el total va al
// método principal.
func PaymentTotals(sales []models.ClosedSale) map[models.PaymentMethod]float64 {
	totals := make(map[models.PaymentMethod]float64, len(models.PaymentMethods))
	for _, method := range models.PaymentMethods {
		totals[method] = 0
	}

	for i := range sales {
		sale := &sales[i]
		if hasBreakdown(sale.PaymentBreakdown) {
			for _, method := range models.PaymentMethods {
				totals[method] = money.Add(totals[method], sale.PaymentBreakdown[method])
			}
			continue
		}
		if models.ValidPaymentMethod(sale.PaymentMethod) {
			totals[sale.PaymentMethod] = money.Add(totals[sale.PaymentMethod], sale.Total)
		}
	}
	return totals
}

func hasBreakdown(b models.PaymentBreakdown) bool {
	for _, amount := range b {
		if amount > 0 {
			return true
		}
	}
	return false
}

// TopProducts regresa los productos más vendidos por piezas.
func TopProducts(sales []models.ClosedSale, limit int) []ProductSales {
	type acc struct {
		qty     int
		revenue float64
	}
	byName := make(map[string]*acc)
	for i := range sales {
		for _, item := range sales[i].Items {
			a, ok := byName[item.Name]
			if !ok {
				a = &acc{}
				byName[item.Name] = a
			}
			a.qty += item.Quantity
			a.revenue = money.Add(a.revenue, item.Subtotal)
		}
	}

	out := make([]ProductSales, 0, len(byName))
	for name, a := range byName {
		out = append(out, ProductSales{Name: name, Quantity: a.qty, Revenue: a.revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
