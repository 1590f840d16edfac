// backend-go/internal/aggregate/cohorts.go
package aggregate

import (
	"sort"
	"time"

	"github.com/sellora/salesboard/backend-go/internal/domain"
)

type orderGroup struct {
	channel  domain.Channel
	number   string
	date     time.Time
	amount   float64
	customer string
	name     string
	contact  string
}

// RepurchaseCohorts classifies customers by how many distinct orders they
// placed in the window. Line rows collapse into orders first (an order is
// channel-scoped, so "A1" on two channels stays two orders), then orders
// group under their customer key. Orders without a customer key cannot be
// cohorted and are left out.
func RepurchaseCohorts(records []domain.SalesRecord) domain.RepurchaseCohorts {
	type orderKey struct {
		channel domain.Channel
		number  string
	}

	orderIndex := make(map[orderKey]int)
	orders := make([]orderGroup, 0)

	for i := range records {
		r := &records[i]
		if r.Excluded() {
			continue
		}

		k := orderKey{channel: r.Channel, number: r.OrderNumber}
		pos, ok := orderIndex[k]
		if !ok {
			pos = len(orders)
			orderIndex[k] = pos
			orders = append(orders, orderGroup{
				channel:  r.Channel,
				number:   r.OrderNumber,
				date:     r.Date,
				customer: r.CustomerKey,
				name:     r.CustomerName,
				contact:  r.CustomerContact,
			})
		}
		orders[pos].amount += r.Sales()
		if r.Date.Before(orders[pos].date) {
			orders[pos].date = r.Date
		}
	}

	// Customers in first-seen order keeps repeated runs identical.
	customerIndex := make(map[string]int)
	type customerGroup struct {
		name    string
		contact string
		orders  []orderGroup
	}
	customers := make([]customerGroup, 0)

	for _, o := range orders {
		if o.customer == "" {
			continue
		}
		pos, ok := customerIndex[o.customer]
		if !ok {
			pos = len(customers)
			customerIndex[o.customer] = pos
			customers = append(customers, customerGroup{name: o.name, contact: o.contact})
		}
		customers[pos].orders = append(customers[pos].orders, o)
	}

	var result domain.RepurchaseCohorts
	classified := 0

	for _, c := range customers {
		sort.SliceStable(c.orders, func(i, j int) bool {
			return c.orders[i].date.Before(c.orders[j].date)
		})

		detail := domain.CohortCustomer{Name: c.name, Contact: c.contact}
		for _, o := range c.orders {
			detail.Orders = append(detail.Orders, domain.CustomerOrder{Date: o.date, Amount: o.amount})
			detail.TotalAmount += o.amount
		}

		cohort := cohortFor(&result, len(c.orders))
		cohort.Count++
		cohort.Customers = append(cohort.Customers, detail)
		classified++
	}

	returning := result.Repeat.Count + result.ThreeToFour.Count + result.FiveOrMore.Count
	if classified > 0 {
		result.RepurchaseRate = float64(returning) / float64(classified) * 100
	}

	return result
}

func cohortFor(r *domain.RepurchaseCohorts, orderCount int) *domain.Cohort {
	switch {
	case orderCount <= 1:
		return &r.FirstTime
	case orderCount == 2:
		return &r.Repeat
	case orderCount <= 4:
		return &r.ThreeToFour
	default:
		return &r.FiveOrMore
	}
}
