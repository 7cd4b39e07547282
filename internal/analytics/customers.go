package analytics

import (
	"sort"

	"github.com/lucasmbr/deliverydash/internal/finance"
	"github.com/lucasmbr/deliverydash/internal/models"
)

// BuildProfiles derives customer profiles by grouping orders per customer
// key (phone, name fallback). Spend counts delivered orders only; points
// movement skips cancelled and rejected orders; every distinct delivery
// address the customer ever used is kept.
func BuildProfiles(orders []models.Order) []models.CustomerProfile {
	profiles := make(map[string]*models.CustomerProfile)
	seenAddresses := make(map[string]map[string]bool)

	for _, order := range orders {
		key := order.CustomerKey()
		if key == "" {
			continue
		}

		profile, ok := profiles[key]
		if !ok {
			profile = &models.CustomerProfile{Name: order.CustomerName, Phone: order.CustomerPhone}
			profiles[key] = profile
			seenAddresses[key] = make(map[string]bool)
		}

		profile.OrderCount++
		if order.CreatedAt.After(profile.LastOrderAt) {
			profile.LastOrderAt = order.CreatedAt
			profile.Name = order.CustomerName
		}

		if order.Status == models.OrderStatusDelivered {
			profile.TotalSpend += order.Total
		}
		if order.Status != models.OrderStatusCancelled && order.Status != models.OrderStatusRejected {
			profile.PointsBalance += order.PointsEarned - order.PointsUsed
		}

		if order.Address != nil {
			label := order.Address.Label()
			if label != "" && !seenAddresses[key][label] {
				seenAddresses[key][label] = true
				profile.SavedAddresses = append(profile.SavedAddresses, *order.Address)
			}
		}
	}

	result := make([]models.CustomerProfile, 0, len(profiles))
	for _, profile := range profiles {
		profile.TotalSpend = finance.Round(profile.TotalSpend)
		result = append(result, *profile)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalSpend != result[j].TotalSpend {
			return result[i].TotalSpend > result[j].TotalSpend
		}
		return result[i].Name < result[j].Name
	})
	return result
}
