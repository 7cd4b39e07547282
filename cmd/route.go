package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/lucasmbr/deliverydash/internal/geo"
	"github.com/lucasmbr/deliverydash/internal/models"
	"github.com/spf13/cobra"
)

var routeCourier string

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Print the optimised stop sequence for dispatched orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		orders, err := loadOrders(cfg)
		if err != nil {
			return err
		}

		var dispatched []models.Order
		for _, order := range orders {
			if order.Status != models.OrderStatusDispatched {
				continue
			}
			if routeCourier != "" && order.CourierID != routeCourier {
				continue
			}
			dispatched = append(dispatched, order)
		}

		start := cfg.StoreLocation()
		route := geo.OptimizeRoute(dispatched, start)

		for i, stop := range route {
			label := stop.CustomerName
			if stop.Address != nil {
				label = stop.Address.Label()
			}
			sector := ""
			if stop.Location != nil {
				sector = geo.Sector(*stop.Location, start)
			}
			fmt.Printf("%2d. %-40s %s %s\n", i+1, label, stop.ID, sector)
		}
		summary := map[string]interface{}{
			"stops":     len(route),
			"length_km": geo.RouteLength(route, start),
		}
		encoded, _ := json.Marshal(summary)
		fmt.Println(string(encoded))
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeCourier, "courier", "", "Only include orders assigned to this courier")
	rootCmd.AddCommand(routeCmd)
}
