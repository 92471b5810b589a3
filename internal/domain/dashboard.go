package domain

// DashboardSummary is the operational snapshot shown on the console landing
// page. Revenue figures sum completed payments in the window.
type DashboardSummary struct {
	ActiveRentals         int     `json:"active_rentals"`
	UpcomingReservations  int     `json:"upcoming_reservations"`
	VehiclesInMaintenance int     `json:"vehicles_in_maintenance"`
	AvailableVehicles     int     `json:"available_vehicles"`
	TodayRevenue          float64 `json:"today_revenue"`
	MonthRevenue          float64 `json:"month_revenue"`
}
