package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/firestore"
	"rentalops-backend/internal/store/postgres"
)

// Seeds a development store with a small working data set: staff accounts,
// vehicle categories, a few vehicles and customers. Safe to run against an
// empty database only; it does not check for existing records.
func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed(ctx, st); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	logger.Info("Seed complete")
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "firestore":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return firestore.Open(ctx, cfg.Store.Firestore.ProjectID, cfg.Store.Firestore.CredentialsFile)
	default:
		return postgres.Open(cfg.GetPostgresConnectionString())
	}
}

func seed(ctx context.Context, st store.Store) error {
	users := service.NewUserService(st)
	categories := service.NewVehicleCategoryService(st)
	vehicles := service.NewVehicleService(st)
	customers := service.NewCustomerService(st)

	for _, u := range []domain.User{
		{FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@rentalops.test", Role: domain.UserRoleManager},
		{FirstName: "Mike", LastName: "Chen", Email: "mike.chen@rentalops.test", Role: domain.UserRoleAgent},
		{FirstName: "Carlos", LastName: "Rodriguez", Email: "carlos.rodriguez@rentalops.test", Role: domain.UserRoleTechnician},
		{FirstName: "Emily", LastName: "Davis", Email: "emily.davis@rentalops.test", Role: domain.UserRoleAccountant},
	} {
		u := u
		if err := users.Create(ctx, &u); err != nil {
			return err
		}
		logger.Info("seeded user", "email", u.Email, "role", u.Role)
	}

	seededCategories := []domain.VehicleCategory{
		{Name: "Economy", Description: "Compact cars for city driving", BaseRentalRate: 35, InsuranceRate: 12},
		{Name: "Midsize", Description: "Comfortable sedans", BaseRentalRate: 50, InsuranceRate: 15},
		{Name: "SUV", Description: "Sport utility vehicles", BaseRentalRate: 75, InsuranceRate: 20},
		{Name: "Luxury", Description: "Premium vehicles", BaseRentalRate: 120, InsuranceRate: 35},
	}
	categoryIDs := make(map[string]string)
	for i := range seededCategories {
		if err := categories.Create(ctx, &seededCategories[i]); err != nil {
			return err
		}
		categoryIDs[seededCategories[i].Name] = seededCategories[i].ID
		logger.Info("seeded category", "name", seededCategories[i].Name)
	}

	for _, v := range []domain.Vehicle{
		{VIN: "1HGBH41JXMN109186", Make: "Toyota", Model: "Corolla", Year: 2022, Color: "Silver", LicensePlate: "RNT-1001", Mileage: 24510, CategoryID: categoryIDs["Economy"]},
		{VIN: "2T1BURHE5JC014321", Make: "Toyota", Model: "Camry", Year: 2023, Color: "White", LicensePlate: "RNT-1002", Mileage: 12050, CategoryID: categoryIDs["Midsize"]},
		{VIN: "5NPE24AF1FH123456", Make: "Honda", Model: "CR-V", Year: 2022, Color: "Blue", LicensePlate: "RNT-1003", Mileage: 31200, CategoryID: categoryIDs["SUV"]},
		{VIN: "WBA8E9G59GNT12345", Make: "BMW", Model: "530i", Year: 2023, Color: "Black", LicensePlate: "RNT-1004", Mileage: 8900, CategoryID: categoryIDs["Luxury"]},
	} {
		v := v
		if err := vehicles.Create(ctx, &v); err != nil {
			return err
		}
		logger.Info("seeded vehicle", "vin", v.VIN, "info", v.Info())
	}

	for _, c := range []domain.Customer{
		{FirstName: "John", LastName: "Smith", Email: "john.smith@example.com", Phone: "555-0101",
			Address: "123 Main St, Springfield", DateOfBirth: "1985-03-12",
			LicenseNumber: "D1234567", LicenseExpiry: "2027-03-12", CustomerType: domain.CustomerTypeIndividual},
		{FirstName: "Maria", LastName: "Garcia", Email: "maria.garcia@example.com", Phone: "555-0102",
			Address: "456 Oak Ave, Springfield", DateOfBirth: "1990-07-24",
			LicenseNumber: "D7654321", LicenseExpiry: "2026-07-24", CustomerType: domain.CustomerTypeIndividual},
		{FirstName: "Acme", LastName: "Logistics", Email: "fleet@acmelogistics.example.com", Phone: "555-0200",
			Address: "900 Industrial Pkwy, Springfield",
			LicenseNumber: "C0009001", LicenseExpiry: "2028-01-01", CustomerType: domain.CustomerTypeCorporate},
	} {
		c := c
		if err := customers.Create(ctx, &c); err != nil {
			return err
		}
		logger.Info("seeded customer", "email", c.Email)
	}

	return nil
}
