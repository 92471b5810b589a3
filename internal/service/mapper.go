package service

import (
	"strconv"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

// Field coercion helpers. The gateway hands back whatever the backend's
// driver produced: Postgres numerics arrive as strings, Firestore integers
// as int64, timestamps as time.Time or RFC 3339 strings. The mappers
// normalize all of that into the domain types.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	}
	return 0
}

func asIntPtr(v any) *int {
	if v == nil {
		return nil
	}
	n := asInt(v)
	return &n
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	}
	return time.Time{}
}

func asTimePtr(v any) *time.Time {
	if v == nil {
		return nil
	}
	t := asTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Customer

func CustomerFromRecord(r store.Record) domain.Customer {
	return domain.Customer{
		ID:            r.ID(),
		FirstName:     asString(r["first_name"]),
		LastName:      asString(r["last_name"]),
		Email:         asString(r["email"]),
		Phone:         asString(r["phone"]),
		Address:       asString(r["address"]),
		DateOfBirth:   asString(r["date_of_birth"]),
		LicenseNumber: asString(r["license_number"]),
		LicenseExpiry: asString(r["license_expiry"]),
		CustomerType:  domain.CustomerType(asString(r["customer_type"])),
		CreatedAt:     asTime(r["created_at"]),
	}
}

func customerFields(c *domain.Customer) store.Fields {
	return store.Fields{
		"first_name":     c.FirstName,
		"last_name":      c.LastName,
		"email":          c.Email,
		"phone":          c.Phone,
		"address":        c.Address,
		"date_of_birth":  c.DateOfBirth,
		"license_number": c.LicenseNumber,
		"license_expiry": c.LicenseExpiry,
		"customer_type":  string(c.CustomerType),
		"created_at":     c.CreatedAt,
	}
}

func customerPatchFields(p domain.CustomerPatch) store.Fields {
	f := store.Fields{}
	if p.FirstName != nil {
		f["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		f["last_name"] = *p.LastName
	}
	if p.Email != nil {
		f["email"] = *p.Email
	}
	if p.Phone != nil {
		f["phone"] = *p.Phone
	}
	if p.Address != nil {
		f["address"] = *p.Address
	}
	if p.DateOfBirth != nil {
		f["date_of_birth"] = *p.DateOfBirth
	}
	if p.LicenseNumber != nil {
		f["license_number"] = *p.LicenseNumber
	}
	if p.LicenseExpiry != nil {
		f["license_expiry"] = *p.LicenseExpiry
	}
	if p.CustomerType != nil {
		f["customer_type"] = string(*p.CustomerType)
	}
	return f
}

// VehicleCategory

func CategoryFromRecord(r store.Record) domain.VehicleCategory {
	return domain.VehicleCategory{
		ID:             r.ID(),
		Name:           asString(r["name"]),
		Description:    asString(r["description"]),
		BaseRentalRate: asFloat(r["base_rental_rate"]),
		InsuranceRate:  asFloat(r["insurance_rate"]),
	}
}

func categoryFields(c *domain.VehicleCategory) store.Fields {
	return store.Fields{
		"name":             c.Name,
		"description":      c.Description,
		"base_rental_rate": c.BaseRentalRate,
		"insurance_rate":   c.InsuranceRate,
	}
}

func categoryPatchFields(p domain.VehicleCategoryPatch) store.Fields {
	f := store.Fields{}
	if p.Name != nil {
		f["name"] = *p.Name
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.BaseRentalRate != nil {
		f["base_rental_rate"] = *p.BaseRentalRate
	}
	if p.InsuranceRate != nil {
		f["insurance_rate"] = *p.InsuranceRate
	}
	return f
}

// Vehicle

func VehicleFromRecord(r store.Record) domain.Vehicle {
	return domain.Vehicle{
		ID:           r.ID(),
		VIN:          asString(r["vin"]),
		Make:         asString(r["make"]),
		Model:        asString(r["model"]),
		Year:         asInt(r["year"]),
		Color:        asString(r["color"]),
		LicensePlate: asString(r["license_plate"]),
		Mileage:      asInt(r["mileage"]),
		Status:       domain.VehicleStatus(asString(r["status"])),
		CategoryID:   asString(r["category_id"]),
		ImageURL:     asString(r["image_url"]),
	}
}

func vehicleFields(v *domain.Vehicle) store.Fields {
	return store.Fields{
		"vin":           v.VIN,
		"make":          v.Make,
		"model":         v.Model,
		"year":          v.Year,
		"color":         v.Color,
		"license_plate": v.LicensePlate,
		"mileage":       v.Mileage,
		"status":        string(v.Status),
		"category_id":   v.CategoryID,
		"image_url":     v.ImageURL,
	}
}

func vehiclePatchFields(p domain.VehiclePatch) store.Fields {
	f := store.Fields{}
	if p.VIN != nil {
		f["vin"] = *p.VIN
	}
	if p.Make != nil {
		f["make"] = *p.Make
	}
	if p.Model != nil {
		f["model"] = *p.Model
	}
	if p.Year != nil {
		f["year"] = *p.Year
	}
	if p.Color != nil {
		f["color"] = *p.Color
	}
	if p.LicensePlate != nil {
		f["license_plate"] = *p.LicensePlate
	}
	if p.Mileage != nil {
		f["mileage"] = *p.Mileage
	}
	if p.CategoryID != nil {
		f["category_id"] = *p.CategoryID
	}
	if p.ImageURL != nil {
		f["image_url"] = *p.ImageURL
	}
	return f
}

// Reservation

func ReservationFromRecord(r store.Record) domain.Reservation {
	return domain.Reservation{
		ID:              r.ID(),
		CustomerID:      asString(r["customer_id"]),
		CategoryID:      asString(r["category_id"]),
		VehicleID:       asString(r["vehicle_id"]),
		ReservationDate: asTime(r["reservation_date"]),
		PickupDate:      asTime(r["pickup_date"]),
		ReturnDate:      asTime(r["return_date"]),
		Status:          domain.ReservationStatus(asString(r["status"])),
		EmployeeID:      asString(r["employee_id"]),
	}
}

func reservationFields(res *domain.Reservation) store.Fields {
	f := store.Fields{
		"customer_id":      res.CustomerID,
		"category_id":      res.CategoryID,
		"reservation_date": res.ReservationDate,
		"pickup_date":      res.PickupDate,
		"return_date":      res.ReturnDate,
		"status":           string(res.Status),
		"employee_id":      res.EmployeeID,
	}
	if res.VehicleID != "" {
		f["vehicle_id"] = res.VehicleID
	} else {
		f["vehicle_id"] = nil
	}
	return f
}

func reservationPatchFields(p domain.ReservationPatch) store.Fields {
	f := store.Fields{}
	if p.CustomerID != nil {
		f["customer_id"] = *p.CustomerID
	}
	if p.CategoryID != nil {
		f["category_id"] = *p.CategoryID
	}
	if p.VehicleID != nil {
		f["vehicle_id"] = *p.VehicleID
	}
	if p.PickupDate != nil {
		f["pickup_date"] = *p.PickupDate
	}
	if p.ReturnDate != nil {
		f["return_date"] = *p.ReturnDate
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	if p.EmployeeID != nil {
		f["employee_id"] = *p.EmployeeID
	}
	return f
}

// Rental

func RentalFromRecord(r store.Record) domain.Rental {
	return domain.Rental{
		ID:                 r.ID(),
		ReservationID:      asString(r["reservation_id"]),
		CustomerID:         asString(r["customer_id"]),
		VehicleID:          asString(r["vehicle_id"]),
		CheckoutEmployeeID: asString(r["checkout_employee_id"]),
		CheckinEmployeeID:  asString(r["checkin_employee_id"]),
		CheckoutDate:       asTime(r["checkout_date"]),
		ExpectedReturnDate: asTime(r["expected_return_date"]),
		ActualReturnDate:   asTimePtr(r["actual_return_date"]),
		CheckoutMileage:    asInt(r["checkout_mileage"]),
		ReturnMileage:      asIntPtr(r["return_mileage"]),
		Status:             domain.RentalStatus(asString(r["status"])),
	}
}

func rentalFields(rt *domain.Rental) store.Fields {
	f := store.Fields{
		"reservation_id":       rt.ReservationID,
		"customer_id":          rt.CustomerID,
		"vehicle_id":           rt.VehicleID,
		"checkout_employee_id": rt.CheckoutEmployeeID,
		"checkout_date":        rt.CheckoutDate,
		"expected_return_date": rt.ExpectedReturnDate,
		"checkout_mileage":     rt.CheckoutMileage,
		"status":               string(rt.Status),
	}
	if rt.CheckinEmployeeID != "" {
		f["checkin_employee_id"] = rt.CheckinEmployeeID
	} else {
		f["checkin_employee_id"] = nil
	}
	if rt.ActualReturnDate != nil {
		f["actual_return_date"] = *rt.ActualReturnDate
	} else {
		f["actual_return_date"] = nil
	}
	if rt.ReturnMileage != nil {
		f["return_mileage"] = *rt.ReturnMileage
	} else {
		f["return_mileage"] = nil
	}
	return f
}

func rentalPatchFields(p domain.RentalPatch) store.Fields {
	f := store.Fields{}
	if p.CheckinEmployeeID != nil {
		f["checkin_employee_id"] = *p.CheckinEmployeeID
	}
	if p.ExpectedReturnDate != nil {
		f["expected_return_date"] = *p.ExpectedReturnDate
	}
	if p.ActualReturnDate != nil {
		f["actual_return_date"] = *p.ActualReturnDate
	}
	if p.ReturnMileage != nil {
		f["return_mileage"] = *p.ReturnMileage
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	return f
}

// Invoice

func InvoiceFromRecord(r store.Record) domain.Invoice {
	return domain.Invoice{
		ID:              r.ID(),
		RentalID:        asString(r["rental_id"]),
		CustomerID:      asString(r["customer_id"]),
		InvoiceDate:     asTime(r["invoice_date"]),
		DueDate:         asTime(r["due_date"]),
		BaseFee:         asFloat(r["base_fee"]),
		InsuranceFee:    asFloat(r["insurance_fee"]),
		ExtraMileageFee: asFloat(r["extra_mileage_fee"]),
		FuelFee:         asFloat(r["fuel_fee"]),
		DamageFee:       asFloat(r["damage_fee"]),
		LateFee:         asFloat(r["late_fee"]),
		TaxAmount:       asFloat(r["tax_amount"]),
		TotalAmount:     asFloat(r["total_amount"]),
		Status:          domain.InvoiceStatus(asString(r["status"])),
	}
}

func invoiceFields(i *domain.Invoice) store.Fields {
	return store.Fields{
		"rental_id":         i.RentalID,
		"customer_id":       i.CustomerID,
		"invoice_date":      i.InvoiceDate,
		"due_date":          i.DueDate,
		"base_fee":          i.BaseFee,
		"insurance_fee":     i.InsuranceFee,
		"extra_mileage_fee": i.ExtraMileageFee,
		"fuel_fee":          i.FuelFee,
		"damage_fee":        i.DamageFee,
		"late_fee":          i.LateFee,
		"tax_amount":        i.TaxAmount,
		"total_amount":      i.TotalAmount,
		"status":            string(i.Status),
	}
}

func invoicePatchFields(p domain.InvoicePatch) store.Fields {
	f := store.Fields{}
	if p.DueDate != nil {
		f["due_date"] = *p.DueDate
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	return f
}

// Payment

func PaymentFromRecord(r store.Record) domain.Payment {
	return domain.Payment{
		ID:                   r.ID(),
		InvoiceID:            asString(r["invoice_id"]),
		CustomerID:           asString(r["customer_id"]),
		PaymentDate:          asTime(r["payment_date"]),
		Amount:               asFloat(r["amount"]),
		PaymentMethod:        domain.PaymentMethod(asString(r["payment_method"])),
		TransactionReference: asString(r["transaction_reference"]),
		Status:               domain.PaymentStatus(asString(r["status"])),
		ProcessedBy:          asString(r["processed_by"]),
	}
}

func paymentFields(p *domain.Payment) store.Fields {
	return store.Fields{
		"invoice_id":            p.InvoiceID,
		"customer_id":           p.CustomerID,
		"payment_date":          p.PaymentDate,
		"amount":                p.Amount,
		"payment_method":        string(p.PaymentMethod),
		"transaction_reference": p.TransactionReference,
		"status":                string(p.Status),
		"processed_by":          p.ProcessedBy,
	}
}

func paymentPatchFields(p domain.PaymentPatch) store.Fields {
	f := store.Fields{}
	if p.PaymentDate != nil {
		f["payment_date"] = *p.PaymentDate
	}
	if p.Amount != nil {
		f["amount"] = *p.Amount
	}
	if p.PaymentMethod != nil {
		f["payment_method"] = string(*p.PaymentMethod)
	}
	if p.TransactionReference != nil {
		f["transaction_reference"] = *p.TransactionReference
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	if p.ProcessedBy != nil {
		f["processed_by"] = *p.ProcessedBy
	}
	return f
}

// MaintenanceRecord

func MaintenanceFromRecord(r store.Record) domain.MaintenanceRecord {
	return domain.MaintenanceRecord{
		ID:              r.ID(),
		VehicleID:       asString(r["vehicle_id"]),
		MaintenanceType: asString(r["maintenance_type"]),
		Description:     asString(r["description"]),
		TechnicianID:    asString(r["technician_id"]),
		MaintenanceDate: asTime(r["maintenance_date"]),
		Mileage:         asInt(r["mileage"]),
		Cost:            asFloat(r["cost"]),
		Status:          domain.MaintenanceStatus(asString(r["status"])),
	}
}

func maintenanceFields(m *domain.MaintenanceRecord) store.Fields {
	return store.Fields{
		"vehicle_id":       m.VehicleID,
		"maintenance_type": m.MaintenanceType,
		"description":      m.Description,
		"technician_id":    m.TechnicianID,
		"maintenance_date": m.MaintenanceDate,
		"mileage":          m.Mileage,
		"cost":             m.Cost,
		"status":           string(m.Status),
	}
}

func maintenancePatchFields(p domain.MaintenanceRecordPatch) store.Fields {
	f := store.Fields{}
	if p.MaintenanceType != nil {
		f["maintenance_type"] = *p.MaintenanceType
	}
	if p.Description != nil {
		f["description"] = *p.Description
	}
	if p.TechnicianID != nil {
		f["technician_id"] = *p.TechnicianID
	}
	if p.MaintenanceDate != nil {
		f["maintenance_date"] = *p.MaintenanceDate
	}
	if p.Mileage != nil {
		f["mileage"] = *p.Mileage
	}
	if p.Cost != nil {
		f["cost"] = *p.Cost
	}
	if p.Status != nil {
		f["status"] = string(*p.Status)
	}
	return f
}

// User

func UserFromRecord(r store.Record) domain.User {
	return domain.User{
		ID:        r.ID(),
		FirstName: asString(r["first_name"]),
		LastName:  asString(r["last_name"]),
		Email:     asString(r["email"]),
		Role:      domain.UserRole(asString(r["role"])),
	}
}

func userFields(u *domain.User) store.Fields {
	return store.Fields{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"role":       string(u.Role),
	}
}
