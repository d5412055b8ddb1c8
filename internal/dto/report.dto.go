package dto

// ReportRow is one appointment line in the per-professional report.
type ReportRow struct {
	ID                   uint    `json:"id"`
	Date                 string  `json:"appointment_date"`
	Time                 string  `json:"appointment_time"`
	Status               string  `json:"status"`
	ClientName           string  `json:"client_name"`
	ProfessionalName     string  `json:"professional_name"`
	ServiceName          string  `json:"service_name"`
	Price                float64 `json:"price"`
	CommissionPercentage float64 `json:"commission_percentage"`
	CommissionAmount     float64 `json:"commission_amount"`
}

type StatusSummary struct {
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

type ReportSummary struct {
	TotalAppointments int                      `json:"total_appointments"`
	TotalRevenue      float64                  `json:"total_revenue"`
	TotalCommission   float64                  `json:"total_commission"`
	ByStatus          map[string]StatusSummary `json:"by_status"`
}

type AppointmentReport struct {
	Appointments []ReportRow   `json:"appointments"`
	Summary      ReportSummary `json:"summary"`
}

// CommissionByProfessional groups completed-appointment commissions.
type CommissionByProfessional struct {
	ProfessionalID   uint    `json:"professional_id"`
	ProfessionalName string  `json:"professional_name"`
	Appointments     int     `json:"appointments"`
	Revenue          float64 `json:"revenue"`
	Commission       float64 `json:"commission"`
}
