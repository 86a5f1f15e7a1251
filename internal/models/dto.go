package models

type ReportFilters struct {
	Year    Text `json:"year"`
	Month   Text `json:"month"`
	Status  Text `json:"status"`
	FeeType Text `json:"feeType"`
}

type StudentReportRequest struct {
	Student Student `json:"student"`
	Fees    []Fee   `json:"fees"`
	Room    *Room   `json:"room"`
}

type StudentBundle struct {
	Student Student `json:"student"`
	Fees    []Fee   `json:"fees"`
	Room    *Room   `json:"room"`
}

type AllStudentsReportRequest struct {
	StudentsData []StudentBundle `json:"studentsData"`
	Filters      ReportFilters   `json:"filters"`
}

type FeesReportRequest struct {
	Students []Student     `json:"students"`
	Fees     []Fee         `json:"fees"`
	Rooms    []Room        `json:"rooms"`
	Filters  ReportFilters `json:"filters"`
}

type FeeReceiptRequest struct {
	Student Student `json:"student"`
	Fee     Fee     `json:"fee"`
	Room    *Room   `json:"room"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Version   string `json:"version"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
