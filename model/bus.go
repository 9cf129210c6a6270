package model

type Bus struct {
	Id          string `json:"id" yaml:"id"`
	CompanyName string `json:"companyName" yaml:"companyName"`
	BusName     string `json:"busName" yaml:"busName"`
	StartTime   string `json:"startTime" yaml:"startTime"`
	ArrivalTime string `json:"arrivalTime" yaml:"arrivalTime"`
	SeatsLeft   int    `json:"seatsLeft" yaml:"seatsLeft"`
	TotalSeats  int    `json:"totalSeats" yaml:"totalSeats"`
	Price       int    `json:"price" yaml:"price"`
	From        string `json:"from" yaml:"from"`
	To          string `json:"to" yaml:"to"`
	JourneyDate string `json:"journeyDate" yaml:"journeyDate"`
}

type Route struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

func (r Route) String() string {
	return r.From + " → " + r.To
}
