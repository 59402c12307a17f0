package domain

// MonthlyAmount is one point of the payment time series: total amount
// collected in a month.
type MonthlyAmount struct {
	Month  string
	Amount float64
}

// MonthlyCount is one point of the user time series: new accounts in a month.
type MonthlyCount struct {
	Month string
	Count int64
}
