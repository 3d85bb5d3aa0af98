package dto

// StatisticResponse carries one scalar statistic for a dataset-year.
type StatisticResponse struct {
	Dataset   string  `json:"dataset" example:"HKEX/58538"`
	Year      int     `json:"year" example:"2020"`
	Statistic string  `json:"statistic" example:"highest"`
	Field     string  `json:"field,omitempty" example:"high"`
	Value     float64 `json:"value" example:"16.5"`
}
