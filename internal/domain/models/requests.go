package models

type AssessmentsRequest struct {
	Limit int `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=500"`
}

type ScoreRequest struct {
	Temperature float64 `query:"temperature" json:"temperature" validate:"gte=-80,lte=80"`
	Condition   string  `query:"condition" json:"condition" default:"Clear"`
	WindSpeed   float64 `query:"wind" json:"wind" validate:"gte=0"`
	Visibility  int     `query:"visibility" json:"visibility" default:"10000" validate:"gte=0"`
	Humidity    int     `query:"humidity" json:"humidity" default:"50" validate:"gte=0,lte=100"`
	Pressure    int     `query:"pressure" json:"pressure" default:"1013" validate:"gte=0"`
	Changes     string  `query:"changes" json:"changes"` // comma-separated change percents
	Incidents   int     `query:"incidents" json:"incidents" validate:"gte=0"`
	Profile     string  `query:"profile" json:"profile" default:"baseline" validate:"oneof=baseline detailed"`
}
